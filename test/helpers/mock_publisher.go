package helpers

import (
	"context"
	"sync"
)

// PublishedMessage is one outbound message captured by the mock publisher
type PublishedMessage struct {
	Queue string
	Body  string
}

// MockPublisher records published messages for assertions
type MockPublisher struct {
	mu       sync.Mutex
	messages []PublishedMessage
	failWith error
}

// NewMockPublisher creates a new mock publisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish records the message, or returns the configured failure
func (m *MockPublisher) Publish(ctx context.Context, queue, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	m.messages = append(m.messages, PublishedMessage{Queue: queue, Body: body})
	return nil
}

// Close implements the publisher contract; nothing to release
func (m *MockPublisher) Close() error {
	return nil
}

// Messages returns every captured message in publish order
func (m *MockPublisher) Messages() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedMessage{}, m.messages...)
}

// MessagesTo returns the bodies published to one queue, in publish order
func (m *MockPublisher) MessagesTo(queue string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var bodies []string
	for _, msg := range m.messages {
		if msg.Queue == queue {
			bodies = append(bodies, msg.Body)
		}
	}
	return bodies
}

// FailWith makes every subsequent publish return err
func (m *MockPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Reset clears all state (useful between test scenarios)
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	m.failWith = nil
}
