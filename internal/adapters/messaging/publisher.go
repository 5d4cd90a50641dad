package messaging

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the single long-lived outbound channel of a process. amqp
// channels are not safe for concurrent publishes, so calls are serialised
// with a mutex. Every message goes out persistent on the default exchange,
// routed by queue name.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher opens the outbound channel
func NewPublisher(broker *Broker) (*Publisher, error) {
	ch, err := broker.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publisher channel: %w", err)
	}
	return &Publisher{ch: ch}, nil
}

// Publish emits one persistent plain-text message to a queue
func (p *Publisher) Publish(ctx context.Context, queue, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "text/plain",
			DeliveryMode: amqp.Persistent,
			Body:         []byte(body),
		})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}
	return nil
}

// Close closes the outbound channel
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
