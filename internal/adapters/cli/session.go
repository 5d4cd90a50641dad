package cli

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saimazoom/warehouse-go/internal/adapters/messaging"
	"github.com/saimazoom/warehouse-go/internal/infrastructure/config"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

// Session is one client's broker attachment: a connection, the outbound
// publisher and the client's own response queue, declared here because the
// controller never declares per-client queues.
type Session struct {
	broker    *messaging.Broker
	publisher *messaging.Publisher
	channel   *amqp.Channel
	queues    wire.Queues
	userID    string
}

// NewSession connects to the broker and declares the queues the client
// touches: the shared command queue and its own response queue.
func NewSession(configPath, userID string) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("a user id is required (--user)")
	}

	// The client tool works without any config on disk; the defaults point
	// at a local broker
	cfg := config.LoadConfigOrDefault(configPath)
	queues := wire.NewQueues(cfg.Queues.GroupID)

	broker, err := messaging.Connect(&cfg.Broker)
	if err != nil {
		return nil, err
	}

	ch, err := broker.Channel()
	if err != nil {
		broker.Close()
		return nil, err
	}
	if err := messaging.DeclareQueue(ch, queues.ClientToController()); err != nil {
		broker.Close()
		return nil, err
	}
	if err := messaging.DeclareQueue(ch, queues.Client(userID)); err != nil {
		broker.Close()
		return nil, err
	}

	publisher, err := messaging.NewPublisher(broker)
	if err != nil {
		broker.Close()
		return nil, err
	}

	return &Session{
		broker:    broker,
		publisher: publisher,
		channel:   ch,
		queues:    queues,
		userID:    userID,
	}, nil
}

// Send publishes one command to the controller
func (s *Session) Send(ctx context.Context, body string) error {
	return s.publisher.Publish(ctx, s.queues.ClientToController(), body)
}

// Await consumes one message from the client's own queue, waiting at most
// the given duration
func (s *Session) Await(ctx context.Context, timeout time.Duration) (string, error) {
	deliveries, err := s.channel.Consume(
		s.queues.Client(s.userID),
		"",    // consumer tag
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return "", fmt.Errorf("failed to consume response queue: %w", err)
	}

	select {
	case d, ok := <-deliveries:
		if !ok {
			return "", fmt.Errorf("response queue closed")
		}
		return string(d.Body), nil
	case <-time.After(timeout):
		return "", fmt.Errorf("no response within %s", timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Listen consumes the client's queue until ctx is cancelled, passing every
// message body to the callback
func (s *Session) Listen(ctx context.Context, callback func(body string)) error {
	deliveries, err := s.channel.Consume(
		s.queues.Client(s.userID),
		"", true, false, false, false, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume response queue: %w", err)
	}

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("response queue closed")
			}
			callback(string(d.Body))
		case <-ctx.Done():
			return nil
		}
	}
}

// Close releases the broker attachment
func (s *Session) Close() {
	_ = s.publisher.Close()
	_ = s.broker.Close()
}
