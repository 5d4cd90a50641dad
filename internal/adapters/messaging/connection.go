// Package messaging adapts the pipeline to RabbitMQ: one connection per
// process, one channel per consumer plus one for the publisher, durable
// queues and persistent deliveries throughout.
package messaging

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saimazoom/warehouse-go/internal/infrastructure/config"
)

// Broker is one AMQP connection shared by every channel of the process
type Broker struct {
	conn *amqp.Connection
}

// Connect dials the broker from the configuration. An explicit URL takes
// precedence over the individual connection fields.
func Connect(cfg *config.BrokerConfig) (*Broker, error) {
	url := cfg.URL
	if url == "" {
		vhost := cfg.VHost
		if vhost == "/" {
			vhost = ""
		}
		url = fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, vhost)
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	return &Broker{conn: conn}, nil
}

// Channel opens a new channel on the shared connection
func (b *Broker) Channel() (*amqp.Channel, error) {
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return ch, nil
}

// Close closes the connection and every channel on it
func (b *Broker) Close() error {
	return b.conn.Close()
}
