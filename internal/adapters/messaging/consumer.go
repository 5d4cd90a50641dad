package messaging

import (
	"context"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one decoded message body. Handlers contain their own
// failures; the consumer acknowledges the message after the handler
// returns, whether it succeeded or rejected.
type Handler func(ctx context.Context, body string)

// Consumer pulls one queue strictly serially: prefetch 1, run the full
// handler, ack, then fetch the next. Malformed messages are the handler's
// problem — nothing is ever requeued, because the broker cannot fix a
// message the handler could not parse.
type Consumer struct {
	broker  *Broker
	queue   string
	tag     string
	handler Handler
	logger  *slog.Logger
}

// NewConsumer builds a serial consumer for one queue
func NewConsumer(broker *Broker, queue, tag string, handler Handler, logger *slog.Logger) *Consumer {
	return &Consumer{
		broker:  broker,
		queue:   queue,
		tag:     tag,
		handler: handler,
		logger:  logger,
	}
}

// Run consumes the queue until ctx is cancelled. On cancellation it stops
// fetching, lets the in-flight handler finish and acknowledges its message,
// so shutdown never drops an unacknowledged delivery. The handler runs on a
// detached context: a delivery that already left the broker is processed to
// completion.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.broker.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch on %s: %w", c.queue, err)
	}

	deliveries, err := ch.Consume(
		c.queue,
		c.tag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", c.queue, err)
	}

	c.logger.Info("consumer started", "queue", c.queue, "tag", c.tag)

	handleCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			if err := ch.Cancel(c.tag, false); err != nil {
				c.logger.Error("failed to cancel consumer", "queue", c.queue, "error", err)
			}
			// The broker may have pushed one more delivery before the
			// cancel took effect; drain it so it is handled and acked
			for d := range deliveries {
				c.handle(handleCtx, d)
			}
			c.logger.Info("consumer stopped", "queue", c.queue, "tag", c.tag)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel of %s closed", c.queue)
			}
			c.handle(handleCtx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	c.handler(ctx, string(d.Body))
	if err := d.Ack(false); err != nil {
		c.logger.Error("failed to ack delivery", "queue", c.queue, "error", err)
	}
}
