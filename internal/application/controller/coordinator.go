// Package controller hosts the coordinator: the per-command handlers that
// multiplex the three inbound message streams into the durable per-order
// state machine and emit the outbound messages each transition calls for.
package controller

import (
	"context"
	"log/slog"

	"github.com/saimazoom/warehouse-go/internal/adapters/metrics"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

// Destination roles for publish metrics and logs
const (
	destClient   = "client"
	destRobot    = "robot"
	destDelivery = "delivery"
)

// Handler outcomes, recorded per consumed message
const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeAbsorbed = "absorbed"
	outcomeProtocol = "protocol_error"
	outcomeError    = "error"
)

// Coordinator owns the business rules of the pipeline. Each handler runs to
// completion for one inbound message: it reads or mutates the store, decides
// the outbound messages from the committed result and publishes them. A
// handler never propagates an error to its intake consumer; the message is
// acknowledged either way.
type Coordinator struct {
	store     Store
	publisher Publisher
	queues    wire.Queues
	logger    *slog.Logger
}

// NewCoordinator wires the coordinator to its store, publisher and queue
// naming scheme
func NewCoordinator(store Store, publisher Publisher, queues wire.Queues, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:     store,
		publisher: publisher,
		queues:    queues,
		logger:    logger,
	}
}

// publish emits one outbound message. Publish failures are logged and
// swallowed: the state transition is already committed, so re-processing the
// inbound message would not help.
func (c *Coordinator) publish(ctx context.Context, queue, destination, body string) {
	if err := c.publisher.Publish(ctx, queue, body); err != nil {
		c.logger.Error("publish failed",
			"queue", queue,
			"destination", destination,
			"error", err)
		metrics.RecordPublish(destination, "error")
		return
	}
	metrics.RecordPublish(destination, "ok")
}

// respond emits a response on the per-client queue of a user
func (c *Coordinator) respond(ctx context.Context, userID, body string) {
	c.publish(ctx, c.queues.Client(userID), destClient, body)
}
