package simulation

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/saimazoom/warehouse-go/internal/infrastructure/config"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

// Delivery simulates a delivery agent. For each DELIVERY it drives to the
// client up to the configured number of attempts; on success it hands the
// parcel over with a RECEIVE notice straight to the client's queue and
// reports DELIVERED, otherwise it reports DELIVERY_FAILED.
type Delivery struct {
	cfg       config.DeliveryConfig
	queues    wire.Queues
	publisher Publisher
	logger    *slog.Logger
	rng       *rand.Rand
}

// NewDelivery builds a delivery agent with its own random source
func NewDelivery(cfg config.DeliveryConfig, queues wire.Queues, publisher Publisher, logger *slog.Logger) *Delivery {
	return &Delivery{
		cfg:       cfg,
		queues:    queues,
		publisher: publisher,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// HandleDelivery processes one DELIVERY <client> <order_id> <p…> message.
// Malformed messages are logged and dropped.
func (d *Delivery) HandleDelivery(ctx context.Context, body string) {
	tokens := strings.Fields(body)
	if len(tokens) < 4 || tokens[0] != wire.VerbDelivery {
		d.logger.Warn("dropping malformed message", "body", body)
		return
	}
	clientID, orderID, products := tokens[1], tokens[2], tokens[3:]

	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		if !sleep(ctx, d.rng, d.cfg.MinDelay, d.cfg.MaxDelay) {
			return
		}
		if d.rng.Float64() >= d.cfg.SuccessProbability {
			d.logger.Info("delivery attempt failed",
				"order", orderID, "client", clientID, "attempt", attempt)
			continue
		}

		// The hand-off notice bypasses the controller
		if err := d.publisher.Publish(ctx, d.queues.Client(clientID), wire.Receive(orderID, products)); err != nil {
			d.logger.Error("failed to notify client", "order", orderID, "client", clientID, "error", err)
		}
		if err := d.publisher.Publish(ctx, d.queues.DeliveryToController(), wire.Delivered(orderID)); err != nil {
			d.logger.Error("failed to report delivery", "order", orderID, "error", err)
			return
		}
		d.logger.Info("delivery succeeded", "order", orderID, "client", clientID, "attempt", attempt)
		return
	}

	if err := d.publisher.Publish(ctx, d.queues.DeliveryToController(), wire.DeliveryFailed(orderID)); err != nil {
		d.logger.Error("failed to report delivery failure", "order", orderID, "error", err)
		return
	}
	d.logger.Info("delivery gave up", "order", orderID, "client", clientID, "attempts", d.cfg.MaxAttempts)
}
