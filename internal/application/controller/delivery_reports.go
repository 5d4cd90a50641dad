package controller

import (
	"context"

	"github.com/google/uuid"

	"github.com/saimazoom/warehouse-go/internal/adapters/metrics"
	"github.com/saimazoom/warehouse-go/internal/domain/order"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

// handleDelivered settles an order the delivery pool handed over. The
// client heard RECEIVE from the delivery agent directly, so nothing more is
// emitted here. Unknown orders and orders not on the conveyor are absorbed.
func (c *Coordinator) handleDelivered(ctx context.Context, id uuid.UUID) string {
	snapshot, err := c.store.UpdateOrder(ctx, id, order.Deliver(), "")
	if err != nil {
		c.logger.Error("delivered report failed", "order", id, "error", err)
		return outcomeError
	}
	if snapshot == nil {
		return outcomeAbsorbed
	}

	metrics.RecordOrderTransition("DELIVER", string(snapshot.State()))
	return outcomeOK
}

// handleDeliveryFailed fails an order the delivery pool gave up on and tells
// the owner. Redelivered reports find the order already FAILED and repeat
// the notice, which the at-least-once contract allows.
func (c *Coordinator) handleDeliveryFailed(ctx context.Context, id uuid.UUID) string {
	snapshot, err := c.store.UpdateOrder(ctx, id, order.Fail(), "")
	if err != nil {
		c.logger.Error("delivery-failed report failed", "order", id, "error", err)
		return outcomeError
	}
	if snapshot == nil {
		return outcomeAbsorbed
	}

	metrics.RecordOrderTransition("FAIL", string(snapshot.State()))
	if snapshot.State() == order.OrderStateFailed {
		c.respond(ctx, snapshot.ClientID(), wire.RequestFailed(id.String()))
	}
	return outcomeOK
}
