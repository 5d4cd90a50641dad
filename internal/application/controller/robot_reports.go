package controller

import (
	"context"

	"github.com/google/uuid"

	"github.com/saimazoom/warehouse-go/internal/adapters/metrics"
	"github.com/saimazoom/warehouse-go/internal/domain/order"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

// absorbs reports whether a robot report for the order should be dropped
// without a transaction: the order is unknown, or it already left the
// temporary states and nothing may change any more. This fast path is a
// plain read; the transition inside UpdateOrder re-checks the state under
// the store lock, so a CANCEL committing right after this read still cannot
// lose its terminal state.
func (c *Coordinator) absorbs(ctx context.Context, id uuid.UUID) (bool, error) {
	o, err := c.store.GetOrder(ctx, id)
	if err != nil {
		return false, err
	}
	return o == nil || !o.State().IsTemporary(), nil
}

// handleMoved records that a robot found a product. Once the last product is
// found the order moves to the conveyor and the delivery pool is told to
// pick it up.
func (c *Coordinator) handleMoved(ctx context.Context, id uuid.UUID, product string) string {
	absorb, err := c.absorbs(ctx, id)
	if err != nil {
		c.logger.Error("moved report failed", "order", id, "product", product, "error", err)
		return outcomeError
	}
	if absorb {
		return outcomeAbsorbed
	}

	snapshot, err := c.store.UpdateOrder(ctx, id, order.Moved(product), "")
	if err != nil {
		c.logger.Error("moved report failed", "order", id, "product", product, "error", err)
		return outcomeError
	}
	if snapshot == nil {
		return outcomeAbsorbed
	}

	metrics.RecordOrderTransition("MOVED", string(snapshot.State()))
	if snapshot.State() == order.OrderStateInConveyor {
		c.publish(ctx, c.queues.ControllerToDelivery(), destDelivery,
			wire.Delivery(snapshot.ClientID(), id.String(), snapshot.ProductNames()))
	}
	return outcomeOK
}

// handleNotFound records that a robot could not find a product. One missing
// product fails the whole order; the owner is told once, and later reports
// for sibling products are absorbed by the temporary-state guard.
func (c *Coordinator) handleNotFound(ctx context.Context, id uuid.UUID, product string) string {
	absorb, err := c.absorbs(ctx, id)
	if err != nil {
		c.logger.Error("not-found report failed", "order", id, "product", product, "error", err)
		return outcomeError
	}
	if absorb {
		return outcomeAbsorbed
	}

	snapshot, err := c.store.UpdateOrder(ctx, id, order.NotFound(product), "")
	if err != nil {
		c.logger.Error("not-found report failed", "order", id, "product", product, "error", err)
		return outcomeError
	}
	if snapshot == nil {
		return outcomeAbsorbed
	}

	metrics.RecordOrderTransition("NOT_FOUND", string(snapshot.State()))
	if snapshot.State() == order.OrderStateFailed {
		c.respond(ctx, snapshot.ClientID(), wire.RequestFailed(id.String()))
	}
	return outcomeOK
}
