package controller

import (
	"context"

	"github.com/google/uuid"

	"github.com/saimazoom/warehouse-go/internal/adapters/metrics"
	"github.com/saimazoom/warehouse-go/internal/domain/client"
	"github.com/saimazoom/warehouse-go/internal/domain/order"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

// handleSignUp attempts NOT_REGISTERED → SIGNED_OUT
func (c *Coordinator) handleSignUp(ctx context.Context, userID string) string {
	ok, err := c.store.RegisterClient(ctx, userID)
	if err != nil {
		c.logger.Error("sign-up failed", "user", userID, "error", err)
		c.respond(ctx, userID, wire.VerbSignUpFailed)
		return outcomeError
	}
	if !ok {
		c.respond(ctx, userID, wire.VerbSignUpFailed)
		return outcomeRejected
	}
	c.respond(ctx, userID, wire.VerbSignedUp)
	return outcomeOK
}

// handleSignIn attempts SIGNED_OUT → SIGNED_IN. Unknown users and already
// open sessions fail the same way.
func (c *Coordinator) handleSignIn(ctx context.Context, userID string) string {
	ok, err := c.store.UpdateClient(ctx, userID, client.ClientStateSignedIn)
	if err != nil {
		c.logger.Error("sign-in failed", "user", userID, "error", err)
		c.respond(ctx, userID, wire.VerbSignInFailed)
		return outcomeError
	}
	if !ok {
		c.respond(ctx, userID, wire.VerbSignInFailed)
		return outcomeRejected
	}
	c.respond(ctx, userID, wire.VerbSignedIn)
	return outcomeOK
}

// handleSignOut attempts SIGNED_IN → SIGNED_OUT
func (c *Coordinator) handleSignOut(ctx context.Context, userID string) string {
	ok, err := c.store.UpdateClient(ctx, userID, client.ClientStateSignedOut)
	if err != nil {
		c.logger.Error("sign-out failed", "user", userID, "error", err)
		c.respond(ctx, userID, wire.VerbSignOutFailed)
		return outcomeError
	}
	if !ok {
		c.respond(ctx, userID, wire.VerbSignOutFailed)
		return outcomeRejected
	}
	c.respond(ctx, userID, wire.VerbSignedOut)
	return outcomeOK
}

// handleRequest creates an order for a signed-in client and asks the robots
// to pick every product. The store enforces the signed-in precondition
// inside the same transaction that inserts the order.
func (c *Coordinator) handleRequest(ctx context.Context, userID string, products []string) string {
	o := order.NewOrder(userID, products)

	ok, err := c.store.AddOrder(ctx, o)
	if err != nil {
		// Covers duplicate product names in one request: the composite
		// product key rejects the insert and the whole order rolls back
		c.logger.Error("request failed", "user", userID, "order", o.ID(), "error", err)
		c.respond(ctx, userID, wire.VerbRequestFailed)
		return outcomeError
	}
	if !ok {
		c.respond(ctx, userID, wire.VerbRequestFailed)
		return outcomeRejected
	}

	metrics.RecordOrderTransition("CREATE", string(o.State()))
	c.respond(ctx, userID, wire.RequestCreated(o.ID().String(), o.ProductNames()))
	for _, name := range o.ProductNames() {
		c.publish(ctx, c.queues.ControllerToRobot(), destRobot, wire.Move(o.ID().String(), name))
	}
	return outcomeOK
}

// handleCancel cancels an order that is still in storage. Every failure —
// not signed in, malformed or unknown id, wrong owner, order already on the
// conveyor or settled — answers CANCEL_FAILED with the id token the client
// sent.
func (c *Coordinator) handleCancel(ctx context.Context, userID, rawOrderID string) string {
	state, err := c.store.GetClientState(ctx, userID)
	if err != nil {
		c.logger.Error("cancel failed", "user", userID, "order", rawOrderID, "error", err)
		c.respond(ctx, userID, wire.CancelFailed(rawOrderID))
		return outcomeError
	}
	if state != client.ClientStateSignedIn {
		c.respond(ctx, userID, wire.CancelFailed(rawOrderID))
		return outcomeRejected
	}

	id, err := uuid.Parse(rawOrderID)
	if err != nil {
		// The verb and user are understood, so the rejection is still
		// attributable even though the id token is garbage
		c.respond(ctx, userID, wire.CancelFailed(rawOrderID))
		return outcomeRejected
	}

	o, err := c.store.GetOrder(ctx, id)
	if err != nil {
		c.logger.Error("cancel failed", "user", userID, "order", id, "error", err)
		c.respond(ctx, userID, wire.CancelFailed(rawOrderID))
		return outcomeError
	}
	if o == nil || o.ClientID() != userID || !o.State().IsTemporary() {
		c.respond(ctx, userID, wire.CancelFailed(rawOrderID))
		return outcomeRejected
	}

	snapshot, err := c.store.UpdateOrder(ctx, id, order.Cancel(), userID)
	if err != nil {
		c.logger.Error("cancel failed", "user", userID, "order", id, "error", err)
		c.respond(ctx, userID, wire.CancelFailed(rawOrderID))
		return outcomeError
	}
	if snapshot == nil || snapshot.State() != order.OrderStateCancelled {
		// IN_CONVEYOR survives the cancel attempt untouched
		c.respond(ctx, userID, wire.CancelFailed(rawOrderID))
		return outcomeRejected
	}

	metrics.RecordOrderTransition("CANCEL", string(snapshot.State()))
	c.respond(ctx, userID, wire.Cancelled(id.String()))
	return outcomeOK
}

// handleView lists every order of a signed-in client
func (c *Coordinator) handleView(ctx context.Context, userID string) string {
	state, err := c.store.GetClientState(ctx, userID)
	if err != nil {
		c.logger.Error("view failed", "user", userID, "error", err)
		c.respond(ctx, userID, wire.VerbViewFailed)
		return outcomeError
	}
	if state != client.ClientStateSignedIn {
		c.respond(ctx, userID, wire.VerbViewFailed)
		return outcomeRejected
	}

	orders, err := c.store.ListClientOrders(ctx, userID)
	if err != nil {
		c.logger.Error("view failed", "user", userID, "error", err)
		c.respond(ctx, userID, wire.VerbViewFailed)
		return outcomeError
	}

	lines := make([]string, 0, len(orders))
	for _, o := range orders {
		lines = append(lines, wire.OrderLine(o.ID().String(), o.ProductNames(), string(o.State())))
	}
	c.respond(ctx, userID, wire.FoundRequests(lines))
	return outcomeOK
}
