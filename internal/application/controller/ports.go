package controller

import (
	"context"

	"github.com/google/uuid"

	"github.com/saimazoom/warehouse-go/internal/domain/client"
	"github.com/saimazoom/warehouse-go/internal/domain/order"
)

// Store is the durable pipeline state the coordinator reads and mutates.
// Implementations must serialise every operation: one exclusive lock spans
// the read, the transition decision and the write, so no two transactions
// interleave.
type Store interface {
	// GetClientState returns NOT_REGISTERED for unknown user ids
	GetClientState(ctx context.Context, userID string) (client.ClientState, error)

	// RegisterClient adds a client in SIGNED_OUT state; false if it exists
	RegisterClient(ctx context.Context, userID string) (bool, error)

	// UpdateClient moves a client to the given state; false if the
	// transition is illegal
	UpdateClient(ctx context.Context, userID string, next client.ClientState) (bool, error)

	// GetOrder loads an order with its products; (nil, nil) when absent
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)

	// AddOrder persists a fresh order; false if the id is taken or the
	// owner is not signed in
	AddOrder(ctx context.Context, o *order.Order) (bool, error)

	// UpdateOrder applies the transition inside the store transaction and
	// returns the resulting snapshot. A non-empty owner must match the
	// order's client or the operation fails without side effects.
	UpdateOrder(ctx context.Context, id uuid.UUID, t order.Transition, owner string) (*order.Order, error)

	// ListClientOrders returns every order of a client
	ListClientOrders(ctx context.Context, userID string) ([]*order.Order, error)

	Close() error
}

// Publisher emits one message to one queue. Implementations mark every
// message persistent and are safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, queue, body string) error
	Close() error
}
