package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OrderState represents the lifecycle state of an order
type OrderState string

const (
	// OrderStateInStorage indicates the order was accepted and its products are being picked
	OrderStateInStorage OrderState = "IN_STORAGE"

	// OrderStateInConveyor indicates every product was found and the order awaits delivery
	OrderStateInConveyor OrderState = "IN_CONVEYOR"

	// OrderStateDelivered indicates the order was handed to the client
	OrderStateDelivered OrderState = "DELIVERED"

	// OrderStateCancelled indicates the client cancelled the order while still in storage
	OrderStateCancelled OrderState = "CANCELLED"

	// OrderStateFailed indicates a product was missing or delivery exhausted its attempts
	OrderStateFailed OrderState = "FAILED"
)

// IsTemporary returns true for the states from which further transitions are permitted
func (s OrderState) IsTemporary() bool {
	return s == OrderStateInStorage || s == OrderStateInConveyor
}

// IsTerminal returns true for the final states
func (s OrderState) IsTerminal() bool {
	return !s.IsTemporary()
}

// Order is a client's request for a set of named products and the primary
// state-bearing entity of the pipeline.
//
// Invariants:
// - Product insertion order is preserved; wire messages repeat it verbatim
// - An order in a terminal state is never mutated again
// - IN_CONVEYOR is only reachable once every product is FOUND
type Order struct {
	id       uuid.UUID
	clientID string
	products []*Product
	state    OrderState
}

// NewOrder creates an order in IN_STORAGE with a fresh random id and every
// product in UNDEFINED state
func NewOrder(clientID string, productNames []string) *Order {
	products := make([]*Product, 0, len(productNames))
	for _, name := range productNames {
		products = append(products, NewProduct(name))
	}
	return &Order{
		id:       uuid.New(),
		clientID: clientID,
		products: products,
		state:    OrderStateInStorage,
	}
}

// RestoreOrder reconstructs an order from persisted data
func RestoreOrder(id uuid.UUID, clientID string, products []*Product, state OrderState) *Order {
	return &Order{id: id, clientID: clientID, products: products, state: state}
}

// Getters

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) ClientID() string     { return o.clientID }
func (o *Order) State() OrderState    { return o.state }
func (o *Order) Products() []*Product { return o.products }

// ProductNames returns the product names in insertion order
func (o *Order) ProductNames() []string {
	names := make([]string, 0, len(o.products))
	for _, p := range o.products {
		names = append(names, p.Name())
	}
	return names
}

// State transition methods

// Cancel transitions the order from IN_STORAGE to CANCELLED.
// An order already on the conveyor can no longer be cancelled.
func (o *Order) Cancel() error {
	if o.state != OrderStateInStorage {
		return fmt.Errorf("cannot cancel order in %s state", o.state)
	}
	o.state = OrderStateCancelled
	return nil
}

// MarkFound transitions the first UNDEFINED product with the given name to
// FOUND and returns it
func (o *Order) MarkFound(name string) (*Product, error) {
	if o.state != OrderStateInStorage {
		return nil, fmt.Errorf("cannot resolve products of order in %s state", o.state)
	}
	for _, p := range o.products {
		if p.Name() == name && p.State() == ProductStateUndefined {
			if err := p.MarkFound(); err != nil {
				return nil, err
			}
			return p, nil
		}
	}
	return nil, fmt.Errorf("order %s has no unresolved product %q", o.id, name)
}

// MarkNotFound transitions the first UNDEFINED product with the given name to
// NOT_FOUND and fails the whole order: one missing product is enough.
func (o *Order) MarkNotFound(name string) (*Product, error) {
	if o.state != OrderStateInStorage {
		return nil, fmt.Errorf("cannot resolve products of order in %s state", o.state)
	}
	for _, p := range o.products {
		if p.Name() == name && p.State() == ProductStateUndefined {
			if err := p.MarkNotFound(); err != nil {
				return nil, err
			}
			o.state = OrderStateFailed
			return p, nil
		}
	}
	return nil, fmt.Errorf("order %s has no unresolved product %q", o.id, name)
}

// MoveToConveyor transitions the order from IN_STORAGE to IN_CONVEYOR once
// every product has been found
func (o *Order) MoveToConveyor() error {
	if o.state != OrderStateInStorage {
		return fmt.Errorf("cannot move order to conveyor in %s state", o.state)
	}
	if !o.AllProductsFound() {
		return fmt.Errorf("cannot move order to conveyor: not all products found")
	}
	o.state = OrderStateInConveyor
	return nil
}

// Deliver transitions the order from IN_CONVEYOR to DELIVERED
func (o *Order) Deliver() error {
	if o.state != OrderStateInConveyor {
		return fmt.Errorf("cannot deliver order in %s state", o.state)
	}
	o.state = OrderStateDelivered
	return nil
}

// Fail transitions the order from any temporary state to FAILED
func (o *Order) Fail() error {
	if !o.state.IsTemporary() {
		return fmt.Errorf("cannot fail order in %s state", o.state)
	}
	o.state = OrderStateFailed
	return nil
}

// State queries

// AllProductsFound returns true when every product is FOUND
func (o *Order) AllProductsFound() bool {
	for _, p := range o.products {
		if p.State() != ProductStateFound {
			return false
		}
	}
	return true
}

// String provides human-readable representation
func (o *Order) String() string {
	return fmt.Sprintf("Order[%s, client=%s, products=%s, state=%s]",
		o.id, o.clientID, strings.Join(o.ProductNames(), ","), o.state)
}
