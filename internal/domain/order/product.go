package order

import "fmt"

// ProductState represents the pick status of a product line inside an order
type ProductState string

const (
	// ProductStateUndefined indicates no robot has reported on the product yet
	ProductStateUndefined ProductState = "UNDEFINED"

	// ProductStateFound indicates a picker robot located the product in storage
	ProductStateFound ProductState = "FOUND"

	// ProductStateNotFound indicates a picker robot could not locate the product
	ProductStateNotFound ProductState = "NOT_FOUND"
)

// Product is a single line item inside an order. It is not a catalog entity:
// the name is carried in-band on the wire and only has meaning within its order.
//
// Invariants:
// - A product leaves UNDEFINED at most once; there is no FOUND ↔ NOT_FOUND path
type Product struct {
	name  string
	state ProductState
}

// NewProduct creates a product in the initial UNDEFINED state
func NewProduct(name string) *Product {
	return &Product{name: name, state: ProductStateUndefined}
}

// RestoreProduct reconstructs a product from persisted data
func RestoreProduct(name string, state ProductState) *Product {
	return &Product{name: name, state: state}
}

// Getters

func (p *Product) Name() string        { return p.name }
func (p *Product) State() ProductState { return p.state }

// State transition methods

// MarkFound transitions the product from UNDEFINED to FOUND
func (p *Product) MarkFound() error {
	if p.state != ProductStateUndefined {
		return fmt.Errorf("cannot mark product %s found in %s state", p.name, p.state)
	}
	p.state = ProductStateFound
	return nil
}

// MarkNotFound transitions the product from UNDEFINED to NOT_FOUND
func (p *Product) MarkNotFound() error {
	if p.state != ProductStateUndefined {
		return fmt.Errorf("cannot mark product %s not found in %s state", p.name, p.state)
	}
	p.state = ProductStateNotFound
	return nil
}

// IsResolved returns true once the product has left UNDEFINED
func (p *Product) IsResolved() bool {
	return p.state != ProductStateUndefined
}

// String provides human-readable representation
func (p *Product) String() string {
	return p.name + " " + string(p.state)
}
