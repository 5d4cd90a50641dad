package order

// TransitionKind identifies which order transition a pipeline event requests
type TransitionKind string

const (
	// TransitionCancel requests cancellation on behalf of the owning client
	TransitionCancel TransitionKind = "CANCEL"

	// TransitionMoved records that the robot found a product
	TransitionMoved TransitionKind = "MOVED"

	// TransitionNotFound records that the robot could not find a product
	TransitionNotFound TransitionKind = "NOT_FOUND"

	// TransitionDeliver records a successful delivery
	TransitionDeliver TransitionKind = "DELIVER"

	// TransitionFail records an exhausted delivery
	TransitionFail TransitionKind = "FAIL"
)

// Transition is one of the five state changes the pipeline can request
// against a stored order. It is applied inside the store's transaction so
// that the read, the state change and the write happen under one lock.
type Transition struct {
	kind    TransitionKind
	product string
}

// Cancel builds a cancellation transition
func Cancel() Transition {
	return Transition{kind: TransitionCancel}
}

// Moved builds a product-found transition
func Moved(product string) Transition {
	return Transition{kind: TransitionMoved, product: product}
}

// NotFound builds a product-missing transition
func NotFound(product string) Transition {
	return Transition{kind: TransitionNotFound, product: product}
}

// Deliver builds a delivery-success transition
func Deliver() Transition {
	return Transition{kind: TransitionDeliver}
}

// Fail builds a delivery-failure transition
func Fail() Transition {
	return Transition{kind: TransitionFail}
}

// Getters

func (t Transition) Kind() TransitionKind { return t.kind }
func (t Transition) ProductName() string  { return t.product }

// Apply mutates the order according to the transition kind and returns the
// product it touched, if any. An illegal transition leaves the order
// untouched and returns nil; the caller decides what the resulting state
// means. Redelivered broker messages land here as no-ops.
func (t Transition) Apply(o *Order) *Product {
	switch t.kind {
	case TransitionCancel:
		_ = o.Cancel()
		return nil
	case TransitionMoved:
		if !o.State().IsTemporary() {
			return nil
		}
		p, err := o.MarkFound(t.product)
		if err != nil {
			return nil
		}
		if o.AllProductsFound() {
			_ = o.MoveToConveyor()
		}
		return p
	case TransitionNotFound:
		if !o.State().IsTemporary() {
			return nil
		}
		p, err := o.MarkNotFound(t.product)
		if err != nil {
			return nil
		}
		return p
	case TransitionDeliver:
		_ = o.Deliver()
		return nil
	case TransitionFail:
		_ = o.Fail()
		return nil
	}
	return nil
}
