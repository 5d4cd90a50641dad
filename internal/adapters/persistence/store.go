package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saimazoom/warehouse-go/internal/domain/client"
	"github.com/saimazoom/warehouse-go/internal/domain/order"
)

// GormStore is the durable state of the pipeline behind a single exclusive
// lock. Every operation takes the lock for its whole transaction - read,
// transition decision and write - so no two transactions interleave. That is
// what keeps the per-order state machine safe under the three concurrent
// intake consumers.
type GormStore struct {
	mu sync.Mutex
	db *gorm.DB
}

// NewGormStore creates a store on an already-migrated database
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetClientState returns the stored state of a client, or NOT_REGISTERED if
// the client is unknown
func (s *GormStore) GetClientState(ctx context.Context, userID string) (client.ClientState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getClientState(s.db.WithContext(ctx), userID)
}

// RegisterClient adds a client in SIGNED_OUT state. It reports false if the
// client already exists.
func (s *GormStore) RegisterClient(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registered := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := s.getClientState(tx, userID)
		if err != nil {
			return err
		}
		if state != client.ClientStateNotRegistered {
			return nil
		}

		c := client.NewClient(userID)
		model := ClientModel{UserID: c.UserID(), ClientState: string(c.State())}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to register client %s: %w", userID, err)
		}
		registered = true
		return nil
	})
	return registered, err
}

// UpdateClient moves a client to the given state. It reports false if the
// client is unknown or the transition is illegal.
func (s *GormStore) UpdateClient(ctx context.Context, userID string, next client.ClientState) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := s.getClientState(tx, userID)
		if err != nil {
			return err
		}
		if !state.CanTransitionTo(next) {
			return nil
		}

		result := tx.Model(&ClientModel{}).
			Where("user_id = ?", userID).
			Update("client_state", string(next))
		if result.Error != nil {
			return fmt.Errorf("failed to update client %s: %w", userID, result.Error)
		}
		updated = true
		return nil
	})
	return updated, err
}

// GetOrder loads an order with its products. It returns (nil, nil) when the
// order does not exist.
func (s *GormStore) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getOrder(s.db.WithContext(ctx), id)
}

// AddOrder persists a fresh order with its products. It reports false if the
// order id is already taken or the owning client is not signed in.
func (s *GormStore) AddOrder(ctx context.Context, o *order.Order) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.getOrder(tx, o.ID())
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		state, err := s.getClientState(tx, o.ClientID())
		if err != nil {
			return err
		}
		if state != client.ClientStateSignedIn {
			return nil
		}

		model := OrderModel{
			OrderID:  o.ID().String(),
			UserID:   o.ClientID(),
			ReqState: string(o.State()),
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to insert order %s: %w", o.ID(), err)
		}

		products := make([]OrderProductModel, 0, len(o.Products()))
		for i, p := range o.Products() {
			products = append(products, OrderProductModel{
				OrderID:   o.ID().String(),
				Name:      p.Name(),
				Position:  i,
				ProdState: string(p.State()),
			})
		}
		if len(products) > 0 {
			// A duplicate product name violates the composite key and
			// rolls the whole order back
			if err := tx.Create(&products).Error; err != nil {
				return fmt.Errorf("failed to insert products of order %s: %w", o.ID(), err)
			}
		}
		added = true
		return nil
	})
	return added, err
}

// UpdateOrder atomically loads the order, applies the transition to the
// snapshot and writes the result back: the order state unconditionally, plus
// the one product the transition resolved, if any. An illegal transition
// writes the unchanged state back and returns the untouched snapshot.
//
// When owner is non-empty it must match the order's client and that client
// must be signed in, or the operation fails without side effects.
//
// It returns (nil, nil) when the order does not exist or the owner check
// fails.
func (s *GormStore) UpdateOrder(ctx context.Context, id uuid.UUID, t order.Transition, owner string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot *order.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.getOrder(tx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return nil
		}

		if owner != "" {
			state, err := s.getClientState(tx, owner)
			if err != nil {
				return err
			}
			if o.ClientID() != owner || state != client.ClientStateSignedIn {
				return nil
			}
		}

		product := t.Apply(o)

		result := tx.Model(&OrderModel{}).
			Where("order_id = ?", id.String()).
			Update("req_state", string(o.State()))
		if result.Error != nil {
			return fmt.Errorf("failed to update order %s: %w", id, result.Error)
		}

		if product != nil {
			result := tx.Model(&OrderProductModel{}).
				Where("order_id = ? AND name = ?", id.String(), product.Name()).
				Update("prod_state", string(product.State()))
			if result.Error != nil {
				return fmt.Errorf("failed to update product %q of order %s: %w",
					product.Name(), id, result.Error)
			}
		}

		snapshot = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ListClientOrders returns every order of a client, in order-id order
func (s *GormStore) ListClientOrders(ctx context.Context, userID string) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.db.WithContext(ctx)

	var models []OrderModel
	if err := tx.Where("user_id = ?", userID).Order("order_id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders of client %s: %w", userID, err)
	}

	orders := make([]*order.Order, 0, len(models))
	for _, m := range models {
		id, err := uuid.Parse(m.OrderID)
		if err != nil {
			return nil, fmt.Errorf("invalid order id %q in database: %w", m.OrderID, err)
		}
		o, err := s.getOrder(tx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Close closes the underlying database connection
func (s *GormStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// getClientState reads a client state inside an open transaction
func (s *GormStore) getClientState(tx *gorm.DB, userID string) (client.ClientState, error) {
	var model ClientModel
	result := tx.Where("user_id = ?", userID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return client.ClientStateNotRegistered, nil
		}
		return "", fmt.Errorf("failed to load client %s: %w", userID, result.Error)
	}
	return client.ClientState(model.ClientState), nil
}

// getOrder reads an order and its products inside an open transaction.
// Products come back by position, the sequence the client submitted them in.
func (s *GormStore) getOrder(tx *gorm.DB, id uuid.UUID) (*order.Order, error) {
	var model OrderModel
	result := tx.Where("order_id = ?", id.String()).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load order %s: %w", id, result.Error)
	}

	var productModels []OrderProductModel
	if err := tx.Where("order_id = ?", id.String()).Order("position").Find(&productModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load products of order %s: %w", id, err)
	}

	products := make([]*order.Product, 0, len(productModels))
	for _, pm := range productModels {
		products = append(products, order.RestoreProduct(pm.Name, order.ProductState(pm.ProdState)))
	}
	return order.RestoreOrder(id, model.UserID, products, order.OrderState(model.ReqState)), nil
}
