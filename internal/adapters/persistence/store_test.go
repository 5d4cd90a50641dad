package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saimazoom/warehouse-go/internal/adapters/persistence"
	"github.com/saimazoom/warehouse-go/internal/domain/client"
	"github.com/saimazoom/warehouse-go/internal/domain/order"
	"github.com/saimazoom/warehouse-go/test/helpers"
)

func newStore(t *testing.T) *persistence.GormStore {
	return persistence.NewGormStore(helpers.NewTestDB(t))
}

// signUpAndIn registers a client and opens a session
func signUpAndIn(t *testing.T, store *persistence.GormStore, userID string) {
	t.Helper()
	ok, err := store.RegisterClient(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = store.UpdateClient(context.Background(), userID, client.ClientStateSignedIn)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGormStore_GetClientStateUnknown(t *testing.T) {
	// Arrange
	store := newStore(t)

	// Act
	state, err := store.GetClientState(context.Background(), "nobody")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, client.ClientStateNotRegistered, state)
}

func TestGormStore_RegisterClient(t *testing.T) {
	// Arrange
	store := newStore(t)

	// Act
	ok, err := store.RegisterClient(context.Background(), "alice")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)

	state, err := store.GetClientState(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, client.ClientStateSignedOut, state)

	// Act - registering again fails
	ok, err = store.RegisterClient(context.Background(), "alice")

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormStore_UpdateClient(t *testing.T) {
	// Arrange
	store := newStore(t)
	ok, err := store.RegisterClient(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, ok)

	// Act - sign in
	ok, err = store.UpdateClient(context.Background(), "alice", client.ClientStateSignedIn)

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)

	// Act - signing in twice is illegal
	ok, err = store.UpdateClient(context.Background(), "alice", client.ClientStateSignedIn)

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)

	// Act - unknown clients cannot transition
	ok, err = store.UpdateClient(context.Background(), "bob", client.ClientStateSignedIn)

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormStore_AddOrderAndGetOrder(t *testing.T) {
	// Arrange
	store := newStore(t)
	signUpAndIn(t, store, "alice")
	o := order.NewOrder("alice", []string{"pen", "notebook"})

	// Act
	ok, err := store.AddOrder(context.Background(), o)

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)

	// Act - round trip
	found, err := store.GetOrder(context.Background(), o.ID())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, o.ID(), found.ID())
	assert.Equal(t, "alice", found.ClientID())
	assert.Equal(t, order.OrderStateInStorage, found.State())
	assert.Equal(t, []string{"pen", "notebook"}, found.ProductNames())
	for _, p := range found.Products() {
		assert.Equal(t, order.ProductStateUndefined, p.State())
	}
}

func TestGormStore_GetOrderPreservesInsertionOrder(t *testing.T) {
	// Arrange - submitted sequence runs against alphabetical order
	store := newStore(t)
	signUpAndIn(t, store, "alice")
	o := order.NewOrder("alice", []string{"pen", "apple", "notebook"})
	ok, err := store.AddOrder(context.Background(), o)
	require.NoError(t, err)
	require.True(t, ok)

	// Act
	found, err := store.GetOrder(context.Background(), o.ID())

	// Assert - products read back as the client phrased them
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"pen", "apple", "notebook"}, found.ProductNames())
}

func TestGormStore_AddOrderRequiresSignedIn(t *testing.T) {
	// Arrange - registered but signed out
	store := newStore(t)
	ok, err := store.RegisterClient(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, ok)

	// Act
	ok, err = store.AddOrder(context.Background(), order.NewOrder("alice", []string{"pen"}))

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormStore_AddOrderDuplicateID(t *testing.T) {
	// Arrange
	store := newStore(t)
	signUpAndIn(t, store, "alice")
	o := order.NewOrder("alice", []string{"pen"})
	ok, err := store.AddOrder(context.Background(), o)
	require.NoError(t, err)
	require.True(t, ok)

	// Act - same id again
	ok, err = store.AddOrder(context.Background(), o)

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormStore_AddOrderDuplicateProductName(t *testing.T) {
	// Arrange
	store := newStore(t)
	signUpAndIn(t, store, "alice")

	// Act - two lines of the same product violate the composite key
	ok, err := store.AddOrder(context.Background(), order.NewOrder("alice", []string{"pen", "pen"}))

	// Assert - nothing persisted
	assert.Error(t, err)
	assert.False(t, ok)
	orders, err := store.ListClientOrders(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGormStore_GetOrderMissing(t *testing.T) {
	// Arrange
	store := newStore(t)

	// Act
	found, err := store.GetOrder(context.Background(), uuid.New())

	// Assert
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormStore_UpdateOrderMoved(t *testing.T) {
	// Arrange
	store := newStore(t)
	signUpAndIn(t, store, "alice")
	o := order.NewOrder("alice", []string{"pen", "notebook"})
	ok, err := store.AddOrder(context.Background(), o)
	require.NoError(t, err)
	require.True(t, ok)

	// Act - first product found
	snapshot, err := store.UpdateOrder(context.Background(), o.ID(), order.Moved("pen"), "")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, order.OrderStateInStorage, snapshot.State())

	// Act - last product found moves the order to the conveyor
	snapshot, err = store.UpdateOrder(context.Background(), o.ID(), order.Moved("notebook"), "")

	// Assert - persisted, not just in the snapshot
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, order.OrderStateInConveyor, snapshot.State())

	found, err := store.GetOrder(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.OrderStateInConveyor, found.State())
	assert.True(t, found.AllProductsFound())
}

func TestGormStore_UpdateOrderNotFound(t *testing.T) {
	// Arrange
	store := newStore(t)
	signUpAndIn(t, store, "alice")
	o := order.NewOrder("alice", []string{"pen", "notebook"})
	ok, err := store.AddOrder(context.Background(), o)
	require.NoError(t, err)
	require.True(t, ok)

	// Act
	snapshot, err := store.UpdateOrder(context.Background(), o.ID(), order.NotFound("notebook"), "")

	// Assert - one missing product fails the order and resolves only that row
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, order.OrderStateFailed, snapshot.State())

	found, err := store.GetOrder(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.OrderStateFailed, found.State())
	for _, p := range found.Products() {
		switch p.Name() {
		case "notebook":
			assert.Equal(t, order.ProductStateNotFound, p.State())
		case "pen":
			assert.Equal(t, order.ProductStateUndefined, p.State())
		}
	}
}

func TestGormStore_UpdateOrderAbsorbsIllegalTransition(t *testing.T) {
	// Arrange - cancelled order, late MOVED arrives
	store := newStore(t)
	signUpAndIn(t, store, "alice")
	o := order.NewOrder("alice", []string{"pen"})
	ok, err := store.AddOrder(context.Background(), o)
	require.NoError(t, err)
	require.True(t, ok)
	snapshot, err := store.UpdateOrder(context.Background(), o.ID(), order.Cancel(), "alice")
	require.NoError(t, err)
	require.Equal(t, order.OrderStateCancelled, snapshot.State())

	// Act
	snapshot, err = store.UpdateOrder(context.Background(), o.ID(), order.Moved("pen"), "")

	// Assert - untouched snapshot comes back, nothing changed on disk
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, order.OrderStateCancelled, snapshot.State())

	found, err := store.GetOrder(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.OrderStateCancelled, found.State())
	assert.Equal(t, order.ProductStateUndefined, found.Products()[0].State())
}

func TestGormStore_UpdateOrderOwnerChecks(t *testing.T) {
	// Arrange
	store := newStore(t)
	signUpAndIn(t, store, "alice")
	signUpAndIn(t, store, "mallory")
	o := order.NewOrder("alice", []string{"pen"})
	ok, err := store.AddOrder(context.Background(), o)
	require.NoError(t, err)
	require.True(t, ok)

	// Act - wrong owner
	snapshot, err := store.UpdateOrder(context.Background(), o.ID(), order.Cancel(), "mallory")

	// Assert - no result, no side effects
	require.NoError(t, err)
	assert.Nil(t, snapshot)
	found, err := store.GetOrder(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.OrderStateInStorage, found.State())

	// Arrange - right owner but signed out
	ok, err = store.UpdateClient(context.Background(), "alice", client.ClientStateSignedOut)
	require.NoError(t, err)
	require.True(t, ok)

	// Act
	snapshot, err = store.UpdateOrder(context.Background(), o.ID(), order.Cancel(), "alice")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestGormStore_UpdateOrderMissing(t *testing.T) {
	// Arrange
	store := newStore(t)

	// Act
	snapshot, err := store.UpdateOrder(context.Background(), uuid.New(), order.Deliver(), "")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestGormStore_ListClientOrders(t *testing.T) {
	// Arrange
	store := newStore(t)
	signUpAndIn(t, store, "alice")
	signUpAndIn(t, store, "bob")
	first := order.NewOrder("alice", []string{"pen"})
	second := order.NewOrder("alice", []string{"notebook"})
	other := order.NewOrder("bob", []string{"hammer"})
	for _, o := range []*order.Order{first, second, other} {
		ok, err := store.AddOrder(context.Background(), o)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Act
	orders, err := store.ListClientOrders(context.Background(), "alice")

	// Assert - only alice's orders, each with products
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "alice", o.ClientID())
		assert.Len(t, o.Products(), 1)
	}

	// Act - unknown client
	orders, err = store.ListClientOrders(context.Background(), "nobody")

	// Assert
	require.NoError(t, err)
	assert.Empty(t, orders)
}
