package controller_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saimazoom/warehouse-go/internal/adapters/persistence"
	"github.com/saimazoom/warehouse-go/internal/application/controller"
	"github.com/saimazoom/warehouse-go/internal/domain/order"
	"github.com/saimazoom/warehouse-go/internal/wire"
	"github.com/saimazoom/warehouse-go/test/helpers"
)

// fixture drives the coordinator over a real store and a recording publisher
type fixture struct {
	coordinator *controller.Coordinator
	store       *persistence.GormStore
	pub         *helpers.MockPublisher
	queues      wire.Queues
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := persistence.NewGormStore(helpers.NewTestDB(t))
	pub := helpers.NewMockPublisher()
	queues := wire.NewQueues("test_")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		coordinator: controller.NewCoordinator(store, pub, queues, logger),
		store:       store,
		pub:         pub,
		queues:      queues,
	}
}

func (f *fixture) client(ctx context.Context, body string)   { f.coordinator.DispatchClient(ctx, body) }
func (f *fixture) robot(ctx context.Context, body string)    { f.coordinator.DispatchRobot(ctx, body) }
func (f *fixture) delivery(ctx context.Context, body string) { f.coordinator.DispatchDelivery(ctx, body) }

// lastTo returns the most recent message published to a queue
func (f *fixture) lastTo(t *testing.T, queue string) string {
	t.Helper()
	bodies := f.pub.MessagesTo(queue)
	require.NotEmpty(t, bodies, "no message published to %s", queue)
	return bodies[len(bodies)-1]
}

// signUpAndIn registers a client and opens a session through the wire
func (f *fixture) signUpAndIn(t *testing.T, userID string) {
	t.Helper()
	ctx := context.Background()
	f.client(ctx, wire.SignUp(userID))
	require.Equal(t, wire.VerbSignedUp, f.lastTo(t, f.queues.Client(userID)))
	f.client(ctx, wire.SignIn(userID))
	require.Equal(t, wire.VerbSignedIn, f.lastTo(t, f.queues.Client(userID)))
}

// request submits an order and returns its generated id
func (f *fixture) request(t *testing.T, userID string, products ...string) uuid.UUID {
	t.Helper()
	f.client(context.Background(), wire.Request(userID, products))
	response := f.lastTo(t, f.queues.Client(userID))
	tokens := strings.Fields(response)
	require.GreaterOrEqual(t, len(tokens), 2)
	require.Equal(t, wire.VerbRequestCreated, tokens[0])
	id, err := uuid.Parse(tokens[1])
	require.NoError(t, err)
	return id
}

func (f *fixture) orderState(t *testing.T, id uuid.UUID) order.OrderState {
	t.Helper()
	o, err := f.store.GetOrder(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o.State()
}

func TestCoordinator_SignUp(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()

	// Act
	f.client(ctx, "SIGN_UP alice")

	// Assert
	assert.Equal(t, wire.VerbSignedUp, f.lastTo(t, f.queues.Client("alice")))

	// Act - duplicate registration
	f.client(ctx, "SIGN_UP alice")

	// Assert
	assert.Equal(t, wire.VerbSignUpFailed, f.lastTo(t, f.queues.Client("alice")))
}

func TestCoordinator_SignInUnknownUser(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	f.client(context.Background(), "SIGN_IN ghost")

	// Assert
	assert.Equal(t, wire.VerbSignInFailed, f.lastTo(t, f.queues.Client("ghost")))
}

func TestCoordinator_SignInTwice(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")

	// Act
	f.client(context.Background(), "SIGN_IN alice")

	// Assert
	assert.Equal(t, wire.VerbSignInFailed, f.lastTo(t, f.queues.Client("alice")))
}

func TestCoordinator_SignOut(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	ctx := context.Background()

	// Act
	f.client(ctx, "SIGN_OUT alice")

	// Assert
	assert.Equal(t, wire.VerbSignedOut, f.lastTo(t, f.queues.Client("alice")))

	// Act - session already closed
	f.client(ctx, "SIGN_OUT alice")

	// Assert
	assert.Equal(t, wire.VerbSignOutFailed, f.lastTo(t, f.queues.Client("alice")))
}

func TestCoordinator_RequestNotSignedIn(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.client(context.Background(), "SIGN_UP alice")

	// Act - registered but signed out
	f.client(context.Background(), "REQUEST alice pen")

	// Assert - bare REQUEST_FAILED, nothing to robots
	assert.Equal(t, wire.VerbRequestFailed, f.lastTo(t, f.queues.Client("alice")))
	assert.Empty(t, f.pub.MessagesTo(f.queues.ControllerToRobot()))
}

func TestCoordinator_RequestEmitsOneMovePerProduct(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")

	// Act
	id := f.request(t, "alice", "pen", "paper")

	// Assert
	assert.Equal(t, order.OrderStateInStorage, f.orderState(t, id))
	moves := f.pub.MessagesTo(f.queues.ControllerToRobot())
	require.Len(t, moves, 2)
	assert.Equal(t, wire.Move(id.String(), "pen"), moves[0])
	assert.Equal(t, wire.Move(id.String(), "paper"), moves[1])
}

func TestCoordinator_HappyPath(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen")
	ctx := context.Background()

	// Act - the robot finds the only product
	f.robot(ctx, wire.Moved(id.String(), "pen"))

	// Assert - the order is on the conveyor and delivery was told
	assert.Equal(t, order.OrderStateInConveyor, f.orderState(t, id))
	assert.Equal(t, wire.Delivery("alice", id.String(), []string{"pen"}),
		f.lastTo(t, f.queues.ControllerToDelivery()))

	// Act - the delivery agent hands it over
	before := len(f.pub.MessagesTo(f.queues.Client("alice")))
	f.delivery(ctx, wire.Delivered(id.String()))

	// Assert - settled, and the controller sent the client nothing
	assert.Equal(t, order.OrderStateDelivered, f.orderState(t, id))
	assert.Len(t, f.pub.MessagesTo(f.queues.Client("alice")), before)
}

func TestCoordinator_DeliveryListsProductsInSubmissionOrder(t *testing.T) {
	// Arrange - the submitted sequence runs against alphabetical order
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen", "apple")
	ctx := context.Background()

	// Act - robot reports land in the opposite order
	f.robot(ctx, wire.Moved(id.String(), "apple"))
	f.robot(ctx, wire.Moved(id.String(), "pen"))

	// Assert - the delivery pool sees the products as the client phrased them
	assert.Equal(t, wire.Delivery("alice", id.String(), []string{"pen", "apple"}),
		f.lastTo(t, f.queues.ControllerToDelivery()))

	// Act
	f.client(ctx, wire.View("alice"))

	// Assert - VIEW repeats the same sequence
	expected := wire.VerbFoundRequests + "\n" + id.String() + " pen apple IN_CONVEYOR"
	assert.Equal(t, expected, f.lastTo(t, f.queues.Client("alice")))
}

func TestCoordinator_PartialPickFailure(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen", "paper")
	ctx := context.Background()

	// Act - one product is missing
	f.robot(ctx, wire.NotFound(id.String(), "pen"))

	// Assert - a single NOT_FOUND fails the whole order
	assert.Equal(t, order.OrderStateFailed, f.orderState(t, id))
	assert.Equal(t, wire.RequestFailed(id.String()), f.lastTo(t, f.queues.Client("alice")))

	// Act - the sibling product report arrives late
	before := len(f.pub.Messages())
	f.robot(ctx, wire.Moved(id.String(), "paper"))

	// Assert - absorbed: state unchanged, nothing emitted
	assert.Equal(t, order.OrderStateFailed, f.orderState(t, id))
	assert.Len(t, f.pub.Messages(), before)
}

func TestCoordinator_CancelInStorage(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen", "paper")
	ctx := context.Background()

	// Act
	f.client(ctx, wire.Cancel("alice", id.String()))

	// Assert
	assert.Equal(t, wire.Cancelled(id.String()), f.lastTo(t, f.queues.Client("alice")))
	assert.Equal(t, order.OrderStateCancelled, f.orderState(t, id))

	// Act - an in-flight robot report lands after the cancel
	before := len(f.pub.Messages())
	f.robot(ctx, wire.Moved(id.String(), "pen"))

	// Assert - absorbed silently
	assert.Equal(t, order.OrderStateCancelled, f.orderState(t, id))
	assert.Len(t, f.pub.Messages(), before)
}

func TestCoordinator_CancelTooLate(t *testing.T) {
	// Arrange - the order already reached the conveyor
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen")
	ctx := context.Background()
	f.robot(ctx, wire.Moved(id.String(), "pen"))
	require.Equal(t, order.OrderStateInConveyor, f.orderState(t, id))

	// Act
	f.client(ctx, wire.Cancel("alice", id.String()))

	// Assert
	assert.Equal(t, wire.CancelFailed(id.String()), f.lastTo(t, f.queues.Client("alice")))
	assert.Equal(t, order.OrderStateInConveyor, f.orderState(t, id))
}

func TestCoordinator_CancelByNonOwner(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen")
	ctx := context.Background()

	// Act - bob never registered
	f.client(ctx, wire.Cancel("bob", id.String()))

	// Assert
	assert.Equal(t, wire.CancelFailed(id.String()), f.lastTo(t, f.queues.Client("bob")))

	// Act - mallory is signed in but does not own the order
	f.signUpAndIn(t, "mallory")
	f.client(ctx, wire.Cancel("mallory", id.String()))

	// Assert - rejected, order untouched
	assert.Equal(t, wire.CancelFailed(id.String()), f.lastTo(t, f.queues.Client("mallory")))
	assert.Equal(t, order.OrderStateInStorage, f.orderState(t, id))
}

func TestCoordinator_CancelMalformedOrderID(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")

	// Act - the verb and user are understood, so the garbage id is echoed
	f.client(context.Background(), "CANCEL alice not-a-uuid")

	// Assert
	assert.Equal(t, "CANCEL_FAILED not-a-uuid", f.lastTo(t, f.queues.Client("alice")))
}

func TestCoordinator_View(t *testing.T) {
	// Arrange - run one order through the full happy path
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen")
	ctx := context.Background()
	f.robot(ctx, wire.Moved(id.String(), "pen"))
	f.delivery(ctx, wire.Delivered(id.String()))

	// Act
	f.client(ctx, wire.View("alice"))

	// Assert
	expected := wire.VerbFoundRequests + "\n" + id.String() + " pen DELIVERED"
	assert.Equal(t, expected, f.lastTo(t, f.queues.Client("alice")))
}

func TestCoordinator_ViewNotSignedIn(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	f.client(context.Background(), "VIEW ghost")

	// Assert
	assert.Equal(t, wire.VerbViewFailed, f.lastTo(t, f.queues.Client("ghost")))
}

func TestCoordinator_RobotReportForUnknownOrderIsAbsorbed(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	f.robot(context.Background(), wire.Moved(uuid.NewString(), "pen"))
	f.robot(context.Background(), wire.NotFound(uuid.NewString(), "pen"))

	// Assert - no crash, no reply
	assert.Empty(t, f.pub.Messages())
}

func TestCoordinator_DeliveryFailed(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen")
	ctx := context.Background()
	f.robot(ctx, wire.Moved(id.String(), "pen"))

	// Act - delivery exhausted its attempts
	f.delivery(ctx, wire.DeliveryFailed(id.String()))

	// Assert
	assert.Equal(t, order.OrderStateFailed, f.orderState(t, id))
	assert.Equal(t, wire.RequestFailed(id.String()), f.lastTo(t, f.queues.Client("alice")))
}

func TestCoordinator_DeliveredForUnknownOrderIsAbsorbed(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	f.delivery(context.Background(), wire.Delivered(uuid.NewString()))
	f.delivery(context.Background(), wire.DeliveryFailed(uuid.NewString()))

	// Assert
	assert.Empty(t, f.pub.Messages())
}

func TestCoordinator_ReplayedMovedLeavesStoreUnchanged(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen")
	ctx := context.Background()
	f.robot(ctx, wire.Moved(id.String(), "pen"))
	first, err := f.store.GetOrder(ctx, id)
	require.NoError(t, err)

	// Act - the broker redelivers the same report
	f.robot(ctx, wire.Moved(id.String(), "pen"))

	// Assert - the store is identical after the first application; the
	// repeated DELIVERY emission is within the at-least-once contract
	replayed, err := f.store.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, replayed)
	assert.Len(t, f.pub.MessagesTo(f.queues.ControllerToDelivery()), 2)
}

func TestCoordinator_ReplayedCancelLeavesStoreUnchanged(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")
	id := f.request(t, "alice", "pen")
	ctx := context.Background()
	f.client(ctx, wire.Cancel("alice", id.String()))
	first, err := f.store.GetOrder(ctx, id)
	require.NoError(t, err)

	// Act
	f.client(ctx, wire.Cancel("alice", id.String()))

	// Assert - the second attempt finds a settled order and is rejected
	assert.Equal(t, wire.CancelFailed(id.String()), f.lastTo(t, f.queues.Client("alice")))
	replayed, err := f.store.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, replayed)
}

func TestCoordinator_MalformedMessagesAreDropped(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()

	// Act - unknown verbs, wrong arity, malformed ids
	f.client(ctx, "")
	f.client(ctx, "FROBNICATE alice")
	f.client(ctx, "SIGN_UP")
	f.client(ctx, "REQUEST alice")
	f.robot(ctx, "MOVED not-a-uuid pen")
	f.robot(ctx, "MOVED "+uuid.NewString())
	f.delivery(ctx, "DELIVERED not-a-uuid")
	f.delivery(ctx, "RECEIVE "+uuid.NewString())

	// Assert - acknowledged and dropped, nothing emitted
	assert.Empty(t, f.pub.Messages())
}

func TestCoordinator_DuplicateProductNamesRejectRequest(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.signUpAndIn(t, "alice")

	// Act - the composite product key cannot store two pens
	f.client(context.Background(), "REQUEST alice pen pen")

	// Assert - the whole order rolls back
	assert.Equal(t, wire.VerbRequestFailed, f.lastTo(t, f.queues.Client("alice")))
	assert.Empty(t, f.pub.MessagesTo(f.queues.ControllerToRobot()))
}
