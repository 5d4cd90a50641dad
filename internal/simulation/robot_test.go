package simulation_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saimazoom/warehouse-go/internal/infrastructure/config"
	"github.com/saimazoom/warehouse-go/internal/simulation"
	"github.com/saimazoom/warehouse-go/internal/wire"
	"github.com/saimazoom/warehouse-go/test/helpers"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRobot_ReportsMovedWhenProductIsFound(t *testing.T) {
	// Arrange - always find, no simulated search time
	pub := helpers.NewMockPublisher()
	queues := wire.NewQueues("test_")
	robot := simulation.NewRobot(config.RobotConfig{FindProbability: 1}, queues, pub, discard())
	id := uuid.NewString()

	// Act
	robot.HandleMove(context.Background(), wire.Move(id, "pen"))

	// Assert
	reports := pub.MessagesTo(queues.RobotToController())
	require.Len(t, reports, 1)
	assert.Equal(t, wire.Moved(id, "pen"), reports[0])
}

func TestRobot_ReportsNotFoundWhenProductIsMissing(t *testing.T) {
	// Arrange - never find
	pub := helpers.NewMockPublisher()
	queues := wire.NewQueues("test_")
	robot := simulation.NewRobot(config.RobotConfig{FindProbability: 0}, queues, pub, discard())
	id := uuid.NewString()

	// Act
	robot.HandleMove(context.Background(), wire.Move(id, "pen"))

	// Assert
	reports := pub.MessagesTo(queues.RobotToController())
	require.Len(t, reports, 1)
	assert.Equal(t, wire.NotFound(id, "pen"), reports[0])
}

func TestRobot_DropsMalformedMessages(t *testing.T) {
	// Arrange
	pub := helpers.NewMockPublisher()
	queues := wire.NewQueues("test_")
	robot := simulation.NewRobot(config.RobotConfig{FindProbability: 1}, queues, pub, discard())

	// Act
	robot.HandleMove(context.Background(), "")
	robot.HandleMove(context.Background(), "MOVE only-an-id")
	robot.HandleMove(context.Background(), "DELIVER x y")

	// Assert
	assert.Empty(t, pub.Messages())
}

func TestDelivery_SuccessNotifiesClientAndController(t *testing.T) {
	// Arrange - first attempt always succeeds
	pub := helpers.NewMockPublisher()
	queues := wire.NewQueues("test_")
	agent := simulation.NewDelivery(config.DeliveryConfig{
		SuccessProbability: 1,
		MaxAttempts:        3,
	}, queues, pub, discard())
	id := uuid.NewString()

	// Act
	agent.HandleDelivery(context.Background(), wire.Delivery("alice", id, []string{"pen", "paper"}))

	// Assert - RECEIVE straight to the client, DELIVERED to the controller
	clientMessages := pub.MessagesTo(queues.Client("alice"))
	require.Len(t, clientMessages, 1)
	assert.Equal(t, wire.Receive(id, []string{"pen", "paper"}), clientMessages[0])

	reports := pub.MessagesTo(queues.DeliveryToController())
	require.Len(t, reports, 1)
	assert.Equal(t, wire.Delivered(id), reports[0])
}

func TestDelivery_ExhaustedAttemptsReportFailure(t *testing.T) {
	// Arrange - every attempt fails
	pub := helpers.NewMockPublisher()
	queues := wire.NewQueues("test_")
	agent := simulation.NewDelivery(config.DeliveryConfig{
		SuccessProbability: 0,
		MaxAttempts:        3,
	}, queues, pub, discard())
	id := uuid.NewString()

	// Act
	agent.HandleDelivery(context.Background(), wire.Delivery("alice", id, []string{"pen"}))

	// Assert - no client notice, one failure report
	assert.Empty(t, pub.MessagesTo(queues.Client("alice")))
	reports := pub.MessagesTo(queues.DeliveryToController())
	require.Len(t, reports, 1)
	assert.Equal(t, wire.DeliveryFailed(id), reports[0])
}

func TestDelivery_DropsMalformedMessages(t *testing.T) {
	// Arrange
	pub := helpers.NewMockPublisher()
	queues := wire.NewQueues("test_")
	agent := simulation.NewDelivery(config.DeliveryConfig{
		SuccessProbability: 1,
		MaxAttempts:        1,
	}, queues, pub, discard())

	// Act
	agent.HandleDelivery(context.Background(), "")
	agent.HandleDelivery(context.Background(), "DELIVERY alice no-products")
	agent.HandleDelivery(context.Background(), "MOVE a b c")

	// Assert
	assert.Empty(t, pub.Messages())
}
