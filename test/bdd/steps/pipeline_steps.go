package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/google/uuid"

	"github.com/saimazoom/warehouse-go/internal/adapters/persistence"
	"github.com/saimazoom/warehouse-go/internal/application/controller"
	"github.com/saimazoom/warehouse-go/internal/infrastructure/database"
	"github.com/saimazoom/warehouse-go/internal/wire"
	"github.com/saimazoom/warehouse-go/test/helpers"
)

// orderPlaceholder stands in for the generated order id in feature text
const orderPlaceholder = "<order>"

// PipelineContext drives the real coordinator over an in-memory store and a
// recording publisher
type PipelineContext struct {
	store       *persistence.GormStore
	pub         *helpers.MockPublisher
	coordinator *controller.Coordinator
	queues      wire.Queues

	// Generated id of the scenario's order, captured from REQUEST_CREATED
	orderID string

	// Publish count before the last dispatched message, for absorption checks
	publishedBefore int
}

func InitializePipelineScenario(ctx *godog.ScenarioContext) {
	c := &PipelineContext{}

	// Fresh pipeline before each scenario
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})

	// Given steps
	ctx.Step(`^a running controller$`, c.aRunningController)
	ctx.Step(`^client "([^"]*)" is signed in$`, c.clientIsSignedIn)

	// When steps
	ctx.Step(`^the controller receives the client command "([^"]*)"$`, c.receivesClientCommand)
	ctx.Step(`^the controller receives the robot report "([^"]*)"$`, c.receivesRobotReport)
	ctx.Step(`^the controller receives the delivery report "([^"]*)"$`, c.receivesDeliveryReport)

	// Then steps
	ctx.Step(`^client "([^"]*)" receives "([^"]*)"$`, c.clientReceives)
	ctx.Step(`^the robot queue receives "([^"]*)"$`, c.robotQueueReceives)
	ctx.Step(`^the delivery queue receives "([^"]*)"$`, c.deliveryQueueReceives)
	ctx.Step(`^the order state is "([^"]*)"$`, c.orderStateIs)
	ctx.Step(`^nothing is emitted$`, c.nothingIsEmitted)
	ctx.Step(`^client "([^"]*)" is shown the orders:$`, c.clientIsShownTheOrders)
}

func (c *PipelineContext) reset() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return err
	}
	c.store = persistence.NewGormStore(db)
	c.pub = helpers.NewMockPublisher()
	c.queues = wire.NewQueues("test_")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c.coordinator = controller.NewCoordinator(c.store, c.pub, c.queues, logger)
	c.orderID = ""
	c.publishedBefore = 0
	return nil
}

// expand replaces the order placeholder with the captured order id
func (c *PipelineContext) expand(s string) string {
	return strings.ReplaceAll(s, orderPlaceholder, c.orderID)
}

// captureOrderID remembers the id of the most recently created order
func (c *PipelineContext) captureOrderID() {
	for _, msg := range c.pub.Messages() {
		tokens := strings.Fields(msg.Body)
		if len(tokens) >= 2 && tokens[0] == wire.VerbRequestCreated {
			c.orderID = tokens[1]
		}
	}
}

func (c *PipelineContext) aRunningController() error {
	if c.coordinator == nil {
		return fmt.Errorf("controller not initialized")
	}
	return nil
}

func (c *PipelineContext) clientIsSignedIn(userID string) error {
	ctx := context.Background()
	c.coordinator.DispatchClient(ctx, wire.SignUp(userID))
	c.coordinator.DispatchClient(ctx, wire.SignIn(userID))

	responses := c.pub.MessagesTo(c.queues.Client(userID))
	if len(responses) == 0 || responses[len(responses)-1] != wire.VerbSignedIn {
		return fmt.Errorf("client %s did not sign in: %v", userID, responses)
	}
	return nil
}

func (c *PipelineContext) receivesClientCommand(body string) error {
	c.publishedBefore = len(c.pub.Messages())
	c.coordinator.DispatchClient(context.Background(), c.expand(body))
	c.captureOrderID()
	return nil
}

func (c *PipelineContext) receivesRobotReport(body string) error {
	c.publishedBefore = len(c.pub.Messages())
	c.coordinator.DispatchRobot(context.Background(), c.expand(body))
	return nil
}

func (c *PipelineContext) receivesDeliveryReport(body string) error {
	c.publishedBefore = len(c.pub.Messages())
	c.coordinator.DispatchDelivery(context.Background(), c.expand(body))
	return nil
}

func (c *PipelineContext) clientReceives(userID, expected string) error {
	responses := c.pub.MessagesTo(c.queues.Client(userID))
	if len(responses) == 0 {
		return fmt.Errorf("client %s received nothing", userID)
	}
	last := responses[len(responses)-1]
	if last != c.expand(expected) {
		return fmt.Errorf("client %s received %q, expected %q", userID, last, c.expand(expected))
	}
	return nil
}

func (c *PipelineContext) robotQueueReceives(expected string) error {
	return c.queueReceives(c.queues.ControllerToRobot(), expected)
}

func (c *PipelineContext) deliveryQueueReceives(expected string) error {
	return c.queueReceives(c.queues.ControllerToDelivery(), expected)
}

func (c *PipelineContext) queueReceives(queue, expected string) error {
	want := c.expand(expected)
	for _, body := range c.pub.MessagesTo(queue) {
		if body == want {
			return nil
		}
	}
	return fmt.Errorf("queue %s never received %q: %v", queue, want, c.pub.MessagesTo(queue))
}

func (c *PipelineContext) orderStateIs(expected string) error {
	id, err := uuid.Parse(c.orderID)
	if err != nil {
		return fmt.Errorf("no order captured: %w", err)
	}
	o, err := c.store.GetOrder(context.Background(), id)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("order %s not found", id)
	}
	if string(o.State()) != expected {
		return fmt.Errorf("order state is %s, expected %s", o.State(), expected)
	}
	return nil
}

func (c *PipelineContext) nothingIsEmitted() error {
	if n := len(c.pub.Messages()); n != c.publishedBefore {
		return fmt.Errorf("expected no new messages, got %d", n-c.publishedBefore)
	}
	return nil
}

func (c *PipelineContext) clientIsShownTheOrders(userID string, table *godog.Table) error {
	var b strings.Builder
	b.WriteString(wire.VerbFoundRequests)
	for _, row := range table.Rows[1:] {
		b.WriteByte('\n')
		b.WriteString(c.expand(cellValue(row, 0)))
		b.WriteByte(' ')
		b.WriteString(cellValue(row, 1))
		b.WriteByte(' ')
		b.WriteString(cellValue(row, 2))
	}
	return c.clientReceives(userID, b.String())
}

// cellValue reads one cell of a godog table row
func cellValue(row *messages.PickleTableRow, column int) string {
	return row.Cells[column].Value
}
