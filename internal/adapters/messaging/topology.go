package messaging

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saimazoom/warehouse-go/internal/wire"
)

// DeclareQueue declares one durable queue. Declaration is idempotent, so
// every actor declares what it consumes without coordinating with the rest.
func DeclareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

// DeclareTopology declares the five shared queues of a deployment. The
// per-client response queues are not part of the topology: each client
// declares its own on startup.
func DeclareTopology(ch *amqp.Channel, queues wire.Queues) error {
	for _, name := range []string{
		queues.ClientToController(),
		queues.ControllerToRobot(),
		queues.RobotToController(),
		queues.ControllerToDelivery(),
		queues.DeliveryToController(),
	} {
		if err := DeclareQueue(ch, name); err != nil {
			return err
		}
	}
	return nil
}
