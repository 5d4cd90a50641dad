package wire

// Queue name suffixes. The group id is prepended to each so that several
// deployments can share one broker without crossing streams.
const (
	suffixClientToController   = "client_to_x"
	suffixControllerToRobot    = "x_to_robot"
	suffixRobotToController    = "robot_to_x"
	suffixControllerToDelivery = "x_to_delivery"
	suffixDeliveryToController = "delivery_to_x"
)

// Queues derives every queue name of the deployment from the group id
type Queues struct {
	groupID string
}

// NewQueues creates the queue naming scheme for a group id
func NewQueues(groupID string) Queues {
	return Queues{groupID: groupID}
}

func (q Queues) GroupID() string { return q.groupID }

// ClientToController is the shared command queue all clients publish to
func (q Queues) ClientToController() string {
	return q.groupID + suffixClientToController
}

// ControllerToRobot carries MOVE orders to the robot pool
func (q Queues) ControllerToRobot() string {
	return q.groupID + suffixControllerToRobot
}

// RobotToController carries MOVED and NOT_FOUND reports back
func (q Queues) RobotToController() string {
	return q.groupID + suffixRobotToController
}

// ControllerToDelivery carries DELIVERY orders to the delivery pool
func (q Queues) ControllerToDelivery() string {
	return q.groupID + suffixControllerToDelivery
}

// DeliveryToController carries DELIVERED and DELIVERY_FAILED reports back
func (q Queues) DeliveryToController() string {
	return q.groupID + suffixDeliveryToController
}

// Client is the per-client response queue. Clients declare it themselves on
// startup; the controller only publishes to it.
func (q Queues) Client(userID string) string {
	return q.groupID + userID
}
