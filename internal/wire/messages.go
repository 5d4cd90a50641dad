package wire

import "strings"

// join builds a message from its tokens
func join(tokens ...string) string {
	return strings.Join(tokens, " ")
}

// Client commands

func SignUp(userID string) string  { return join(VerbSignUp, userID) }
func SignIn(userID string) string  { return join(VerbSignIn, userID) }
func SignOut(userID string) string { return join(VerbSignOut, userID) }
func View(userID string) string    { return join(VerbView, userID) }

func Request(userID string, products []string) string {
	return join(append([]string{VerbRequest, userID}, products...)...)
}

func Cancel(userID, orderID string) string {
	return join(VerbCancel, userID, orderID)
}

// Client responses

func RequestCreated(orderID string, products []string) string {
	return join(append([]string{VerbRequestCreated, orderID}, products...)...)
}

func Cancelled(orderID string) string { return join(VerbCancelled, orderID) }

// CancelFailed echoes whatever order-id token the client sent, valid or not
func CancelFailed(orderID string) string { return join(VerbCancelFailed, orderID) }

// RequestFailed carries the order id when one exists; REQUEST rejections
// before an id is assigned use the bare verb instead
func RequestFailed(orderID string) string { return join(VerbRequestFailed, orderID) }

// FoundRequests renders the VIEW response: the verb, then one
// newline-prefixed line per order
func FoundRequests(lines []string) string {
	var b strings.Builder
	b.WriteString(VerbFoundRequests)
	for _, line := range lines {
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return b.String()
}

// OrderLine renders one order of a VIEW response
func OrderLine(orderID string, products []string, state string) string {
	tokens := append([]string{orderID}, products...)
	return join(append(tokens, state)...)
}

// Robot traffic

func Move(orderID, product string) string     { return join(VerbMove, orderID, product) }
func Moved(orderID, product string) string    { return join(VerbMoved, orderID, product) }
func NotFound(orderID, product string) string { return join(VerbNotFound, orderID, product) }

// Delivery traffic

func Delivery(clientID, orderID string, products []string) string {
	return join(append([]string{VerbDelivery, clientID, orderID}, products...)...)
}

func Delivered(orderID string) string      { return join(VerbDelivered, orderID) }
func DeliveryFailed(orderID string) string { return join(VerbDeliveryFailed, orderID) }

// Receive is the hand-off notice a delivery agent sends straight to the
// client's queue, bypassing the controller
func Receive(orderID string, products []string) string {
	return join(append([]string{VerbReceive, orderID}, products...)...)
}
