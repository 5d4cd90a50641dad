// Package wire defines the plain-text message vocabulary and queue naming
// shared by the controller, the clients, the robots and the delivery agents.
// Every message is a single line of space-separated tokens whose first token
// is the verb.
package wire

// Client commands (client → controller)
const (
	VerbSignUp  = "SIGN_UP"
	VerbSignIn  = "SIGN_IN"
	VerbSignOut = "SIGN_OUT"
	VerbRequest = "REQUEST"
	VerbCancel  = "CANCEL"
	VerbView    = "VIEW"
)

// Client responses (controller → per-client queue)
const (
	VerbSignedUp       = "SIGNED_UP"
	VerbSignedIn       = "SIGNED_IN"
	VerbSignedOut      = "SIGNED_OUT"
	VerbRequestCreated = "REQUEST_CREATED"
	VerbCancelled      = "CANCELLED"
	VerbFoundRequests  = "FOUND_REQUESTS"
	VerbSignUpFailed   = "SIGN_UP_FAILED"
	VerbSignInFailed   = "SIGN_IN_FAILED"
	VerbSignOutFailed  = "SIGN_OUT_FAILED"
	VerbRequestFailed  = "REQUEST_FAILED"
	VerbCancelFailed   = "CANCEL_FAILED"
	VerbViewFailed     = "VIEW_FAILED"
)

// Robot traffic (controller → robot, robot → controller)
const (
	VerbMove     = "MOVE"
	VerbMoved    = "MOVED"
	VerbNotFound = "NOT_FOUND"
)

// Delivery traffic (controller → delivery, delivery → controller, and the
// direct delivery → client hand-off notice)
const (
	VerbDelivery       = "DELIVERY"
	VerbDelivered      = "DELIVERED"
	VerbDeliveryFailed = "DELIVERY_FAILED"
	VerbReceive        = "RECEIVE"
)
