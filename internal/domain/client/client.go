package client

import "fmt"

// ClientState represents the session status of a warehouse client
type ClientState string

const (
	// ClientStateNotRegistered is the implicit state of any user id the store has never seen
	ClientStateNotRegistered ClientState = "NOT_REGISTERED"

	// ClientStateSignedOut indicates a registered client without an active session
	ClientStateSignedOut ClientState = "SIGNED_OUT"

	// ClientStateSignedIn indicates a registered client with an active session
	ClientStateSignedIn ClientState = "SIGNED_IN"
)

// CanTransitionTo reports whether a registered client may move to the given
// state. Registration itself is handled separately; a client never returns
// to NOT_REGISTERED and never re-enters its current state.
func (s ClientState) CanTransitionTo(next ClientState) bool {
	if s == ClientStateNotRegistered || next == ClientStateNotRegistered {
		return false
	}
	return s != next
}

// Client is a registered warehouse user and its session state
type Client struct {
	userID string
	state  ClientState
}

// NewClient registers a client; fresh registrations start signed out
func NewClient(userID string) *Client {
	return &Client{userID: userID, state: ClientStateSignedOut}
}

// RestoreClient reconstructs a client from persisted data
func RestoreClient(userID string, state ClientState) *Client {
	return &Client{userID: userID, state: state}
}

// Getters

func (c *Client) UserID() string     { return c.userID }
func (c *Client) State() ClientState { return c.state }

// State transition methods

// SignIn opens a session for a signed-out client
func (c *Client) SignIn() error {
	if !c.state.CanTransitionTo(ClientStateSignedIn) {
		return fmt.Errorf("cannot sign in client in %s state", c.state)
	}
	c.state = ClientStateSignedIn
	return nil
}

// SignOut closes the active session
func (c *Client) SignOut() error {
	if !c.state.CanTransitionTo(ClientStateSignedOut) {
		return fmt.Errorf("cannot sign out client in %s state", c.state)
	}
	c.state = ClientStateSignedOut
	return nil
}

// State queries

// IsSignedIn returns true when the client has an active session
func (c *Client) IsSignedIn() bool {
	return c.state == ClientStateSignedIn
}

// String provides human-readable representation
func (c *Client) String() string {
	return fmt.Sprintf("Client[%s, state=%s]", c.userID, c.state)
}
