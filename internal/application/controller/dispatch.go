package controller

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/saimazoom/warehouse-go/internal/adapters/metrics"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

// Message sources, one per inbound queue
const (
	sourceClient   = "client"
	sourceRobot    = "robot"
	sourceDelivery = "delivery"
)

// DispatchClient parses one message from the client command queue and runs
// the matching handler. Unknown verbs and wrong arity are logged and
// dropped; the intake consumer acknowledges regardless.
func (c *Coordinator) DispatchClient(ctx context.Context, body string) {
	tokens := strings.Fields(body)
	if len(tokens) == 0 {
		c.drop(sourceClient, "", body)
		return
	}
	verb, args := tokens[0], tokens[1:]

	var outcome string
	switch verb {
	case wire.VerbSignUp:
		if len(args) != 1 {
			c.drop(sourceClient, verb, body)
			return
		}
		outcome = c.handleSignUp(ctx, args[0])
	case wire.VerbSignIn:
		if len(args) != 1 {
			c.drop(sourceClient, verb, body)
			return
		}
		outcome = c.handleSignIn(ctx, args[0])
	case wire.VerbSignOut:
		if len(args) != 1 {
			c.drop(sourceClient, verb, body)
			return
		}
		outcome = c.handleSignOut(ctx, args[0])
	case wire.VerbRequest:
		if len(args) < 2 {
			c.drop(sourceClient, verb, body)
			return
		}
		outcome = c.handleRequest(ctx, args[0], args[1:])
	case wire.VerbCancel:
		if len(args) != 2 {
			c.drop(sourceClient, verb, body)
			return
		}
		outcome = c.handleCancel(ctx, args[0], args[1])
	case wire.VerbView:
		if len(args) != 1 {
			c.drop(sourceClient, verb, body)
			return
		}
		outcome = c.handleView(ctx, args[0])
	default:
		c.drop(sourceClient, verb, body)
		return
	}

	c.record(sourceClient, verb, outcome)
}

// DispatchRobot parses one message from the robot report queue. A malformed
// order id is a protocol error: robots copy the id from the MOVE message, so
// nothing useful can be answered.
func (c *Coordinator) DispatchRobot(ctx context.Context, body string) {
	tokens := strings.Fields(body)
	if len(tokens) != 3 {
		c.drop(sourceRobot, firstToken(tokens), body)
		return
	}
	verb := tokens[0]

	id, err := uuid.Parse(tokens[1])
	if err != nil {
		c.drop(sourceRobot, verb, body)
		return
	}

	var outcome string
	switch verb {
	case wire.VerbMoved:
		outcome = c.handleMoved(ctx, id, tokens[2])
	case wire.VerbNotFound:
		outcome = c.handleNotFound(ctx, id, tokens[2])
	default:
		c.drop(sourceRobot, verb, body)
		return
	}

	c.record(sourceRobot, verb, outcome)
}

// DispatchDelivery parses one message from the delivery report queue
func (c *Coordinator) DispatchDelivery(ctx context.Context, body string) {
	tokens := strings.Fields(body)
	if len(tokens) != 2 {
		c.drop(sourceDelivery, firstToken(tokens), body)
		return
	}
	verb := tokens[0]

	id, err := uuid.Parse(tokens[1])
	if err != nil {
		c.drop(sourceDelivery, verb, body)
		return
	}

	var outcome string
	switch verb {
	case wire.VerbDelivered:
		outcome = c.handleDelivered(ctx, id)
	case wire.VerbDeliveryFailed:
		outcome = c.handleDeliveryFailed(ctx, id)
	default:
		c.drop(sourceDelivery, verb, body)
		return
	}

	c.record(sourceDelivery, verb, outcome)
}

// drop logs a protocol error; the broker cannot fix a malformed message, so
// it is never requeued
func (c *Coordinator) drop(source, verb, body string) {
	c.logger.Warn("dropping malformed message",
		"source", source,
		"verb", verb,
		"body", body)
	metrics.RecordMessageConsumed(source, verb, outcomeProtocol)
}

func (c *Coordinator) record(source, verb, outcome string) {
	c.logger.Info("message handled",
		"source", source,
		"verb", verb,
		"outcome", outcome)
	metrics.RecordMessageConsumed(source, verb, outcome)
}

func firstToken(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
