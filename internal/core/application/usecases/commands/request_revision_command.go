package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrRequestRevisionCommandIsNotConstructed = errors.New(
	"RequestRevisionCommand must be created via NewRequestRevisionCommand constructor",
)

// RequestRevisionCommand represents the buyer sending the latest delivery
// back for rework.
type RequestRevisionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID string
	message string

	guard guard.ConstructorGuard
}

// NewRequestRevisionCommand creates a command to request a revision.
// The message is the buyer's feedback and may be empty.
func NewRequestRevisionCommand(orderID kernel.UUID, actorID, message string) (RequestRevisionCommand, error) {
	cmd := RequestRevisionCommand{
		message: message,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return RequestRevisionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestRevisionCommand) Validate() error {
	return c.guard.Validate(ErrRequestRevisionCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RequestRevisionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the requesting account's identifier.
func (c RequestRevisionCommand) ActorID() string {
	return c.actorID
}

// Message returns the buyer's revision feedback.
func (c RequestRevisionCommand) Message() string {
	return c.message
}

func (c *RequestRevisionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestRevisionCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIDIsRequired
	}

	c.actorID = actorID
	return nil
}
