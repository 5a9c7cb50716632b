package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrApproveDeliveryCommandIsNotConstructed = errors.New(
	"ApproveDeliveryCommand must be created via NewApproveDeliveryCommand constructor",
)

// ApproveDeliveryCommand represents the buyer accepting the latest delivery,
// completing the order.
type ApproveDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID string

	guard guard.ConstructorGuard
}

// NewApproveDeliveryCommand creates a command to approve the latest delivery.
func NewApproveDeliveryCommand(orderID kernel.UUID, actorID string) (ApproveDeliveryCommand, error) {
	cmd := ApproveDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return ApproveDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrApproveDeliveryCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ApproveDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the approving account's identifier.
func (c ApproveDeliveryCommand) ActorID() string {
	return c.actorID
}

func (c *ApproveDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApproveDeliveryCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIDIsRequired
	}

	c.actorID = actorID
	return nil
}
