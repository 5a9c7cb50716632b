package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrCancelOrderPaymentsCommandIsNotConstructed = errors.New(
	"CancelOrderPaymentsCommand must be created via NewCancelOrderPaymentsCommand constructor",
)

// CancelOrderPaymentsCommand represents one settlement job run: void every
// open charge intent of the order that is awaiting cancellation.
type CancelOrderPaymentsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelOrderPaymentsCommand creates a command to cancel an order's open charges.
func NewCancelOrderPaymentsCommand(orderID kernel.UUID) (CancelOrderPaymentsCommand, error) {
	cmd := CancelOrderPaymentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CancelOrderPaymentsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderPaymentsCommandIsNotConstructed)
}

// OrderID returns the order whose charges are voided.
func (c CancelOrderPaymentsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *CancelOrderPaymentsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
