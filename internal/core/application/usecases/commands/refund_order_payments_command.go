package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrRefundOrderPaymentsCommandIsNotConstructed = errors.New(
	"RefundOrderPaymentsCommand must be created via NewRefundOrderPaymentsCommand constructor",
)

// RefundOrderPaymentsCommand represents one settlement job run: refund every
// payment of the order that is awaiting a refund.
type RefundOrderPaymentsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefundOrderPaymentsCommand creates a command to refund an order's payments.
func NewRefundOrderPaymentsCommand(orderID kernel.UUID) (RefundOrderPaymentsCommand, error) {
	cmd := RefundOrderPaymentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RefundOrderPaymentsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundOrderPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderPaymentsCommandIsNotConstructed)
}

// OrderID returns the order whose payments are settled.
func (c RefundOrderPaymentsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RefundOrderPaymentsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
