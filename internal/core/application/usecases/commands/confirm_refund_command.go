package commands

import (
	"errors"

	"orders/internal/pkg/guard"
)

var ErrConfirmRefundCommandIsNotConstructed = errors.New(
	"ConfirmRefundCommand must be created via NewConfirmRefundCommand constructor",
)

// ConfirmRefundCommand represents a verified "refund succeeded" gateway
// webhook event. RefundID may be empty when the gateway omits it.
type ConfirmRefundCommand struct { //nolint:recvcheck //using for validation
	transactionID string
	refundID      string

	guard guard.ConstructorGuard
}

// NewConfirmRefundCommand creates a command to confirm a gateway refund.
func NewConfirmRefundCommand(transactionID, refundID string) (ConfirmRefundCommand, error) {
	cmd := ConfirmRefundCommand{
		refundID: refundID,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setTransactionID(transactionID); err != nil {
		return ConfirmRefundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmRefundCommand) Validate() error {
	return c.guard.Validate(ErrConfirmRefundCommandIsNotConstructed)
}

// TransactionID returns the refunded charge's gateway reference.
func (c ConfirmRefundCommand) TransactionID() string {
	return c.transactionID
}

// RefundID returns the gateway's refund reference, possibly empty.
func (c ConfirmRefundCommand) RefundID() string {
	return c.refundID
}

func (c *ConfirmRefundCommand) setTransactionID(transactionID string) error {
	if transactionID == "" {
		return ErrTransactionIDIsRequired
	}

	c.transactionID = transactionID
	return nil
}
