package commands

import (
	"errors"

	"orders/internal/pkg/guard"
)

var (
	ErrConfirmChargeCommandIsNotConstructed = errors.New(
		"ConfirmChargeCommand must be created via NewConfirmChargeCommand constructor",
	)
	ErrTransactionIDIsRequired = errors.New("gateway transaction id is required")
)

// ConfirmChargeCommand represents a verified "charge succeeded" gateway
// webhook event.
type ConfirmChargeCommand struct { //nolint:recvcheck //using for validation
	transactionID string

	guard guard.ConstructorGuard
}

// NewConfirmChargeCommand creates a command to confirm a gateway charge.
func NewConfirmChargeCommand(transactionID string) (ConfirmChargeCommand, error) {
	cmd := ConfirmChargeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTransactionID(transactionID); err != nil {
		return ConfirmChargeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmChargeCommand) Validate() error {
	return c.guard.Validate(ErrConfirmChargeCommandIsNotConstructed)
}

// TransactionID returns the gateway's charge-intent reference.
func (c ConfirmChargeCommand) TransactionID() string {
	return c.transactionID
}

func (c *ConfirmChargeCommand) setTransactionID(transactionID string) error {
	if transactionID == "" {
		return ErrTransactionIDIsRequired
	}

	c.transactionID = transactionID
	return nil
}
