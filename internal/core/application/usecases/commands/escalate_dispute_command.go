package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var (
	ErrEscalateDisputeCommandIsNotConstructed = errors.New(
		"EscalateDisputeCommand must be created via NewEscalateDisputeCommand constructor",
	)
	ErrCaseIDIsRequired = errors.New("dispute case id is required")
)

// EscalateDisputeCommand represents a rejected cancellation being escalated
// to a resolution case: the order freezes in DISPUTED and the originating
// negotiation records the case reference.
type EscalateDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	negotiationID kernel.UUID
	caseID        string

	guard guard.ConstructorGuard
}

// NewEscalateDisputeCommand creates a command to escalate an order dispute.
func NewEscalateDisputeCommand(
	orderID kernel.UUID,
	negotiationID kernel.UUID,
	caseID string,
) (EscalateDisputeCommand, error) {
	cmd := EscalateDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNegotiationID(negotiationID),
		cmd.setCaseID(caseID),
	); err != nil {
		return EscalateDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EscalateDisputeCommand) Validate() error {
	return c.guard.Validate(ErrEscalateDisputeCommandIsNotConstructed)
}

// OrderID returns the disputed order's identifier.
func (c EscalateDisputeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NegotiationID returns the negotiation whose rejection triggered the dispute.
func (c EscalateDisputeCommand) NegotiationID() kernel.UUID {
	return c.negotiationID
}

// CaseID returns the resolution case reference.
func (c EscalateDisputeCommand) CaseID() string {
	return c.caseID
}

func (c *EscalateDisputeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *EscalateDisputeCommand) setNegotiationID(negotiationID kernel.UUID) error {
	if err := negotiationID.Validate(); err != nil {
		return err
	}

	c.negotiationID = negotiationID
	return nil
}

func (c *EscalateDisputeCommand) setCaseID(caseID string) error {
	if caseID == "" {
		return ErrCaseIDIsRequired
	}

	c.caseID = caseID
	return nil
}
