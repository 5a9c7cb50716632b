package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrApproveNegotiationCommandIsNotConstructed = errors.New(
	"ApproveNegotiationCommand must be created via NewApproveNegotiationCommand constructor",
)

// ApproveNegotiationCommand represents the counterparty accepting a pending
// change request.
type ApproveNegotiationCommand struct { //nolint:recvcheck //using for validation
	negotiationID kernel.UUID
	actorID       string

	guard guard.ConstructorGuard
}

// NewApproveNegotiationCommand creates a command to accept a negotiation.
func NewApproveNegotiationCommand(negotiationID kernel.UUID, actorID string) (ApproveNegotiationCommand, error) {
	cmd := ApproveNegotiationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNegotiationID(negotiationID),
		cmd.setActorID(actorID),
	); err != nil {
		return ApproveNegotiationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveNegotiationCommand) Validate() error {
	return c.guard.Validate(ErrApproveNegotiationCommandIsNotConstructed)
}

// NegotiationID returns the negotiation's identifier.
func (c ApproveNegotiationCommand) NegotiationID() kernel.UUID {
	return c.negotiationID
}

// ActorID returns the responding account's identifier.
func (c ApproveNegotiationCommand) ActorID() string {
	return c.actorID
}

func (c *ApproveNegotiationCommand) setNegotiationID(negotiationID kernel.UUID) error {
	if err := negotiationID.Validate(); err != nil {
		return err
	}

	c.negotiationID = negotiationID
	return nil
}

func (c *ApproveNegotiationCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIDIsRequired
	}

	c.actorID = actorID
	return nil
}
