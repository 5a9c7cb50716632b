package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrRejectNegotiationCommandIsNotConstructed = errors.New(
	"RejectNegotiationCommand must be created via NewRejectNegotiationCommand constructor",
)

// RejectNegotiationCommand represents the counterparty declining a pending
// change request, restoring the order to its pre-negotiation state.
type RejectNegotiationCommand struct { //nolint:recvcheck //using for validation
	negotiationID kernel.UUID
	actorID       string

	guard guard.ConstructorGuard
}

// NewRejectNegotiationCommand creates a command to reject a negotiation.
func NewRejectNegotiationCommand(negotiationID kernel.UUID, actorID string) (RejectNegotiationCommand, error) {
	cmd := RejectNegotiationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNegotiationID(negotiationID),
		cmd.setActorID(actorID),
	); err != nil {
		return RejectNegotiationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectNegotiationCommand) Validate() error {
	return c.guard.Validate(ErrRejectNegotiationCommandIsNotConstructed)
}

// NegotiationID returns the negotiation's identifier.
func (c RejectNegotiationCommand) NegotiationID() kernel.UUID {
	return c.negotiationID
}

// ActorID returns the responding account's identifier.
func (c RejectNegotiationCommand) ActorID() string {
	return c.actorID
}

func (c *RejectNegotiationCommand) setNegotiationID(negotiationID kernel.UUID) error {
	if err := negotiationID.Validate(); err != nil {
		return err
	}

	c.negotiationID = negotiationID
	return nil
}

func (c *RejectNegotiationCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIDIsRequired
	}

	c.actorID = actorID
	return nil
}
