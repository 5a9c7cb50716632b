package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"
	"orders/internal/pkg/guard"
)

var (
	ErrCreateNegotiationCommandIsNotConstructed = errors.New(
		"CreateNegotiationCommand must be created via NewCreateNegotiationCommand constructor",
	)
	ErrProposalIsRequired = errors.New("proposal is required")
)

// CreateNegotiationCommand represents a party proposing a change to an
// in-flight order: a delivery extension, a cancellation or a scope/price
// modification. The proposal variant is built and validated at the boundary.
type CreateNegotiationCommand struct { //nolint:recvcheck //using for validation
	negotiationID kernel.UUID
	orderID       kernel.UUID
	actorID       string
	proposal      negotiation.Proposal
	message       string

	guard guard.ConstructorGuard
}

// NewCreateNegotiationCommand creates a command to open a negotiation.
func NewCreateNegotiationCommand(
	negotiationID kernel.UUID,
	orderID kernel.UUID,
	actorID string,
	proposal negotiation.Proposal,
	message string,
) (CreateNegotiationCommand, error) {
	cmd := CreateNegotiationCommand{
		message: message,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNegotiationID(negotiationID),
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setProposal(proposal),
	); err != nil {
		return CreateNegotiationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateNegotiationCommand) Validate() error {
	return c.guard.Validate(ErrCreateNegotiationCommandIsNotConstructed)
}

// NegotiationID returns the identifier for the new negotiation.
func (c CreateNegotiationCommand) NegotiationID() kernel.UUID {
	return c.negotiationID
}

// OrderID returns the target order's identifier.
func (c CreateNegotiationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the proposing account's identifier.
func (c CreateNegotiationCommand) ActorID() string {
	return c.actorID
}

// Proposal returns the proposed change.
func (c CreateNegotiationCommand) Proposal() negotiation.Proposal {
	return c.proposal
}

// Message returns the free-form message to the counterparty.
func (c CreateNegotiationCommand) Message() string {
	return c.message
}

func (c *CreateNegotiationCommand) setNegotiationID(negotiationID kernel.UUID) error {
	if err := negotiationID.Validate(); err != nil {
		return err
	}

	c.negotiationID = negotiationID
	return nil
}

func (c *CreateNegotiationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateNegotiationCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIDIsRequired
	}

	c.actorID = actorID
	return nil
}

func (c *CreateNegotiationCommand) setProposal(proposal negotiation.Proposal) error {
	if proposal == nil {
		return ErrProposalIsRequired
	}

	c.proposal = proposal
	return nil
}
