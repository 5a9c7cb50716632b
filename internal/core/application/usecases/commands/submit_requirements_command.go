package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/guard"
)

var (
	ErrSubmitRequirementsCommandIsNotConstructed = errors.New(
		"SubmitRequirementsCommand must be created via NewSubmitRequirementsCommand constructor",
	)
	ErrActorIDIsRequired = errors.New("actor id is required")
)

// RequirementAnswerInput is one answer as delivered by the routing layer.
// File is nil when the answer carries text only.
type RequirementAnswerInput struct {
	RequirementID string
	Text          string
	File          *ports.FileUpload
}

// SubmitRequirementsCommand represents the buyer answering the order's
// requirement questionnaire, which starts the work and sets the due date.
type SubmitRequirementsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID string
	answers []RequirementAnswerInput

	guard guard.ConstructorGuard
}

// NewSubmitRequirementsCommand creates a command to submit requirement answers.
func NewSubmitRequirementsCommand(
	orderID kernel.UUID,
	actorID string,
	answers []RequirementAnswerInput,
) (SubmitRequirementsCommand, error) {
	cmd := SubmitRequirementsCommand{
		answers: append([]RequirementAnswerInput(nil), answers...),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return SubmitRequirementsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitRequirementsCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRequirementsCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SubmitRequirementsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the submitting account's identifier.
func (c SubmitRequirementsCommand) ActorID() string {
	return c.actorID
}

// Answers returns the submitted answers in input order.
func (c SubmitRequirementsCommand) Answers() []RequirementAnswerInput {
	return append([]RequirementAnswerInput(nil), c.answers...)
}

func (c *SubmitRequirementsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitRequirementsCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIDIsRequired
	}

	c.actorID = actorID
	return nil
}
