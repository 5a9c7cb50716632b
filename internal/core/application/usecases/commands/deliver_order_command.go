package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/guard"
)

var (
	ErrDeliverOrderCommandIsNotConstructed = errors.New(
		"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
	)
	ErrDeliveryFilesAreRequired = errors.New("at least one delivery file is required")
)

// DeliverOrderCommand represents the seller submitting completed work for
// buyer review.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID string
	message string
	files   []ports.FileUpload

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command to deliver completed work.
// Requires at least one file; the message may be empty.
func NewDeliverOrderCommand(
	orderID kernel.UUID,
	actorID string,
	message string,
	files []ports.FileUpload,
) (DeliverOrderCommand, error) {
	cmd := DeliverOrderCommand{
		message: message,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setFiles(files),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the delivering account's identifier.
func (c DeliverOrderCommand) ActorID() string {
	return c.actorID
}

// Message returns the seller's delivery note.
func (c DeliverOrderCommand) Message() string {
	return c.message
}

// Files returns the delivered files in input order.
func (c DeliverOrderCommand) Files() []ports.FileUpload {
	return append([]ports.FileUpload(nil), c.files...)
}

func (c *DeliverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIDIsRequired
	}

	c.actorID = actorID
	return nil
}

func (c *DeliverOrderCommand) setFiles(files []ports.FileUpload) error {
	if len(files) == 0 {
		return ErrDeliveryFilesAreRequired
	}

	c.files = append([]ports.FileUpload(nil), files...)
	return nil
}
