package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var (
	ErrApplyReviewCommandIsNotConstructed = errors.New(
		"ApplyReviewCommand must be created via NewApplyReviewCommand constructor",
	)
	ErrRatingIsOutOfRange = errors.New("rating must be between 1 and 5")
)

// ApplyReviewCommand represents a review message consumed from the message
// bus: one party rated the other on a completed order.
type ApplyReviewCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID string
	rating  int
	text    string

	guard guard.ConstructorGuard
}

// NewApplyReviewCommand creates a command to record a review on an order.
func NewApplyReviewCommand(orderID kernel.UUID, actorID string, rating int, text string) (ApplyReviewCommand, error) {
	cmd := ApplyReviewCommand{
		text:  text,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setRating(rating),
	); err != nil {
		return ApplyReviewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyReviewCommand) Validate() error {
	return c.guard.Validate(ErrApplyReviewCommandIsNotConstructed)
}

// OrderID returns the reviewed order's identifier.
func (c ApplyReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the reviewing account's identifier.
func (c ApplyReviewCommand) ActorID() string {
	return c.actorID
}

// Rating returns the star rating, 1 to 5.
func (c ApplyReviewCommand) Rating() int {
	return c.rating
}

// Text returns the review body.
func (c ApplyReviewCommand) Text() string {
	return c.text
}

func (c *ApplyReviewCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyReviewCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIDIsRequired
	}

	c.actorID = actorID
	return nil
}

func (c *ApplyReviewCommand) setRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrRatingIsOutOfRange
	}

	c.rating = rating
	return nil
}
