package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrGigIDIsRequired   = errors.New("gig id is required")
	ErrBuyerIDIsRequired = errors.New("buyer id is required")
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// CreateOrderCommand represents a request to purchase a gig.
// Encapsulates everything needed to price the order and open the charge.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "gig-42", "buyer-7", 2, false)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, gateway, calculator, "stripe")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created and awaiting payment confirmation", orderID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	gigID         string
	buyerID       string
	quantity      int
	isCustomOffer bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to purchase a gig.
// Validates that order ID is valid, gig and buyer ids are present, and
// quantity is positive. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	gigID string,
	buyerID string,
	quantity int,
	isCustomOffer bool,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		isCustomOffer: isCustomOffer,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setGigID(gigID),
		orderCommand.setBuyerID(buyerID),
		orderCommand.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// GigID returns the identifier of the purchased gig.
func (c CreateOrderCommand) GigID() string {
	return c.gigID
}

// BuyerID returns the purchasing account's identifier.
func (c CreateOrderCommand) BuyerID() string {
	return c.buyerID
}

// Quantity returns how many units of the gig are purchased.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

// IsCustomOffer reports whether the purchase came from a custom offer.
func (c CreateOrderCommand) IsCustomOffer() bool {
	return c.isCustomOffer
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setGigID(gigID string) error {
	if gigID == "" {
		return ErrGigIDIsRequired
	}

	c.gigID = gigID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID string) error {
	if buyerID == "" {
		return ErrBuyerIDIsRequired
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
