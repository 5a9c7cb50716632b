package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Party is a denormalized snapshot of a marketplace account captured at
// order creation. Later profile edits never retroactively alter historical
// orders: notifications and read views are always built from this snapshot,
// never re-fetched.
type Party struct {
	id       string
	username string
	email    string
	picture  string
}

// NewParty creates a party snapshot. The picture is optional.
func NewParty(id, username, email, picture string) (Party, error) {
	if id == "" {
		return Party{}, errs.NewValueIsRequiredError("party id")
	}
	if username == "" {
		return Party{}, errs.NewValueIsRequiredError("party username")
	}
	if email == "" {
		return Party{}, errs.NewValueIsRequiredError("party email")
	}

	return Party{id: id, username: username, email: email, picture: picture}, nil
}

// ID returns the account identifier in the profile service.
func (p Party) ID() string { return p.id }

// Username returns the display name captured at order creation.
func (p Party) Username() string { return p.username }

// Email returns the email captured at order creation.
func (p Party) Email() string { return p.email }

// Picture returns the profile picture URL captured at order creation.
func (p Party) Picture() string { return p.picture }

// GigSnapshot is a denormalized snapshot of the purchased gig captured at
// order creation.
type GigSnapshot struct {
	id          string
	title       string
	description string
	coverImage  string
}

// NewGigSnapshot creates a gig snapshot. Description and cover image are
// optional.
func NewGigSnapshot(id, title, description, coverImage string) (GigSnapshot, error) {
	if id == "" {
		return GigSnapshot{}, errs.NewValueIsRequiredError("gig id")
	}
	if title == "" {
		return GigSnapshot{}, errs.NewValueIsRequiredError("gig title")
	}

	return GigSnapshot{id: id, title: title, description: description, coverImage: coverImage}, nil
}

// ID returns the gig identifier in the catalog service.
func (g GigSnapshot) ID() string { return g.id }

// Title returns the gig title captured at order creation.
func (g GigSnapshot) Title() string { return g.title }

// Description returns the gig description captured at order creation.
func (g GigSnapshot) Description() string { return g.description }

// CoverImage returns the gig cover image URL captured at order creation.
func (g GigSnapshot) CoverImage() string { return g.coverImage }

// Pricing holds the commercial terms of an order. All amounts are integer
// cents in the order's currency. The total carries the subtotal, the service
// fee and any externally computed tax, so it is stored rather than derived.
type Pricing struct {
	quantity    int
	unitPrice   int64
	serviceFee  int64
	totalAmount int64
	currency    string
}

// NewPricing creates the commercial terms of an order.
func NewPricing(quantity int, unitPrice, serviceFee, totalAmount int64, currency string) (Pricing, error) {
	if quantity < 1 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%d is negative", unitPrice))
	}
	if serviceFee < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("service fee is invalid",
			fmt.Errorf("%d is negative", serviceFee))
	}
	if totalAmount < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("total amount is invalid",
			fmt.Errorf("%d is negative", totalAmount))
	}
	if currency == "" {
		return Pricing{}, errs.NewValueIsRequiredError("currency")
	}

	return Pricing{
		quantity:    quantity,
		unitPrice:   unitPrice,
		serviceFee:  serviceFee,
		totalAmount: totalAmount,
		currency:    currency,
	}, nil
}

// Quantity returns the number of purchased units.
func (p Pricing) Quantity() int { return p.quantity }

// UnitPrice returns the price per unit in cents.
func (p Pricing) UnitPrice() int64 { return p.unitPrice }

// ServiceFee returns the marketplace fee in cents.
func (p Pricing) ServiceFee() int64 { return p.serviceFee }

// TotalAmount returns the charged total in cents.
func (p Pricing) TotalAmount() int64 { return p.totalAmount }

// Currency returns the ISO currency code.
func (p Pricing) Currency() string { return p.currency }

// repriced returns the terms with a new unit price, adjusting the total by
// the subtotal delta. Fee and tax components are left untouched.
func (p Pricing) repriced(newUnitPrice int64) (Pricing, error) {
	if newUnitPrice < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%d is negative", newUnitPrice))
	}

	delta := (newUnitPrice - p.unitPrice) * int64(p.quantity)
	next := p
	next.unitPrice = newUnitPrice
	next.totalAmount = p.totalAmount + delta
	if next.totalAmount < 0 {
		next.totalAmount = 0
	}
	return next, nil
}
