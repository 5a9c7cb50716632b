package negotiation

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Type discriminates the proposal variants.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypeExtendDelivery proposes pushing the delivery deadline out.
	TypeExtendDelivery

	// TypeCancelOrder proposes cancelling the order.
	TypeCancelOrder

	// TypeModifyOrder proposes changing the order's price or scope.
	TypeModifyOrder
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:        "Unknown",
		TypeExtendDelivery: "ExtendDelivery",
		TypeCancelOrder:    "CancelOrder",
		TypeModifyOrder:    "ModifyOrder",
	}
}

// TypeFromString parses a proposal type from its textual form.
func TypeFromString(s string) (Type, error) {
	for typ, str := range getTypeStrings() {
		if typ != TypeUnknown && str == s {
			return typ, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("negotiation type is invalid",
		fmt.Errorf("%q is not a valid negotiation type", s))
}

// String returns the human-readable name of the type.
// Implements the fmt.Stringer interface.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Proposal is the tagged union of change requests a negotiation can carry.
// Each variant holds only the fields its type needs; the concrete type is
// recovered with a type switch on the interface value.
//
// The interface is sealed: only the variants in this package implement it.
type Proposal interface {
	Type() Type
	isProposal()
}

// ExtendDelivery proposes adding days to the order's due date.
type ExtendDelivery struct {
	additionalDays int
}

// NewExtendDelivery creates an extension proposal for a positive number of
// days.
func NewExtendDelivery(additionalDays int) (ExtendDelivery, error) {
	if additionalDays < 1 {
		return ExtendDelivery{}, errs.NewValueIsInvalidErrorWithCause("additional days is invalid",
			fmt.Errorf("%d is not greater than 0", additionalDays))
	}
	return ExtendDelivery{additionalDays: additionalDays}, nil
}

// AdditionalDays returns the proposed number of extra days.
func (p ExtendDelivery) AdditionalDays() int { return p.additionalDays }

// Type returns TypeExtendDelivery.
func (p ExtendDelivery) Type() Type { return TypeExtendDelivery }

func (p ExtendDelivery) isProposal() {}

// CancelOrder proposes cancelling the order for a stated reason.
type CancelOrder struct {
	reason string
}

// NewCancelOrder creates a cancellation proposal.
func NewCancelOrder(reason string) (CancelOrder, error) {
	if reason == "" {
		return CancelOrder{}, errs.NewValueIsRequiredError("cancellation reason")
	}
	return CancelOrder{reason: reason}, nil
}

// Reason returns the stated cancellation reason.
func (p CancelOrder) Reason() string { return p.reason }

// Type returns TypeCancelOrder.
func (p CancelOrder) Type() Type { return TypeCancelOrder }

func (p CancelOrder) isProposal() {}

// ModifyOrder proposes a new unit price, optionally with a note describing
// the scope change it pays for.
type ModifyOrder struct {
	newUnitPrice int64
	scopeNote    string
}

// NewModifyOrder creates a modification proposal. The price is in cents.
func NewModifyOrder(newUnitPrice int64, scopeNote string) (ModifyOrder, error) {
	if newUnitPrice < 0 {
		return ModifyOrder{}, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%d is negative", newUnitPrice))
	}
	return ModifyOrder{newUnitPrice: newUnitPrice, scopeNote: scopeNote}, nil
}

// NewUnitPrice returns the proposed price per unit in cents.
func (p ModifyOrder) NewUnitPrice() int64 { return p.newUnitPrice }

// ScopeNote returns the free-form description of the scope change.
func (p ModifyOrder) ScopeNote() string { return p.scopeNote }

// Type returns TypeModifyOrder.
func (p ModifyOrder) Type() Type { return TypeModifyOrder }

func (p ModifyOrder) isProposal() {}
