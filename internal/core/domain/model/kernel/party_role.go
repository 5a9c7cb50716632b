package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// PartyRole identifies which side of the marketplace an actor acts from.
// It is shared between the order and negotiation aggregates: cancellations
// record who requested them and negotiations record who proposed them.
type PartyRole int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized PartyRole values.
	RoleUnknown PartyRole = iota

	// RoleBuyer is the purchasing party of an order.
	RoleBuyer

	// RoleSeller is the party delivering the service.
	RoleSeller
)

func getPartyRoleStrings() map[PartyRole]string {
	return map[PartyRole]string{
		RoleUnknown: "Unknown",
		RoleBuyer:   "Buyer",
		RoleSeller:  "Seller",
	}
}

// PartyRoleFromString parses a role from its textual form ("Buyer"/"Seller").
// Used when reconstructing aggregates from persistence and when accepting
// roles from request payloads.
func PartyRoleFromString(s string) (PartyRole, error) {
	for role, str := range getPartyRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("party role is invalid",
		fmt.Errorf("%q is not a valid party role", s))
}

// Validate checks that the role is Buyer or Seller.
func (r PartyRole) Validate() error {
	if r != RoleBuyer && r != RoleSeller {
		return errs.NewValueIsInvalidErrorWithCause("party role is invalid",
			fmt.Errorf("%d is not a valid party role", r))
	}
	return nil
}

// Opposite returns the counterparty's role. Notifications for a change
// proposed by one side are addressed to the other.
func (r PartyRole) Opposite() PartyRole {
	switch r {
	case RoleBuyer:
		return RoleSeller
	case RoleSeller:
		return RoleBuyer
	default:
		return RoleUnknown
	}
}

// String returns the human-readable name of the role.
// Implements the fmt.Stringer interface.
func (r PartyRole) String() string {
	if str, ok := getPartyRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
