package negotiation

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of a negotiation.
//
// State transitions:
//
//	Pending ──┬──> Accepted
//	          └──> Rejected
//
// Both outcomes are final; a resolved negotiation is never reopened.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the proposal awaits the counterparty's
	// response.
	Pending

	// Accepted indicates the counterparty accepted the proposal.
	Accepted

	// Rejected indicates the counterparty declined the proposal.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Accepted: "Accepted",
		Rejected: "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "Pending",
		Accepted: "Accepted",
		Rejected: "Rejected",
	}
}

// StatusFromString parses a status from its textual form.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid negotiation status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid negotiation status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Pending -> Accepted
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}
	return Accepted, nil
}

// Reject transitions the status to Rejected.
//
// Valid transitions:
//   - Pending -> Rejected
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s.String()),
		)
	}
	return Rejected, nil
}
