package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Active ──> InProgress ──> Delivered ──> Completed
//	   │          │            │  ^           │
//	   │          │            │  └───────────┘ (revision)
//	   │          │            │
//	   │          │            ├──> CancelPending ──> Cancelled
//	   │          │            │         │
//	   └──────────┴────────────┘         └──> (restored on reject)
//	      (cancellation)
//
// Disputed is occupied by escalated orders and permits no further
// transitions here.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order exists but its payment has
	// not been confirmed by the gateway yet.
	Pending

	// Active indicates the payment succeeded and the buyer still has to
	// submit the requirement answers.
	Active

	// InProgress indicates requirements were submitted and the seller is
	// working against the due date.
	InProgress

	// Delivered indicates the seller submitted work that is awaiting the
	// buyer's approval or revision request.
	Delivered

	// Completed indicates the buyer approved the delivered work.
	// This is a final state with no further transitions allowed.
	Completed

	// CancelPending indicates a cancellation proposal is awaiting the
	// counterparty's response.
	CancelPending

	// Cancelled indicates the order was cancelled, either unilaterally by
	// the buyer or through an accepted cancellation proposal.
	// This is a final state with no further transitions allowed.
	Cancelled

	// Disputed indicates the order was escalated to dispute resolution.
	Disputed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Pending:       "Pending",
		Active:        "Active",
		InProgress:    "InProgress",
		Delivered:     "Delivered",
		Completed:     "Completed",
		CancelPending: "CancelPending",
		Cancelled:     "Cancelled",
		Disputed:      "Disputed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:       "Pending",
		Active:        "Active",
		InProgress:    "InProgress",
		Delivered:     "Delivered",
		Completed:     "Completed",
		CancelPending: "CancelPending",
		Cancelled:     "Cancelled",
		Disputed:      "Disputed",
	}
}

// StatusFromString parses a status from its textual form. Used when
// reconstructing aggregates from persistence and when accepting status
// filters from request payloads.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any other out-of-range values are invalid. This method is
// used to ensure Status values from external sources (database, API) are
// valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
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

// IsFinal reports whether the status permits no further transitions.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled || s == Disputed
}

// ValidateNegotiable checks whether a non-cancellation proposal may be
// opened while the order is in this status. Deadline and price changes only
// make sense while work is in flight: InProgress or Delivered. Cancellation
// proposals take the looser BeginCancellation path instead.
func (s Status) ValidateNegotiable() error {
	if s != InProgress && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to negotiate", s.String()),
		)
	}
	return nil
}

// Place transitions the status to Active.
//
// Valid transitions:
//   - Pending -> Active (gateway confirmed the charge)
func (s Status) Place() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to place", s.String()),
		)
	}
	return Active, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Active -> InProgress (buyer submitted the requirements)
func (s Status) Start() (Status, error) {
	if s != Active {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}
	return InProgress, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InProgress -> Delivered (seller submitted work)
func (s Status) Deliver() (Status, error) {
	if s != InProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return Delivered, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Delivered -> Completed (buyer approved the work)
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != Delivered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}

// Revise transitions the status back to InProgress.
//
// Valid transitions:
//   - Delivered -> InProgress (buyer requested a revision)
func (s Status) Revise() (Status, error) {
	if s != Delivered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to revise", s.String()),
		)
	}
	return InProgress, nil
}

// BeginCancellation transitions the status to CancelPending.
//
// Valid transitions:
//   - Pending -> CancelPending (cancellation proposed before the charge confirmed)
//   - Active -> CancelPending (cancellation proposed before work started)
//   - InProgress -> CancelPending (cancellation proposed during work)
//   - Delivered -> CancelPending (cancellation proposed after delivery)
//
// Unlike other proposals, a cancellation may be raised at any point before
// the order finishes; only the final statuses refuse it.
func (s Status) BeginCancellation() (Status, error) {
	if s.IsFinal() || s == CancelPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to begin cancellation", s.String()),
		)
	}
	return CancelPending, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled (buyer cancelled before payment confirmation)
//   - Active -> Cancelled (buyer cancelled before submitting requirements)
//   - CancelPending -> Cancelled (cancellation proposal accepted)
//
// Cancelled is a final state with no further transitions possible.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Active && s != CancelPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
