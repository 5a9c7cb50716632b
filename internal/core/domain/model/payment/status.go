package payment

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of a payment.
//
// State transitions:
//
//	Pending ──┬──> Paid ──> RefundPending ──┬──> Refunded
//	          │               ^             └──> RefundFailed ──┐
//	          │               └─────────────────────────────────┘
//	          └──> CancelPending ──> Canceled
//
// Refunded and Canceled are final. RefundFailed re-enters RefundPending when
// the settlement job retries.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: a charge intent is open at the gateway
	// and awaits confirmation.
	Pending

	// Paid indicates the gateway confirmed the charge.
	Paid

	// CancelPending indicates the open charge intent is queued for
	// cancellation at the gateway.
	CancelPending

	// Canceled indicates the charge intent was cancelled before capture.
	// This is a final state.
	Canceled

	// RefundPending indicates the captured charge is queued for refund.
	RefundPending

	// Refunded indicates the gateway confirmed the refund.
	// This is a final state.
	Refunded

	// RefundFailed indicates the gateway rejected the refund attempt; the
	// settlement job will retry.
	RefundFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Pending:       "Pending",
		Paid:          "Paid",
		CancelPending: "CancelPending",
		Canceled:      "Canceled",
		RefundPending: "RefundPending",
		Refunded:      "Refunded",
		RefundFailed:  "RefundFailed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:       "Pending",
		Paid:          "Paid",
		CancelPending: "CancelPending",
		Canceled:      "Canceled",
		RefundPending: "RefundPending",
		Refunded:      "Refunded",
		RefundFailed:  "RefundFailed",
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
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
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

// IsCurrent reports whether the payment is the order's live transaction:
// either awaiting confirmation or confirmed.
func (s Status) IsCurrent() bool {
	return s == Pending || s == Paid
}

// IsSettled reports whether the payment reached a final reversed state.
// Settlement jobs skip settled payments, which makes retries idempotent.
func (s Status) IsSettled() bool {
	return s == Refunded || s == Canceled
}

// MarkPaid transitions the status to Paid.
//
// Valid transitions:
//   - Pending -> Paid (gateway confirmed the charge)
func (s Status) MarkPaid() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark paid", s.String()),
		)
	}
	return Paid, nil
}

// BeginRefund transitions the status to RefundPending.
//
// Valid transitions:
//   - Paid -> RefundPending (refund requested)
//   - RefundFailed -> RefundPending (settlement job retry)
func (s Status) BeginRefund() (Status, error) {
	if s != Paid && s != RefundFailed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to begin a refund", s.String()),
		)
	}
	return RefundPending, nil
}

// MarkRefunded transitions the status to Refunded.
//
// Valid transitions:
//   - RefundPending -> Refunded (settlement job succeeded)
//   - Paid -> Refunded (gateway-initiated refund reported by webhook)
func (s Status) MarkRefunded() (Status, error) {
	if s != RefundPending && s != Paid {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark refunded", s.String()),
		)
	}
	return Refunded, nil
}

// MarkRefundFailed transitions the status to RefundFailed.
//
// Valid transitions:
//   - RefundPending -> RefundFailed (gateway rejected the refund)
func (s Status) MarkRefundFailed() (Status, error) {
	if s != RefundPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark refund failed", s.String()),
		)
	}
	return RefundFailed, nil
}

// BeginCancellation transitions the status to CancelPending.
//
// Valid transitions:
//   - Pending -> CancelPending (open intent queued for cancellation)
func (s Status) BeginCancellation() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to begin cancellation", s.String()),
		)
	}
	return CancelPending, nil
}

// MarkCanceled transitions the status to Canceled.
//
// Valid transitions:
//   - CancelPending -> Canceled (settlement job succeeded)
//   - Pending -> Canceled (synchronous cancellation)
func (s Status) MarkCanceled() (Status, error) {
	if s != CancelPending && s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark canceled", s.String()),
		)
	}
	return Canceled, nil
}
