package order

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// Cancellation records who asked for an order to be cancelled and why.
// It is set exactly once, when the order reaches Cancelled.
type Cancellation struct {
	requestedBy kernel.PartyRole
	reason      string
}

// NewCancellation creates a cancellation record.
func NewCancellation(requestedBy kernel.PartyRole, reason string) (Cancellation, error) {
	if err := requestedBy.Validate(); err != nil {
		return Cancellation{}, err
	}
	if reason == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("cancellation reason")
	}

	return Cancellation{requestedBy: requestedBy, reason: reason}, nil
}

// RequestedBy returns the role that asked for the cancellation.
func (c Cancellation) RequestedBy() kernel.PartyRole { return c.requestedBy }

// Reason returns the free-form cancellation reason.
func (c Cancellation) Reason() string { return c.reason }

// Dispute records an order's escalation to dispute resolution. Resolution
// itself happens outside this service; the order only occupies the Disputed
// status and keeps the case reference.
type Dispute struct {
	caseID      string
	escalatedAt time.Time
}

// NewDispute creates a dispute record.
func NewDispute(caseID string, escalatedAt time.Time) (Dispute, error) {
	if caseID == "" {
		return Dispute{}, errs.NewValueIsRequiredError("dispute case id")
	}
	if escalatedAt.IsZero() {
		return Dispute{}, errs.NewValueIsRequiredError("escalatedAt")
	}

	return Dispute{caseID: caseID, escalatedAt: escalatedAt}, nil
}

// CaseID returns the dispute case identifier.
func (d Dispute) CaseID() string { return d.caseID }

// EscalatedAt returns when the order was escalated.
func (d Dispute) EscalatedAt() time.Time { return d.escalatedAt }
