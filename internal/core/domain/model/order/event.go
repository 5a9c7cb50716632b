package order

import "time"

// EventType names an entry in the order's append-only event log.
type EventType string

const (
	// EventOrderPlaced is appended when the gateway confirms the charge and
	// the order activates.
	EventOrderPlaced EventType = "ORDER_PLACED"

	// EventRequirementsSubmitted is appended when the buyer submits the
	// requirement answers.
	EventRequirementsSubmitted EventType = "REQUIREMENTS_SUBMITTED"

	// EventOrderStarted is appended alongside EventRequirementsSubmitted:
	// the delivery countdown starts at that moment.
	EventOrderStarted EventType = "ORDER_STARTED"

	// EventOrderDelivered is appended when the seller submits work.
	EventOrderDelivered EventType = "ORDER_DELIVERED"

	// EventOrderCancelled is appended when the order is cancelled, whether
	// unilaterally or through an accepted proposal.
	EventOrderCancelled EventType = "ORDER_CANCELLED"

	// EventOrderOverdue is appended at most once, when the overdue detection
	// job finds the order past its due date.
	EventOrderOverdue EventType = "ORDER_OVERDUE"
)

// Event is one entry of the order's audit trail. The log is append-only:
// entries are never mutated or removed.
type Event struct {
	Type       EventType
	OccurredAt time.Time
	Metadata   map[string]string
}
