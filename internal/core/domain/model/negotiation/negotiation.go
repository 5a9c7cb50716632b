package negotiation

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrNegotiationIsNotConstructed is returned when a Negotiation instance was
	// not created through the NewNegotiation or RestoreNegotiation factory
	// methods.
	ErrNegotiationIsNotConstructed = errors.New("Negotiation must be created via NewNegotiation or RestoreNegotiation")
)

// Negotiation represents one proposed change to an order, raised by one
// party and resolved by the other.
//
// Negotiation follows these invariants:
//   - The proposal is immutable after creation
//   - Resolution happens exactly once: Pending -> Accepted or Rejected
//   - Can only be created through NewNegotiation or RestoreNegotiation
//
// The per-order at-most-one-pending invariant lives on the order aggregate,
// which holds the id of its single outstanding negotiation.
type Negotiation struct {
	id      kernel.UUID
	orderID kernel.UUID

	proposal Proposal
	message  string

	requesterID   string
	requesterRole kernel.PartyRole

	status        Status
	createdAt     time.Time
	respondedAt   *time.Time
	disputeCaseID string

	isConstructed bool
}

// NewNegotiation creates a pending negotiation against an order.
//
// Parameters:
//   - id: unique identifier for the negotiation
//   - orderID: the order the proposal targets
//   - proposal: the change request (tagged union, see Proposal)
//   - requesterID: the proposing account's external identifier
//   - requesterRole: which side of the order proposes the change
//   - message: free-form message to the counterparty
//   - createdAt: creation time
func NewNegotiation(
	id kernel.UUID,
	orderID kernel.UUID,
	proposal Proposal,
	requesterID string,
	requesterRole kernel.PartyRole,
	message string,
	createdAt time.Time,
) (*Negotiation, error) {
	n := &Negotiation{
		status:        Pending,
		message:       message,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setOrderID(orderID),
		n.setProposal(proposal),
		n.setRequester(requesterID, requesterRole),
		n.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNegotiationParams carries the full persisted state of a negotiation
// for reconstruction by the persistence adapter.
type RestoreNegotiationParams struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	Proposal      Proposal
	Message       string
	RequesterID   string
	RequesterRole kernel.PartyRole
	Status        Status
	CreatedAt     time.Time
	RespondedAt   *time.Time
	DisputeCaseID string
}

// RestoreNegotiation reconstructs a negotiation from persistence.
func RestoreNegotiation(p RestoreNegotiationParams) (*Negotiation, error) {
	n, err := NewNegotiation(p.ID, p.OrderID, p.Proposal, p.RequesterID, p.RequesterRole,
		p.Message, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = p.Status.Validate(); err != nil {
		return nil, err
	}

	n.status = p.Status
	n.respondedAt = p.RespondedAt
	n.disputeCaseID = p.DisputeCaseID
	return n, nil
}

// Validate ensures the Negotiation instance was properly constructed through
// a factory method.
func (n *Negotiation) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNegotiationIsNotConstructed
	}
	return nil
}

// IsEqual compares two negotiations by their unique identifiers.
func (n *Negotiation) IsEqual(other *Negotiation) bool {
	return other != nil && n.id.IsEqual(other.id)
}

// ID returns the negotiation's unique identifier.
func (n *Negotiation) ID() kernel.UUID { return n.id }

// OrderID returns the id of the order the proposal targets.
func (n *Negotiation) OrderID() kernel.UUID { return n.orderID }

// Proposal returns the change request.
func (n *Negotiation) Proposal() Proposal { return n.proposal }

// Message returns the requester's message to the counterparty.
func (n *Negotiation) Message() string { return n.message }

// RequesterID returns the proposing account's external identifier.
func (n *Negotiation) RequesterID() string { return n.requesterID }

// RequesterRole returns which side of the order proposed the change.
func (n *Negotiation) RequesterRole() kernel.PartyRole { return n.requesterRole }

// Status returns the current status.
func (n *Negotiation) Status() Status { return n.status }

// CreatedAt returns the creation time.
func (n *Negotiation) CreatedAt() time.Time { return n.createdAt }

// RespondedAt returns when the counterparty resolved the proposal, or nil
// while it is pending.
func (n *Negotiation) RespondedAt() *time.Time { return n.respondedAt }

// DisputeCaseID returns the linked dispute case, or the empty string.
func (n *Negotiation) DisputeCaseID() string { return n.disputeCaseID }

// ProposesCancellation reports whether the proposal would cancel the order.
func (n *Negotiation) ProposesCancellation() bool {
	return n.proposal.Type() == TypeCancelOrder
}

// Accept resolves the negotiation as accepted. The order-side effects of the
// proposal are applied by the caller against the order aggregate in the same
// transaction.
func (n *Negotiation) Accept(now time.Time) error {
	newStatus, err := n.status.Accept()
	if err != nil {
		return errs.NewConflictErrorWithCause("negotiation", n.id.String(), n.status.String(),
			"cannot accept negotiation", err)
	}

	n.status = newStatus
	n.respondedAt = &now
	return nil
}

// Reject resolves the negotiation as rejected.
func (n *Negotiation) Reject(now time.Time) error {
	newStatus, err := n.status.Reject()
	if err != nil {
		return errs.NewConflictErrorWithCause("negotiation", n.id.String(), n.status.String(),
			"cannot reject negotiation", err)
	}

	n.status = newStatus
	n.respondedAt = &now
	return nil
}

// LinkDisputeCase attaches a dispute case reference to the negotiation.
func (n *Negotiation) LinkDisputeCase(caseID string) error {
	if caseID == "" {
		return errs.NewValueIsRequiredError("dispute case id")
	}
	n.disputeCaseID = caseID
	return nil
}

func (n *Negotiation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Negotiation) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	n.orderID = orderID
	return nil
}

func (n *Negotiation) setProposal(proposal Proposal) error {
	if proposal == nil {
		return errs.NewValueIsRequiredError("proposal")
	}
	n.proposal = proposal
	return nil
}

func (n *Negotiation) setRequester(requesterID string, requesterRole kernel.PartyRole) error {
	if requesterID == "" {
		return errs.NewValueIsRequiredError("requesterID")
	}
	if err := requesterRole.Validate(); err != nil {
		return err
	}
	n.requesterID = requesterID
	n.requesterRole = requesterRole
	return nil
}

func (n *Negotiation) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	n.createdAt = createdAt
	return nil
}
