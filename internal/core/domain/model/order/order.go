package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents one purchase of a seller's service by a buyer. It is the
// aggregate root that manages the order lifecycle from placement through
// requirement submission, delivery, approval or revision, negotiation and
// cancellation.
//
// Order follows these invariants:
//   - At most one delivered-work entry is awaiting review at any time
//   - currentNegotiationID is set if and only if a pending negotiation exists
//   - The delivery clock is paused exactly while a delivery awaits review or
//     a negotiation holds an in-progress order
//   - Status transitions follow the defined state machine
//   - Can only be created through NewOrder or RestoreOrder
//
// Mutating methods take the current time as a parameter; the aggregate never
// reads the wall clock itself.
type Order struct {
	id        kernel.UUID
	invoiceID string

	// snapshots captured at creation, never re-fetched
	gig    GigSnapshot
	buyer  Party
	seller Party

	pricing       Pricing
	isCustomOffer bool

	status               Status
	orderedAt            time.Time
	expectedDeliveryDays int

	// dueDate is authoritative while the clock runs; while paused, the
	// frozen remainder in clock is authoritative and dueDate is stale.
	dueDate time.Time
	clock   DeliveryClock

	currentNegotiationID *kernel.UUID
	revisionCount        int
	maxRevision          *int

	requirements []Requirement
	deliveries   []Delivery
	events       []Event

	cancellation *Cancellation
	dispute      *Dispute
	buyerReview  *Review
	sellerReview *Review
	approvedAt   *time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with an unanswered
// requirement list and a running delivery clock. The due date stays unset
// until the buyer submits the requirements.
//
// Parameters:
//   - id: unique identifier for the order
//   - invoiceID: display invoice reference (see NewInvoiceID)
//   - gig, buyer, seller: denormalized snapshots captured at creation
//   - pricing: commercial terms, amounts in cents
//   - expectedDeliveryDays: promised turnaround once work starts
//   - maxRevision: optional cap on revision requests (nil means unlimited)
//   - requirements: the questionnaire captured from the gig template
//   - isCustomOffer: whether the purchase came from a custom offer
//   - orderedAt: placement time
func NewOrder(
	id kernel.UUID,
	invoiceID string,
	gig GigSnapshot,
	buyer Party,
	seller Party,
	pricing Pricing,
	expectedDeliveryDays int,
	maxRevision *int,
	requirements []Requirement,
	isCustomOffer bool,
	orderedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		clock:         RunningClock(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setInvoiceID(invoiceID),
		o.setGig(gig),
		o.setParties(buyer, seller),
		o.setPricing(pricing),
		o.setExpectedDeliveryDays(expectedDeliveryDays),
		o.setMaxRevision(maxRevision),
		o.setOrderedAt(orderedAt),
	); err != nil {
		return nil, err
	}

	o.isCustomOffer = isCustomOffer
	o.requirements = append([]Requirement(nil), requirements...)

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order for
// reconstruction by the persistence adapter.
type RestoreOrderParams struct {
	ID                   kernel.UUID
	InvoiceID            string
	Gig                  GigSnapshot
	Buyer                Party
	Seller               Party
	Pricing              Pricing
	IsCustomOffer        bool
	Status               Status
	OrderedAt            time.Time
	ExpectedDeliveryDays int
	DueDate              time.Time
	Clock                DeliveryClock
	CurrentNegotiationID *kernel.UUID
	RevisionCount        int
	MaxRevision          *int
	Requirements         []Requirement
	Deliveries           []Delivery
	Events               []Event
	Cancellation         *Cancellation
	Dispute              *Dispute
	BuyerReview          *Review
	SellerReview         *Review
	ApprovedAt           *time.Time
}

// RestoreOrder reconstructs an order from persistence without running the
// creation-time transitions. The status and identifiers are still validated;
// data integrity beyond that is the adapter's responsibility.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o, err := NewOrder(p.ID, p.InvoiceID, p.Gig, p.Buyer, p.Seller, p.Pricing,
		p.ExpectedDeliveryDays, p.MaxRevision, p.Requirements, p.IsCustomOffer, p.OrderedAt)
	if err != nil {
		return nil, err
	}
	if err = p.Status.Validate(); err != nil {
		return nil, err
	}
	if p.CurrentNegotiationID != nil {
		if err = p.CurrentNegotiationID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = p.Status
	o.dueDate = p.DueDate
	o.clock = p.Clock
	o.currentNegotiationID = p.CurrentNegotiationID
	o.revisionCount = p.RevisionCount
	o.deliveries = append([]Delivery(nil), p.Deliveries...)
	o.events = append([]Event(nil), p.Events...)
	o.cancellation = p.Cancellation
	o.dispute = p.Dispute
	o.buyerReview = p.BuyerReview
	o.sellerReview = p.SellerReview
	o.approvedAt = p.ApprovedAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Call it when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// InvoiceID returns the display invoice reference.
func (o *Order) InvoiceID() string { return o.invoiceID }

// Gig returns the gig snapshot captured at creation.
func (o *Order) Gig() GigSnapshot { return o.gig }

// Buyer returns the buyer snapshot captured at creation.
func (o *Order) Buyer() Party { return o.buyer }

// Seller returns the seller snapshot captured at creation.
func (o *Order) Seller() Party { return o.seller }

// Pricing returns the commercial terms.
func (o *Order) Pricing() Pricing { return o.pricing }

// IsCustomOffer reports whether the purchase came from a custom offer.
func (o *Order) IsCustomOffer() bool { return o.isCustomOffer }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// OrderedAt returns the placement time.
func (o *Order) OrderedAt() time.Time { return o.orderedAt }

// ExpectedDeliveryDays returns the promised turnaround in days.
func (o *Order) ExpectedDeliveryDays() int { return o.expectedDeliveryDays }

// DueDate returns the delivery deadline. It is zero before requirements are
// submitted, and stale while the clock is paused.
func (o *Order) DueDate() time.Time { return o.dueDate }

// Clock returns the delivery clock state.
func (o *Order) Clock() DeliveryClock { return o.clock }

// CurrentNegotiationID returns the id of the single outstanding negotiation,
// or nil when none is pending.
func (o *Order) CurrentNegotiationID() *kernel.UUID { return o.currentNegotiationID }

// RevisionCount returns how many revisions the buyer has requested.
func (o *Order) RevisionCount() int { return o.revisionCount }

// MaxRevision returns the revision cap, or nil when unlimited.
func (o *Order) MaxRevision() *int { return o.maxRevision }

// Requirements returns a copy of the requirement entries.
func (o *Order) Requirements() []Requirement {
	return append([]Requirement(nil), o.requirements...)
}

// Deliveries returns a copy of the delivered-work entries, oldest first.
func (o *Order) Deliveries() []Delivery {
	return append([]Delivery(nil), o.deliveries...)
}

// Events returns a copy of the append-only event log, oldest first.
func (o *Order) Events() []Event {
	return append([]Event(nil), o.events...)
}

// Cancellation returns the cancellation record, or nil.
func (o *Order) Cancellation() *Cancellation { return o.cancellation }

// Dispute returns the dispute record, or nil.
func (o *Order) Dispute() *Dispute { return o.dispute }

// BuyerReview returns the buyer's review of the seller, or nil.
func (o *Order) BuyerReview() *Review { return o.buyerReview }

// SellerReview returns the seller's review of the buyer, or nil.
func (o *Order) SellerReview() *Review { return o.sellerReview }

// ApprovedAt returns when the buyer approved the final delivery, or nil.
func (o *Order) ApprovedAt() *time.Time { return o.approvedAt }

// Activate transitions the order Pending -> Active once the gateway has
// confirmed the charge, and appends an ORDER_PLACED event. The caller is
// responsible for locating the confirmed payment first.
func (o *Order) Activate(now time.Time) error {
	newStatus, err := o.status.Place()
	if err != nil {
		return o.conflictWithCause("cannot activate order", err)
	}

	o.status = newStatus
	o.appendEvent(EventOrderPlaced, now, nil)
	return nil
}

// ValidateRequirementSubmission checks a requirement submission without
// applying it. Every required entry must carry either non-empty answer text
// or an accompanying file; violations are reported together so the buyer can
// fix them in one pass.
//
// Callers upload answer files only after this passes, then apply the
// submission with FulfillRequirements. The split keeps failed validations
// from wasting uploads.
func (o *Order) ValidateRequirementSubmission(answers []RequirementAnswer) error {
	if err := o.requirementSubmissionGuards(); err != nil {
		return err
	}

	missing, err := validateAnswers(o.requirements, answers)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errs.NewMissingRequirementsError(o.id.String(), missing)
	}
	return nil
}

// FulfillRequirements applies a validated requirement submission: answers
// are recorded, the due date is computed from now plus the expected delivery
// days, the order moves Active -> InProgress and REQUIREMENTS_SUBMITTED and
// ORDER_STARTED events are appended.
func (o *Order) FulfillRequirements(answers []FulfilledAnswer, now time.Time) error {
	if err := o.requirementSubmissionGuards(); err != nil {
		return err
	}

	plain := make([]RequirementAnswer, 0, len(answers))
	for _, a := range answers {
		plain = append(plain, RequirementAnswer{
			RequirementID: a.RequirementID,
			Text:          a.Text,
			HasFile:       a.FileURL != "",
		})
	}
	missing, err := validateAnswers(o.requirements, plain)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errs.NewMissingRequirementsError(o.id.String(), missing)
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return o.conflictWithCause("cannot start order", err)
	}

	byID := make(map[string]FulfilledAnswer, len(answers))
	for _, a := range answers {
		byID[a.RequirementID] = a
	}
	for i := range o.requirements {
		if a, ok := byID[o.requirements[i].id]; ok {
			o.requirements[i].answer(a.Text, a.FileURL)
		}
	}

	o.status = newStatus
	o.dueDate = now.Add(time.Duration(o.expectedDeliveryDays) * 24 * time.Hour)
	o.clock = RunningClock()
	o.appendEvent(EventRequirementsSubmitted, now, nil)
	o.appendEvent(EventOrderStarted, now, nil)
	return nil
}

// ValidateDelivery checks the delivery guards without recording anything.
// Callers upload the delivery files only after this passes, then apply the
// submission with Deliver, so a guard violation never wastes an upload.
func (o *Order) ValidateDelivery() error {
	if err := o.requireNoNegotiation(); err != nil {
		return err
	}
	if last := o.lastDelivery(); last != nil && !last.IsResolved() {
		return o.conflict("previous delivery is still awaiting review")
	}
	if _, err := o.status.Deliver(); err != nil {
		return o.conflictWithCause("cannot deliver order", err)
	}
	return nil
}

// Deliver records a delivered-work submission: the entry is appended
// awaiting review, the delivery clock freezes so review time does not eat
// into the deadline, the order moves InProgress -> Delivered and an
// ORDER_DELIVERED event is appended.
//
// A second delivery while the previous one awaits review is a conflict.
func (o *Order) Deliver(message string, files []StoredFile, now time.Time) error {
	if err := o.requireNoNegotiation(); err != nil {
		return err
	}
	if last := o.lastDelivery(); last != nil && !last.IsResolved() {
		return o.conflict("previous delivery is still awaiting review")
	}

	delivery, err := NewDelivery(message, files, now)
	if err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return o.conflictWithCause("cannot deliver order", err)
	}

	o.status = newStatus
	o.clock = FreezeClock(o.dueDate, now)
	o.deliveries = append(o.deliveries, delivery)
	o.appendEvent(EventOrderDelivered, now, nil)
	return nil
}

// ApproveDelivery records the buyer's acceptance of the latest delivery:
// the entry is marked approved, the order moves Delivered -> Completed and
// the approval time is recorded on the order.
func (o *Order) ApproveDelivery(now time.Time) error {
	last, err := o.reviewableDelivery()
	if err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return o.conflictWithCause("cannot approve delivery", err)
	}

	last.approve(now)
	o.status = newStatus
	o.approvedAt = &now
	return nil
}

// RequestRevision records the buyer sending the latest delivery back: the
// entry is marked revision-requested, the revision count increments, the
// clock resumes (due date recomputed from the remainder frozen at delivery
// time) and the order moves Delivered -> InProgress.
//
// When the order carries a revision cap, requests beyond it are a conflict.
func (o *Order) RequestRevision(now time.Time) error {
	last, err := o.reviewableDelivery()
	if err != nil {
		return err
	}
	if o.maxRevision != nil && o.revisionCount >= *o.maxRevision {
		return o.conflict(fmt.Sprintf("revision limit of %d reached", *o.maxRevision))
	}

	newStatus, err := o.status.Revise()
	if err != nil {
		return o.conflictWithCause("cannot request revision", err)
	}

	last.requestRevision(now)
	o.revisionCount++
	o.status = newStatus
	o.dueDate, o.clock = o.clock.Resume(now)
	return nil
}

// CancelUnilaterally cancels the order without the counterparty's consent.
// Only the buyer may do this, and only while the order is Pending or Active;
// once work has started, cancellation goes through a negotiation. The caller
// settles the associated payment (cancel for Pending, refund for Active).
func (o *Order) CancelUnilaterally(requestedBy kernel.PartyRole, reason string, now time.Time) error {
	if requestedBy != kernel.RoleBuyer {
		return o.conflict("only the buyer can cancel an order unilaterally")
	}
	if o.status != Pending && o.status != Active {
		return o.conflict("only pending or active orders can be cancelled unilaterally")
	}

	cancellation, err := NewCancellation(requestedBy, reason)
	if err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return o.conflictWithCause("cannot cancel order", err)
	}

	o.status = newStatus
	o.cancellation = &cancellation
	o.appendEvent(EventOrderCancelled, now, nil)
	return nil
}

// BeginNegotiation attaches a pending negotiation to the order. At most one
// negotiation may be outstanding; a second is a conflict. Deadline and price
// proposals are only permitted while work is in flight (InProgress or
// Delivered); a cancellation proposal is accepted in any non-final status,
// since it is the only consensual exit before work starts.
//
// If the order is InProgress, the delivery clock freezes so the pending
// proposal does not burn the seller's time; a delivered order's clock is
// already frozen. If the proposal is a cancellation, the order moves to
// CancelPending.
func (o *Order) BeginNegotiation(negotiationID kernel.UUID, proposesCancellation bool, now time.Time) error {
	if err := negotiationID.Validate(); err != nil {
		return err
	}
	if o.currentNegotiationID != nil {
		return o.conflict("a negotiation is already pending for this order")
	}
	if !proposesCancellation {
		if err := o.status.ValidateNegotiable(); err != nil {
			return o.conflictWithCause("cannot open negotiation", err)
		}
	}

	if o.status == InProgress {
		o.clock = FreezeClock(o.dueDate, now)
	}
	if proposesCancellation {
		newStatus, err := o.status.BeginCancellation()
		if err != nil {
			return o.conflictWithCause("cannot open cancellation negotiation", err)
		}
		o.status = newStatus
	}

	o.currentNegotiationID = &negotiationID
	return nil
}

// AcceptDeliveryExtension applies an accepted extend-delivery proposal: the
// outstanding negotiation is cleared, the proposed days are added to the due
// date and the clock resumes running.
func (o *Order) AcceptDeliveryExtension(negotiationID kernel.UUID, additionalDays int, now time.Time) error {
	if err := o.requireCurrentNegotiation(negotiationID); err != nil {
		return err
	}
	if additionalDays < 1 {
		return errs.NewValueIsInvalidErrorWithCause("additional days is invalid",
			fmt.Errorf("%d is not greater than 0", additionalDays))
	}

	o.currentNegotiationID = nil
	o.dueDate = o.dueDate.Add(time.Duration(additionalDays) * 24 * time.Hour)
	o.clock = RunningClock()
	return nil
}

// AcceptCancellation applies an accepted cancel-order proposal: the
// outstanding negotiation is cleared, the cancellation details are recorded
// and the order moves CancelPending -> Cancelled. The caller triggers the
// refund workflow for the order's payments.
func (o *Order) AcceptCancellation(negotiationID kernel.UUID, cancellation Cancellation, now time.Time) error {
	if err := o.requireCurrentNegotiation(negotiationID); err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return o.conflictWithCause("cannot cancel order", err)
	}

	o.currentNegotiationID = nil
	o.status = newStatus
	o.cancellation = &cancellation
	o.clock = RunningClock()
	o.appendEvent(EventOrderCancelled, now, nil)
	return nil
}

// AcceptModification applies an accepted modify-order proposal: the
// outstanding negotiation is cleared, the unit price is updated (the total
// adjusted by the subtotal delta) and, for an in-progress order, the clock
// resumes. The caller reconciles any payment difference.
func (o *Order) AcceptModification(negotiationID kernel.UUID, newUnitPrice int64, now time.Time) error {
	if err := o.requireCurrentNegotiation(negotiationID); err != nil {
		return err
	}

	repriced, err := o.pricing.repriced(newUnitPrice)
	if err != nil {
		return err
	}

	o.currentNegotiationID = nil
	o.pricing = repriced
	if o.status == InProgress && o.clock.IsPaused() {
		o.dueDate, o.clock = o.clock.Resume(now)
	}
	return nil
}

// RejectNegotiation applies a rejected proposal of any type: the outstanding
// negotiation is cleared and the order returns to where it was before the
// proposal.
//
// A rejected cancellation restores the status the order held before the
// proposal: Delivered when the latest delivery is still awaiting review
// (mere existence of an old, already revised delivery does not count),
// InProgress once work had started, and Active or Pending for the
// pre-work stages. When the order lands back in InProgress, the clock
// resumes and the due date is recomputed from the frozen remainder; a
// delivered order keeps its clock frozen for the pending review.
func (o *Order) RejectNegotiation(negotiationID kernel.UUID, now time.Time) error {
	if err := o.requireCurrentNegotiation(negotiationID); err != nil {
		return err
	}

	o.currentNegotiationID = nil

	if o.status == CancelPending {
		o.status = o.statusBeforeCancellation()
	}

	if o.status == InProgress && o.clock.IsPaused() {
		o.dueDate, o.clock = o.clock.Resume(now)
	}
	return nil
}

// statusBeforeCancellation reconstructs where a CancelPending order stood
// before the cancellation proposal. Each stage leaves a trace: an
// unresolved delivery means Delivered, a due date means work had started,
// the placement event means the charge was confirmed.
func (o *Order) statusBeforeCancellation() Status {
	if last := o.lastDelivery(); last != nil && !last.IsResolved() {
		return Delivered
	}
	if !o.dueDate.IsZero() {
		return InProgress
	}
	if o.hasEvent(EventOrderPlaced) {
		return Active
	}
	return Pending
}

// MarkOverdue appends an ORDER_OVERDUE event for an in-progress order past
// its due date. The event is appended at most once; repeated calls are
// no-ops, so the detection job can safely re-scan.
func (o *Order) MarkOverdue(now time.Time) error {
	if o.hasEvent(EventOrderOverdue) {
		return nil
	}
	if o.status != InProgress {
		return o.conflict("only in-progress orders can become overdue")
	}
	if !now.After(o.dueDate) {
		return o.conflict("order is not past its due date")
	}

	o.appendEvent(EventOrderOverdue, now, nil)
	return nil
}

// EscalateDispute moves the order to Disputed and records the case
// reference. Resolution happens outside this service.
func (o *Order) EscalateDispute(caseID string, now time.Time) error {
	if o.status.IsFinal() {
		return o.conflict("cannot escalate a finished order")
	}

	dispute, err := NewDispute(caseID, now)
	if err != nil {
		return err
	}

	o.status = Disputed
	o.dispute = &dispute
	return nil
}

// AttachBuyerReview records the buyer's review of the seller.
func (o *Order) AttachBuyerReview(review Review) {
	o.buyerReview = &review
}

// AttachSellerReview records the seller's review of the buyer.
func (o *Order) AttachSellerReview(review Review) {
	o.sellerReview = &review
}

func (o *Order) requirementSubmissionGuards() error {
	if o.status != Active {
		return o.conflict("requirements can only be submitted for an active order")
	}
	return o.requireNoNegotiation()
}

// reviewableDelivery returns the latest delivery if it awaits review, or a
// conflict otherwise.
func (o *Order) reviewableDelivery() (*Delivery, error) {
	if err := o.requireNoNegotiation(); err != nil {
		return nil, err
	}
	last := o.lastDelivery()
	if last == nil {
		return nil, o.conflict("order has no delivery to review")
	}
	if last.IsResolved() {
		return nil, o.conflict("latest delivery was already reviewed")
	}
	return last, nil
}

func (o *Order) requireNoNegotiation() error {
	if o.currentNegotiationID != nil {
		return o.conflict("a negotiation is pending for this order")
	}
	return nil
}

func (o *Order) requireCurrentNegotiation(negotiationID kernel.UUID) error {
	if err := negotiationID.Validate(); err != nil {
		return err
	}
	if o.currentNegotiationID == nil || !o.currentNegotiationID.IsEqual(negotiationID) {
		return o.conflict(fmt.Sprintf("negotiation %s is not the order's pending negotiation", negotiationID))
	}
	return nil
}

func (o *Order) lastDelivery() *Delivery {
	if len(o.deliveries) == 0 {
		return nil
	}
	return &o.deliveries[len(o.deliveries)-1]
}

func (o *Order) hasEvent(t EventType) bool {
	for _, e := range o.events {
		if e.Type == t {
			return true
		}
	}
	return false
}

func (o *Order) appendEvent(t EventType, at time.Time, metadata map[string]string) {
	o.events = append(o.events, Event{Type: t, OccurredAt: at, Metadata: metadata})
}

func (o *Order) conflict(reason string) error {
	return errs.NewConflictError("order", o.id.String(), o.status.String(), reason)
}

func (o *Order) conflictWithCause(reason string, cause error) error {
	return errs.NewConflictErrorWithCause("order", o.id.String(), o.status.String(), reason, cause)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setInvoiceID(invoiceID string) error {
	if invoiceID == "" {
		return errs.NewValueIsRequiredError("invoiceID")
	}
	o.invoiceID = invoiceID
	return nil
}

func (o *Order) setGig(gig GigSnapshot) error {
	if gig.id == "" {
		return errs.NewValueIsRequiredError("gig")
	}
	o.gig = gig
	return nil
}

func (o *Order) setParties(buyer, seller Party) error {
	if buyer.id == "" {
		return errs.NewValueIsRequiredError("buyer")
	}
	if seller.id == "" {
		return errs.NewValueIsRequiredError("seller")
	}
	if buyer.id == seller.id {
		return errs.NewValueIsInvalidErrorWithCause("parties are invalid",
			fmt.Errorf("buyer and seller are the same account %s", buyer.id))
	}
	o.buyer = buyer
	o.seller = seller
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if pricing.currency == "" {
		return errs.NewValueIsRequiredError("pricing")
	}
	o.pricing = pricing
	return nil
}

func (o *Order) setExpectedDeliveryDays(days int) error {
	if days <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("expectedDeliveryDays is invalid",
			fmt.Errorf("%d is not greater than 0", days))
	}
	o.expectedDeliveryDays = days
	return nil
}

func (o *Order) setMaxRevision(maxRevision *int) error {
	if maxRevision != nil && *maxRevision < 1 {
		return errs.NewValueIsInvalidErrorWithCause("maxRevision is invalid",
			fmt.Errorf("%d is not greater than 0", *maxRevision))
	}
	o.maxRevision = maxRevision
	return nil
}

func (o *Order) setOrderedAt(orderedAt time.Time) error {
	if orderedAt.IsZero() {
		return errs.NewValueIsRequiredError("orderedAt")
	}
	o.orderedAt = orderedAt
	return nil
}
