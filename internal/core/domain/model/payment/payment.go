package payment

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment instance was not
	// created through the NewPayment or RestorePayment factory methods.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")
)

// Metadata keys stamped by the settlement workflow.
const (
	metaPaidAt     = "paidAt"
	metaRefundID   = "refundId"
	metaRefundedAt = "refundedAt"
	metaCanceledAt = "canceledAt"
	metaError      = "error"
)

// Payment represents one monetary transaction at the gateway, tied to an
// order. The amount is integer cents.
type Payment struct {
	id      kernel.UUID
	orderID kernel.UUID

	provider string
	amount   int64
	currency string

	status Status

	gatewayTransactionID string
	clientSecret         string

	parentPaymentID *kernel.UUID
	metadata        map[string]string

	createdAt time.Time

	isConstructed bool
}

// NewPayment creates a pending payment for an order. The gateway transaction
// reference is attached after the charge intent is opened, with
// AttachGatewayIntent.
//
// Parameters:
//   - id: unique identifier for the payment
//   - orderID: the order this transaction settles
//   - provider: gateway identifier (e.g. "stripe")
//   - amount: charged total in cents
//   - currency: ISO currency code
//   - createdAt: creation time
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	provider string,
	amount int64,
	currency string,
	createdAt time.Time,
) (*Payment, error) {
	p := &Payment{
		status:        Pending,
		metadata:      map[string]string{},
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setProvider(provider),
		p.setAmount(amount),
		p.setCurrency(currency),
		p.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePaymentParams carries the full persisted state of a payment for
// reconstruction by the persistence adapter.
type RestorePaymentParams struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	Provider             string
	Amount               int64
	Currency             string
	Status               Status
	GatewayTransactionID string
	ClientSecret         string
	ParentPaymentID      *kernel.UUID
	Metadata             map[string]string
	CreatedAt            time.Time
}

// RestorePayment reconstructs a payment from persistence.
func RestorePayment(p RestorePaymentParams) (*Payment, error) {
	pay, err := NewPayment(p.ID, p.OrderID, p.Provider, p.Amount, p.Currency, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = p.Status.Validate(); err != nil {
		return nil, err
	}
	if p.ParentPaymentID != nil {
		if err = p.ParentPaymentID.Validate(); err != nil {
			return nil, err
		}
	}

	pay.status = p.Status
	pay.gatewayTransactionID = p.GatewayTransactionID
	pay.clientSecret = p.ClientSecret
	pay.parentPaymentID = p.ParentPaymentID
	for k, v := range p.Metadata {
		pay.metadata[k] = v
	}
	return pay, nil
}

// Validate ensures the Payment instance was properly constructed through a
// factory method.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// IsEqual compares two payments by their unique identifiers.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// OrderID returns the id of the order this transaction settles.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// Provider returns the gateway identifier.
func (p *Payment) Provider() string { return p.provider }

// Amount returns the charged total in cents.
func (p *Payment) Amount() int64 { return p.amount }

// Currency returns the ISO currency code.
func (p *Payment) Currency() string { return p.currency }

// Status returns the current status.
func (p *Payment) Status() Status { return p.status }

// GatewayTransactionID returns the gateway's charge-intent reference.
func (p *Payment) GatewayTransactionID() string { return p.gatewayTransactionID }

// ClientSecret returns the client secret or payment URL the buyer completes
// the charge with.
func (p *Payment) ClientSecret() string { return p.clientSecret }

// ParentPaymentID returns the payment this one chains from (a refund's
// original charge), or nil.
func (p *Payment) ParentPaymentID() *kernel.UUID { return p.parentPaymentID }

// CreatedAt returns the creation time.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// Metadata returns a copy of the settlement metadata.
func (p *Payment) Metadata() map[string]string {
	out := make(map[string]string, len(p.metadata))
	for k, v := range p.metadata {
		out[k] = v
	}
	return out
}

// RefundIdempotencyKey derives the idempotency key for refunding this
// payment. The key is stable across retries, so a repeated gateway call
// refunds at most once.
func (p *Payment) RefundIdempotencyKey() string {
	return fmt.Sprintf("refund_%s", p.id)
}

// CancelIdempotencyKey derives the idempotency key for cancelling this
// payment's charge intent.
func (p *Payment) CancelIdempotencyKey() string {
	return fmt.Sprintf("cancel_%s", p.id)
}

// AttachGatewayIntent stores the gateway charge-intent reference created for
// this payment. Only a pending payment without a reference can accept one.
func (p *Payment) AttachGatewayIntent(transactionID, clientSecret string) error {
	if transactionID == "" {
		return errs.NewValueIsRequiredError("gateway transaction id")
	}
	if p.status != Pending {
		return p.conflict("only a pending payment can accept a gateway intent")
	}
	if p.gatewayTransactionID != "" {
		return p.conflict("payment already has a gateway intent")
	}

	p.gatewayTransactionID = transactionID
	p.clientSecret = clientSecret
	return nil
}

// MarkPaid records the gateway's charge confirmation.
func (p *Payment) MarkPaid(now time.Time) error {
	newStatus, err := p.status.MarkPaid()
	if err != nil {
		return p.conflictWithCause("cannot mark payment paid", err)
	}

	p.status = newStatus
	p.metadata[metaPaidAt] = now.UTC().Format(time.RFC3339)
	return nil
}

// BeginRefund queues the payment for refund. Valid from Paid, and from
// RefundFailed when the settlement job retries.
func (p *Payment) BeginRefund() error {
	newStatus, err := p.status.BeginRefund()
	if err != nil {
		return p.conflictWithCause("cannot begin refund", err)
	}

	p.status = newStatus
	delete(p.metadata, metaError)
	return nil
}

// MarkRefunded records a confirmed refund with the gateway's refund
// reference.
func (p *Payment) MarkRefunded(refundID string, now time.Time) error {
	newStatus, err := p.status.MarkRefunded()
	if err != nil {
		return p.conflictWithCause("cannot mark payment refunded", err)
	}

	p.status = newStatus
	p.metadata[metaRefundID] = refundID
	p.metadata[metaRefundedAt] = now.UTC().Format(time.RFC3339)
	delete(p.metadata, metaError)
	return nil
}

// MarkRefundFailed records a rejected refund attempt. The failure reason is
// kept in the metadata for operators; the settlement job retries the payment
// by calling BeginRefund again.
func (p *Payment) MarkRefundFailed(reason string) error {
	newStatus, err := p.status.MarkRefundFailed()
	if err != nil {
		return p.conflictWithCause("cannot mark refund failed", err)
	}

	p.status = newStatus
	p.metadata[metaError] = reason
	return nil
}

// BeginCancellation queues the open charge intent for cancellation.
func (p *Payment) BeginCancellation() error {
	newStatus, err := p.status.BeginCancellation()
	if err != nil {
		return p.conflictWithCause("cannot begin cancellation", err)
	}

	p.status = newStatus
	return nil
}

// MarkCanceled records the cancelled charge intent.
func (p *Payment) MarkCanceled(now time.Time) error {
	newStatus, err := p.status.MarkCanceled()
	if err != nil {
		return p.conflictWithCause("cannot mark payment canceled", err)
	}

	p.status = newStatus
	p.metadata[metaCanceledAt] = now.UTC().Format(time.RFC3339)
	return nil
}

func (p *Payment) conflict(reason string) error {
	return errs.NewConflictError("payment", p.id.String(), p.status.String(), reason)
}

func (p *Payment) conflictWithCause(reason string, cause error) error {
	return errs.NewConflictErrorWithCause("payment", p.id.String(), p.status.String(), reason, cause)
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setProvider(provider string) error {
	if provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}
	p.provider = provider
	return nil
}

func (p *Payment) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	p.currency = currency
	return nil
}

func (p *Payment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	p.createdAt = createdAt
	return nil
}
