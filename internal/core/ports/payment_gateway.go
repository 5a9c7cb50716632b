package ports

import "context"

// ChargeIntentRequest opens a charge intent at the gateway.
type ChargeIntentRequest struct {
	CustomerID     string
	Amount         int64
	Currency       string
	IdempotencyKey string
}

// ChargeIntent is the gateway's reference to an opened charge.
type ChargeIntent struct {
	TransactionID string
	ClientSecret  string
}

// Webhook event types the reconciliation workflow reacts to. Other event
// types are logged and ignored.
const (
	WebhookChargeSucceeded = "charge.succeeded"
	WebhookRefundSucceeded = "refund.succeeded"
)

// WebhookEvent is a verified, parsed gateway webhook. RefundID is set only
// on refund events and carries the gateway's refund reference.
type WebhookEvent struct {
	Type          string
	TransactionID string
	RefundID      string
}

// PaymentGateway is the contract with the external payment provider. All
// mutating financial calls carry a caller-supplied idempotency key, so a
// retried call has effect at most once.
type PaymentGateway interface {
	// FindOrCreateCustomer returns the gateway customer profile keyed by
	// email, creating it on first use.
	FindOrCreateCustomer(ctx context.Context, email, username string) (customerID string, err error)

	// CreateChargeIntent opens a charge intent for the given amount.
	CreateChargeIntent(ctx context.Context, req ChargeIntentRequest) (ChargeIntent, error)

	// CancelChargeIntent voids an open, uncaptured charge intent.
	CancelChargeIntent(ctx context.Context, transactionID, idempotencyKey string) error

	// CreateRefund refunds a captured charge and returns the gateway's
	// refund reference.
	CreateRefund(ctx context.Context, transactionID, idempotencyKey string) (refundID string, err error)

	// CalculateTax computes the tax for an amount charged to a buyer in the
	// given country. Amounts are cents.
	CalculateTax(ctx context.Context, amount int64, currency, country string) (int64, error)

	// ParseWebhook verifies the payload's signature and decodes the event.
	// A failed verification surfaces before any state is touched.
	ParseWebhook(payload []byte, signature string) (WebhookEvent, error)
}
