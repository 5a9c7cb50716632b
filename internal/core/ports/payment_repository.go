package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
type PaymentRepository interface {
	// Add persists a new payment aggregate to storage.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment aggregate.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByGatewayTransactionID retrieves the payment carrying the given
	// gateway charge-intent reference. Used by webhook handlers to locate
	// the payment a gateway event refers to.
	GetByGatewayTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error)

	// GetCurrentByOrderID retrieves the order's live payment: the single one
	// in Pending or Paid status. Returns a not-found error when the order
	// has no live payment.
	GetCurrentByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// GetAllByOrderID retrieves every payment tied to the order, oldest
	// first. Settlement jobs walk this list.
	GetAllByOrderID(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
}
