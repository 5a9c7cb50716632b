package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// SettlementQueue enqueues asynchronous settlement jobs against an order's
// payments. Delivery is at-least-once with bounded retries; the job handlers
// are idempotent per payment, so a retried job never double-settles.
type SettlementQueue interface {
	// EnqueueRefund schedules a refund of the order's captured payments.
	EnqueueRefund(ctx context.Context, orderID kernel.UUID) error

	// EnqueueCancel schedules cancellation of the order's open charge
	// intents.
	EnqueueCancel(ctx context.Context, orderID kernel.UUID) error
}
