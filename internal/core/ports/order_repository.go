package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInProgressPastDue retrieves in-progress orders whose due date
	// lies before the given instant. Used by the overdue detection job;
	// orders already carrying an overdue event are included and filtered by
	// the domain's idempotent check.
	GetAllInProgressPastDue(ctx context.Context, before time.Time) ([]*order.Order, error)
}
