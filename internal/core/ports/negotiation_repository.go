package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"
)

// NegotiationRepository defines the persistence contract for negotiation
// aggregates. The at-most-one-pending-per-order invariant is owned by the
// order aggregate, which tracks its outstanding negotiation id; the
// repository only stores and retrieves.
type NegotiationRepository interface {
	// Add persists a new negotiation aggregate to storage.
	Add(ctx context.Context, aggregate *negotiation.Negotiation) error

	// Update persists changes to an existing negotiation aggregate.
	Update(ctx context.Context, aggregate *negotiation.Negotiation) error

	// Get retrieves a negotiation aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*negotiation.Negotiation, error)
}
