package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary spanning the order,
// negotiation and payment repositories. Multi-aggregate state changes
// (order+negotiation, order+payment) commit atomically or not at all.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction started by Begin().
	OrderRepository() OrderRepository

	// NegotiationRepository returns a NegotiationRepository bound to the
	// current transaction started by Begin().
	NegotiationRepository() NegotiationRepository

	// PaymentRepository returns a PaymentRepository bound to the current
	// transaction started by Begin().
	PaymentRepository() PaymentRepository
}
