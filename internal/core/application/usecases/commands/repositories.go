// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest composition covering the aggregates
// it touches; the concrete unit of work satisfies all of them.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// NegotiationRepoFactory provides access to the negotiation repository within a transaction.
	NegotiationRepoFactory interface {
		NegotiationRepository() ports.NegotiationRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderNegotiationUoW manages transactions spanning the order and
	// negotiation aggregates. A negotiation decision always updates both
	// sides atomically.
	OrderNegotiationUoW interface {
		TxManager
		OrderRepoFactory
		NegotiationRepoFactory
	}

	// OrderNegotiationUoWFactory creates new order+negotiation unit of work instances.
	OrderNegotiationUoWFactory interface {
		Create() OrderNegotiationUoW
	}

	// OrderPaymentUoW manages transactions spanning the order and payment
	// aggregates, used by order creation, cancellation and charge
	// confirmation.
	OrderPaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// OrderPaymentUoWFactory creates new order+payment unit of work instances.
	OrderPaymentUoWFactory interface {
		Create() OrderPaymentUoW
	}

	// PaymentUoW manages transactions for payment-only operations, used by
	// the settlement jobs and refund confirmation.
	PaymentUoW interface {
		TxManager
		PaymentRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// UoW manages transactions across all three aggregates. Used by the
	// negotiation approval flow, where accepting a cancellation settles the
	// order's payments in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   negotiationRepo := uow.NegotiationRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		NegotiationRepoFactory
		PaymentRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
