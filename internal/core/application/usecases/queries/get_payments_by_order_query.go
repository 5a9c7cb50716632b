package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/payment"
	"orders/internal/pkg/guard"
)

var ErrGetPaymentsByOrderQueryIsNotConstructed = errors.New(
	"GetPaymentsByOrderQuery must be created via NewGetPaymentsByOrderQuery constructor",
)

// GetPaymentsByOrderQuery retrieves the full payment history of one order,
// oldest first, covering charges, refunds and cancellations.
//
// Example:
//
//	query, err := NewGetPaymentsByOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetPaymentsByOrderQueryHandler(db)
//
//	payments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list payments: %w", err)
//	}
type GetPaymentsByOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPaymentsByOrderQuery creates a query listing an order's payments.
func NewGetPaymentsByOrderQuery(orderID kernel.UUID) (GetPaymentsByOrderQuery, error) {
	q := GetPaymentsByOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setOrderID(orderID); err != nil {
		return GetPaymentsByOrderQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentsByOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentsByOrderQueryIsNotConstructed)
}

// OrderID returns the order whose payments are listed.
func (q GetPaymentsByOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetPaymentsByOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetPaymentsByOrderQueryResponse represents one payment record of an order.
// Amount is integer cents.
type GetPaymentsByOrderQueryResponse struct {
	ID                   kernel.UUID
	Provider             string
	Amount               int64
	Currency             string
	Status               payment.Status
	GatewayTransactionID string
	CreatedAt            time.Time
}
