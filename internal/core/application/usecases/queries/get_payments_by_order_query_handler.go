package queries

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPaymentsByOrderQueryHandler reads an order's payment records straight
// from the database for display alongside the order.
type GetPaymentsByOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentsByOrderQueryHandler creates a handler for payment listings.
// Requires a GORM database connection for query execution.
func NewGetPaymentsByOrderQueryHandler(db *gorm.DB) GetPaymentsByOrderQueryHandler {
	return GetPaymentsByOrderQueryHandler{db: db}
}

// Handle executes the listing query. Payments are returned in creation
// order, so refunds follow the charge they reverse.
func (h GetPaymentsByOrderQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentsByOrderQuery,
) ([]GetPaymentsByOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	payments := make([]GetPaymentsByOrderQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			provider,
			amount,
			currency,
			status,
			gateway_transaction_id,
			created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPaymentsByOrderQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.Provider,
			&resp.Amount,
			&resp.Currency,
			&status,
			&resp.GatewayTransactionID,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		paymentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = paymentID
		resp.Status = payment.Status(status)

		payments = append(payments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
