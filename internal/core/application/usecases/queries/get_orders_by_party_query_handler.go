package queries

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersByPartyQueryHandler lists a party's orders straight from the
// database, bypassing aggregate reconstruction. Only the columns the listing
// shows are read; the JSONB collections stay untouched.
type GetOrdersByPartyQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByPartyQueryHandler creates a handler for party order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersByPartyQueryHandler(db *gorm.DB) GetOrdersByPartyQueryHandler {
	return GetOrdersByPartyQueryHandler{db: db}
}

// Handle executes the listing query. Orders are returned newest first.
func (h GetOrdersByPartyQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByPartyQuery,
) ([]GetOrdersByPartyQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partyColumn := "buyer_id"
	if query.Role() == kernel.RoleSeller {
		partyColumn = "seller_id"
	}

	sql := `
		SELECT
			id,
			invoice_id,
			gig_title,
			buyer_id,
			seller_id,
			status,
			price_total_amount,
			price_currency,
			ordered_at,
			due_date
		FROM orders
		WHERE ` + partyColumn + ` = ?`
	args := []any{query.PartyID()}

	if query.Status() != nil {
		sql += `
		AND status = ?`
		args = append(args, int(*query.Status()))
	}
	sql += `
		ORDER BY ordered_at DESC`

	orders := make([]GetOrdersByPartyQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrdersByPartyQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.InvoiceID,
			&resp.GigTitle,
			&resp.BuyerID,
			&resp.SellerID,
			&status,
			&resp.TotalAmount,
			&resp.Currency,
			&resp.OrderedAt,
			&resp.DueDate,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
