package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrGetOrdersByPartyQueryIsNotConstructed = errors.New(
	"GetOrdersByPartyQuery must be created via NewGetOrdersByPartyQuery constructor",
)

// GetOrdersByPartyQuery retrieves the orders a party participates in, as
// buyer or as seller, newest first. An optional status filter narrows the
// listing to one lifecycle stage.
//
// Example:
//
//	query, err := NewGetOrdersByPartyQuery("buyer-7", kernel.RoleBuyer, nil)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrdersByPartyQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("%s %s %s\n", o.InvoiceID, o.GigTitle, o.Status)
//	}
type GetOrdersByPartyQuery struct { //nolint:recvcheck //using for validation
	partyID string
	role    kernel.PartyRole
	status  *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersByPartyQuery creates a query listing a party's orders. The role
// decides which side of the order the party id is matched against; a nil
// status means no status filter.
func NewGetOrdersByPartyQuery(partyID string, role kernel.PartyRole, status *order.Status) (GetOrdersByPartyQuery, error) {
	q := GetOrdersByPartyQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setPartyID(partyID),
		q.setRole(role),
		q.setStatus(status),
	); err != nil {
		return GetOrdersByPartyQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByPartyQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByPartyQueryIsNotConstructed)
}

// PartyID returns the account identifier whose orders are listed.
func (q GetOrdersByPartyQuery) PartyID() string {
	return q.partyID
}

// Role returns the side of the order the party is matched against.
func (q GetOrdersByPartyQuery) Role() kernel.PartyRole {
	return q.role
}

// Status returns the optional status filter, nil when absent.
func (q GetOrdersByPartyQuery) Status() *order.Status {
	return q.status
}

func (q *GetOrdersByPartyQuery) setPartyID(partyID string) error {
	if partyID == "" {
		return errs.NewValueIsRequiredError("partyId")
	}

	q.partyID = partyID
	return nil
}

func (q *GetOrdersByPartyQuery) setRole(role kernel.PartyRole) error {
	if err := role.Validate(); err != nil {
		return err
	}

	q.role = role
	return nil
}

func (q *GetOrdersByPartyQuery) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}

	q.status = status
	return nil
}

// GetOrdersByPartyQueryResponse represents one row of a party's order
// listing. Amounts are integer cents.
type GetOrdersByPartyQueryResponse struct {
	ID          kernel.UUID
	InvoiceID   string
	GigTitle    string
	BuyerID     string
	SellerID    string
	Status      order.Status
	TotalAmount int64
	Currency    string
	OrderedAt   time.Time
	DueDate     time.Time
}
