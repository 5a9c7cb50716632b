package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
)

// NotificationEvent is the outbound payload published when an order
// transition changes party-visible state. It is built entirely from the
// order's denormalized snapshot fields, never from re-fetched profiles.
type NotificationEvent struct {
	// Key is the routing key, e.g. "ORDER_DELIVERED".
	Key string

	OrderID   string
	InvoiceID string
	GigTitle  string

	BuyerUsername  string
	SellerUsername string

	// Recipient is the side the notification is addressed to.
	Recipient kernel.PartyRole

	Message    string
	OccurredAt time.Time
}

// NotificationPublisher publishes order events to the message bus,
// fire-and-forget. A publish failure must not fail the business operation
// that produced the event; implementations log and move on.
type NotificationPublisher interface {
	Publish(ctx context.Context, event NotificationEvent) error
}
