package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// Routing keys for outbound notifications. One event per party-visible
// transition, built from the order's denormalized snapshot.
const (
	NotifyOrderCreated        = "ORDER_CREATED"
	NotifyOrderPlaced         = "ORDER_PLACED"
	NotifyOrderStarted        = "ORDER_STARTED"
	NotifyOrderDelivered      = "ORDER_DELIVERED"
	NotifyOrderApproved       = "ORDER_APPROVED"
	NotifyRevisionRequested   = "ORDER_REVISION_REQUESTED"
	NotifyOrderCancelled      = "ORDER_CANCELLED"
	NotifyOrderOverdue        = "ORDER_OVERDUE"
	NotifyNegotiationOpened   = "NEGOTIATION_CREATED"
	NotifyNegotiationAccepted = "NEGOTIATION_ACCEPTED"
	NotifyNegotiationRejected = "NEGOTIATION_REJECTED"
)

// notify publishes a notification built from the order snapshot. Publication
// is fire-and-forget: the business operation already committed, so a bus
// failure is absorbed by the publisher, never surfaced to the caller.
func notify(
	ctx context.Context,
	publisher ports.NotificationPublisher,
	o *order.Order,
	key string,
	recipient kernel.PartyRole,
	message string,
	now time.Time,
) {
	_ = publisher.Publish(ctx, ports.NotificationEvent{
		Key:            key,
		OrderID:        o.ID().String(),
		InvoiceID:      o.InvoiceID(),
		GigTitle:       o.Gig().Title(),
		BuyerUsername:  o.Buyer().Username(),
		SellerUsername: o.Seller().Username(),
		Recipient:      recipient,
		Message:        message,
		OccurredAt:     now,
	})
}

// partyRoleOf resolves which side of the order the acting account is on.
// Returns RoleUnknown when the account is neither party.
func partyRoleOf(o *order.Order, accountID string) kernel.PartyRole {
	switch accountID {
	case o.Buyer().ID():
		return kernel.RoleBuyer
	case o.Seller().ID():
		return kernel.RoleSeller
	default:
		return kernel.RoleUnknown
	}
}
