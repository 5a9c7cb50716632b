package commands

import (
	"context"
	"time"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// RejectNegotiationCommandHandler handles the rejection of a pending change
// request. The order's frozen delivery clock resumes and a proposed
// cancellation is rolled back to the working state it interrupted.
type RejectNegotiationCommandHandler struct {
	uowFactory OrderNegotiationUoWFactory
	publisher  ports.NotificationPublisher
}

// NewRejectNegotiationCommandHandler creates a handler for negotiation rejection.
func NewRejectNegotiationCommandHandler(
	uowFactory OrderNegotiationUoWFactory,
	publisher ports.NotificationPublisher,
) RejectNegotiationCommandHandler {
	return RejectNegotiationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the rejection command. Only the counterparty of the
// negotiation's requester may reject.
func (h *RejectNegotiationCommandHandler) Handle(ctx context.Context, cmd RejectNegotiationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	negotiationRepo := uow.NegotiationRepository()
	foundNegotiation, err := negotiationRepo.Get(ctx, cmd.NegotiationID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	foundOrder, err := orderRepo.Get(ctx, foundNegotiation.OrderID())
	if err != nil {
		return err
	}

	responder := foundNegotiation.RequesterRole().Opposite()
	if partyRoleOf(foundOrder, cmd.ActorID()) != responder {
		return errs.NewConflictError("negotiation", foundNegotiation.ID().String(),
			foundNegotiation.Status().String(), "only the counterparty can respond to the proposal")
	}

	now := time.Now().UTC()
	if err = foundNegotiation.Reject(now); err != nil {
		return err
	}

	if err = foundOrder.RejectNegotiation(foundNegotiation.ID(), now); err != nil {
		return err
	}

	if err = negotiationRepo.Update(ctx, foundNegotiation); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.publisher, foundOrder, NotifyNegotiationRejected, foundNegotiation.RequesterRole(),
		"your proposal has been declined", now)
	return nil
}
