package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// CreateNegotiationCommandHandler handles the opening of a change request
// against an order. The negotiation record and the order's pending-negotiation
// marker are written in one transaction; a second pending negotiation for the
// same order is rejected inside that transaction as a conflict.
type CreateNegotiationCommandHandler struct {
	uowFactory OrderNegotiationUoWFactory
	publisher  ports.NotificationPublisher
}

// NewCreateNegotiationCommandHandler creates a handler for opening negotiations.
func NewCreateNegotiationCommandHandler(
	uowFactory OrderNegotiationUoWFactory,
	publisher ports.NotificationPublisher,
) CreateNegotiationCommandHandler {
	return CreateNegotiationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the negotiation creation command.
func (h *CreateNegotiationCommandHandler) Handle(ctx context.Context, cmd CreateNegotiationCommand) error {
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

	orderRepo := uow.OrderRepository()
	foundOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	role := partyRoleOf(foundOrder, cmd.ActorID())
	if role == kernel.RoleUnknown {
		return errs.NewConflictError("order", foundOrder.ID().String(),
			foundOrder.Status().String(), "account is not a party to the order")
	}

	now := time.Now().UTC()
	proposesCancellation := cmd.Proposal().Type() == negotiation.TypeCancelOrder
	if err = foundOrder.BeginNegotiation(cmd.NegotiationID(), proposesCancellation, now); err != nil {
		return err
	}

	newNegotiation, err := negotiation.NewNegotiation(
		cmd.NegotiationID(),
		cmd.OrderID(),
		cmd.Proposal(),
		cmd.ActorID(),
		role,
		cmd.Message(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.NegotiationRepository().Add(ctx, newNegotiation); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.publisher, foundOrder, NotifyNegotiationOpened, role.Opposite(),
		"a change to the order has been proposed", now)
	return nil
}
