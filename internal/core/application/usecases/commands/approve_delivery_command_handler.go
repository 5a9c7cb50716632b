package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// ApproveDeliveryCommandHandler handles the buyer's delivery approval.
type ApproveDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.NotificationPublisher
}

// NewApproveDeliveryCommandHandler creates a handler for delivery approval.
func NewApproveDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.NotificationPublisher,
) ApproveDeliveryCommandHandler {
	return ApproveDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the approval command.
func (h *ApproveDeliveryCommandHandler) Handle(ctx context.Context, cmd ApproveDeliveryCommand) error {
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

	if partyRoleOf(foundOrder, cmd.ActorID()) != kernel.RoleBuyer {
		return errs.NewConflictError("order", foundOrder.ID().String(),
			foundOrder.Status().String(), "only the buyer can approve the delivery")
	}

	now := time.Now().UTC()
	if err = foundOrder.ApproveDelivery(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.publisher, foundOrder, NotifyOrderApproved, kernel.RoleSeller,
		"the buyer approved your delivery", now)
	return nil
}
