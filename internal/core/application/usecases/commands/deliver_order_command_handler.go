package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// DeliverOrderCommandHandler handles the seller's work delivery.
// The delivery guards run before the files are uploaded, mirroring the
// requirement-submission flow: a guard violation costs no storage traffic.
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	fileStore  ports.FileStore
	publisher  ports.NotificationPublisher
}

// NewDeliverOrderCommandHandler creates a handler for work delivery.
func NewDeliverOrderCommandHandler(
	uowFactory OrderUoWFactory,
	fileStore ports.FileStore,
	publisher ports.NotificationPublisher,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		fileStore:  fileStore,
		publisher:  publisher,
	}
}

// Handle processes the delivery command.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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

	if partyRoleOf(foundOrder, cmd.ActorID()) != kernel.RoleSeller {
		return errs.NewConflictError("order", foundOrder.ID().String(),
			foundOrder.Status().String(), "only the seller can deliver the order")
	}

	if err = foundOrder.ValidateDelivery(); err != nil {
		return err
	}

	stored, err := h.fileStore.UploadBatch(ctx, "orders/"+cmd.OrderID().String()+"/deliveries", cmd.Files())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = foundOrder.Deliver(cmd.Message(), stored, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.publisher, foundOrder, NotifyOrderDelivered, kernel.RoleBuyer,
		"your order has been delivered", now)
	return nil
}
