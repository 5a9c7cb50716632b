package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// RequestRevisionCommandHandler handles the buyer's revision request.
// A request past the order's revision cap is rejected as a conflict.
type RequestRevisionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.NotificationPublisher
}

// NewRequestRevisionCommandHandler creates a handler for revision requests.
func NewRequestRevisionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.NotificationPublisher,
) RequestRevisionCommandHandler {
	return RequestRevisionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the revision request.
func (h *RequestRevisionCommandHandler) Handle(ctx context.Context, cmd RequestRevisionCommand) error {
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
			foundOrder.Status().String(), "only the buyer can request a revision")
	}

	now := time.Now().UTC()
	if err = foundOrder.RequestRevision(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	message := "the buyer requested a revision"
	if cmd.Message() != "" {
		message = cmd.Message()
	}
	notify(ctx, h.publisher, foundOrder, NotifyRevisionRequested, kernel.RoleSeller, message, now)
	return nil
}
