package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
)

// CancelOrderCommandHandler handles the buyer's unilateral cancellation of a
// PENDING or ACTIVE order. The order and its payments flip to their
// settlement-pending states in one transaction; the gateway work itself runs
// in the enqueued settlement jobs.
type CancelOrderCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	queue      ports.SettlementQueue
	publisher  ports.NotificationPublisher
}

// NewCancelOrderCommandHandler creates a handler for unilateral cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	queue ports.SettlementQueue,
	publisher ports.NotificationPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		queue:      queue,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	now := time.Now().UTC()
	role := partyRoleOf(foundOrder, cmd.ActorID())
	if err = foundOrder.CancelUnilaterally(role, cmd.Reason(), now); err != nil {
		return err
	}

	plan, err := beginSettlement(ctx, uow.PaymentRepository(), cmd.OrderID())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = enqueueSettlement(ctx, h.queue, cmd.OrderID(), plan); err != nil {
		return err
	}

	notify(ctx, h.publisher, foundOrder, NotifyOrderCancelled, kernel.RoleSeller,
		"the buyer cancelled the order", now)
	return nil
}
