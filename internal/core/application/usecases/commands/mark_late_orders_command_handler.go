package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// MarkLateOrdersCommandHandler flags every in-progress order past its due
// date with an ORDER_OVERDUE event and notifies the seller. Orders already
// flagged are skipped by the domain's idempotent check, so a rerun of the
// sweep never duplicates events.
type MarkLateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.NotificationPublisher
}

// NewMarkLateOrdersCommandHandler creates a handler for the overdue sweep.
func NewMarkLateOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.NotificationPublisher,
) MarkLateOrdersCommandHandler {
	return MarkLateOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the overdue sweep.
func (h *MarkLateOrdersCommandHandler) Handle(ctx context.Context, cmd MarkLateOrdersCommand) error {
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

	now := time.Now().UTC()
	orderRepo := uow.OrderRepository()
	lateOrders, err := orderRepo.GetAllInProgressPastDue(ctx, now)
	if err != nil {
		return err
	}

	var flagged []int
	for i, lateOrder := range lateOrders {
		if hasOverdueEvent(lateOrder) {
			continue
		}

		if err = lateOrder.MarkOverdue(now); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, lateOrder); err != nil {
			return err
		}

		flagged = append(flagged, i)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, i := range flagged {
		notify(ctx, h.publisher, lateOrders[i], NotifyOrderOverdue, kernel.RoleSeller,
			"the order delivery is overdue", now)
	}

	return nil
}

func hasOverdueEvent(o *order.Order) bool {
	for _, event := range o.Events() {
		if event.Type == order.EventOrderOverdue {
			return true
		}
	}
	return false
}
