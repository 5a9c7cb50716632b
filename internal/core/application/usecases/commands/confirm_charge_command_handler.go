package commands

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/payment"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// ConfirmChargeCommandHandler reconciles a "charge succeeded" webhook: the
// matching pending payment turns PAID and the order moves PENDING -> ACTIVE
// in the same transaction. An event with no matching pending payment is a
// no-op, so gateway redeliveries never double-apply.
type ConfirmChargeCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	publisher  ports.NotificationPublisher
}

// NewConfirmChargeCommandHandler creates a handler for charge confirmation.
func NewConfirmChargeCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	publisher ports.NotificationPublisher,
) ConfirmChargeCommandHandler {
	return ConfirmChargeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the charge confirmation.
func (h *ConfirmChargeCommandHandler) Handle(ctx context.Context, cmd ConfirmChargeCommand) error {
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

	paymentRepo := uow.PaymentRepository()
	foundPayment, err := paymentRepo.GetByGatewayTransactionID(ctx, cmd.TransactionID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if foundPayment.Status() != payment.Pending {
		return nil
	}

	now := time.Now().UTC()
	if err = foundPayment.MarkPaid(now); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	foundOrder, err := orderRepo.Get(ctx, foundPayment.OrderID())
	if err != nil {
		return err
	}

	if err = foundOrder.Activate(now); err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, foundPayment); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.publisher, foundOrder, NotifyOrderPlaced, kernel.RoleSeller,
		"payment confirmed, the order has been placed", now)
	return nil
}
