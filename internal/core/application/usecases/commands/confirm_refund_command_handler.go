package commands

import (
	"context"
	"errors"
	"time"

	"orders/internal/pkg/errs"
)

// ConfirmRefundCommandHandler reconciles a "refund succeeded" webhook: the
// payment linked to the refunded charge turns REFUNDED. Events referencing
// an unknown charge or an already-refunded payment are no-ops.
type ConfirmRefundCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewConfirmRefundCommandHandler creates a handler for refund confirmation.
func NewConfirmRefundCommandHandler(uowFactory PaymentUoWFactory) ConfirmRefundCommandHandler {
	return ConfirmRefundCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refund confirmation.
func (h *ConfirmRefundCommandHandler) Handle(ctx context.Context, cmd ConfirmRefundCommand) error {
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

	if foundPayment.Status().IsSettled() {
		return nil
	}

	if err = foundPayment.MarkRefunded(cmd.RefundID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, foundPayment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
