package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/payment"
	"orders/internal/core/ports"
)

// RefundOrderPaymentsCommandHandler executes the asynchronous refund job.
// Each eligible payment is refunded at the gateway with its own idempotency
// key; one payment's failure marks that payment REFUND_FAILED and moves on
// to its siblings. Partial results are committed, then an aggregate error is
// returned so the queue retries the job; already-refunded payments are
// skipped on the retry.
type RefundOrderPaymentsCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
}

// NewRefundOrderPaymentsCommandHandler creates a handler for the refund job.
func NewRefundOrderPaymentsCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
) RefundOrderPaymentsCommandHandler {
	return RefundOrderPaymentsCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the refund job for one order.
func (h *RefundOrderPaymentsCommandHandler) Handle(ctx context.Context, cmd RefundOrderPaymentsCommand) error {
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
	payments, err := paymentRepo.GetAllByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var failures []error
	for _, p := range payments {
		switch p.Status() { //nolint:exhaustive //other states are not refundable
		case payment.RefundPending:
		case payment.RefundFailed:
			// A previous run failed this payment; take another attempt.
			if err = p.BeginRefund(); err != nil {
				return err
			}
		default:
			continue
		}

		if refundErr := h.refund(ctx, p); refundErr != nil {
			failures = append(failures, fmt.Errorf("payment %s: %w", p.ID(), refundErr))
			if err = p.MarkRefundFailed(refundErr.Error()); err != nil {
				return err
			}
		}

		if err = paymentRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return errors.Join(failures...)
}

func (h *RefundOrderPaymentsCommandHandler) refund(ctx context.Context, p *payment.Payment) error {
	refundID, err := h.gateway.CreateRefund(ctx, p.GatewayTransactionID(), p.RefundIdempotencyKey())
	if err != nil {
		return err
	}

	return p.MarkRefunded(refundID, time.Now().UTC())
}
