package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/payment"
	"orders/internal/core/ports"
)

// CancelOrderPaymentsCommandHandler executes the asynchronous cancel job,
// mirroring the refund job for uncaptured charges: each CANCEL_PENDING
// payment's charge intent is voided at the gateway under the payment's
// idempotency key. A failed payment stays CANCEL_PENDING and is retried by
// the queue; settled payments are skipped on retry.
type CancelOrderPaymentsCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
}

// NewCancelOrderPaymentsCommandHandler creates a handler for the cancel job.
func NewCancelOrderPaymentsCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
) CancelOrderPaymentsCommandHandler {
	return CancelOrderPaymentsCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the cancel job for one order.
func (h *CancelOrderPaymentsCommandHandler) Handle(ctx context.Context, cmd CancelOrderPaymentsCommand) error {
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
		if p.Status() != payment.CancelPending {
			continue
		}

		if cancelErr := h.cancel(ctx, p); cancelErr != nil {
			failures = append(failures, fmt.Errorf("payment %s: %w", p.ID(), cancelErr))
			continue
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

// cancel voids the payment's charge intent. A payment that never reached the
// gateway has no intent to void and is closed directly.
func (h *CancelOrderPaymentsCommandHandler) cancel(ctx context.Context, p *payment.Payment) error {
	if transactionID := p.GatewayTransactionID(); transactionID != "" {
		if err := h.gateway.CancelChargeIntent(ctx, transactionID, p.CancelIdempotencyKey()); err != nil {
			return err
		}
	}

	return p.MarkCanceled(time.Now().UTC())
}
