package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/payment"
	"orders/internal/core/ports"
)

// settlementPlan captures which settlement jobs must be enqueued once the
// surrounding transaction commits.
type settlementPlan struct {
	refund bool
	cancel bool
}

// beginSettlement moves every eligible payment tied to the order into its
// settlement-pending state: open charges to CANCEL_PENDING, captured charges
// and previously failed refunds to REFUND_PENDING. Settled payments are
// skipped, and payments already awaiting settlement only re-flag their job,
// so re-running the walk on a retry changes nothing.
func beginSettlement(
	ctx context.Context,
	repo ports.PaymentRepository,
	orderID kernel.UUID,
) (settlementPlan, error) {
	payments, err := repo.GetAllByOrderID(ctx, orderID)
	if err != nil {
		return settlementPlan{}, err
	}

	var plan settlementPlan
	for _, p := range payments {
		switch p.Status() { //nolint:exhaustive //settled payments fall through untouched
		case payment.Pending:
			if err = p.BeginCancellation(); err != nil {
				return settlementPlan{}, err
			}
			plan.cancel = true
		case payment.Paid, payment.RefundFailed:
			if err = p.BeginRefund(); err != nil {
				return settlementPlan{}, err
			}
			plan.refund = true
		case payment.CancelPending:
			plan.cancel = true
			continue
		case payment.RefundPending:
			plan.refund = true
			continue
		default:
			continue
		}

		if err = repo.Update(ctx, p); err != nil {
			return settlementPlan{}, err
		}
	}

	return plan, nil
}

// enqueueSettlement schedules the jobs the plan calls for. Called after
// commit: the payments are already marked pending, so a lost enqueue is
// recovered by re-running the cancellation rather than by rolling back.
func enqueueSettlement(
	ctx context.Context,
	queue ports.SettlementQueue,
	orderID kernel.UUID,
	plan settlementPlan,
) error {
	if plan.refund {
		if err := queue.EnqueueRefund(ctx, orderID); err != nil {
			return err
		}
	}

	if plan.cancel {
		if err := queue.EnqueueCancel(ctx, orderID); err != nil {
			return err
		}
	}

	return nil
}
