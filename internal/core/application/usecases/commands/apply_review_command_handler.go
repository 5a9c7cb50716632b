package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// ApplyReviewCommandHandler records a review on the order's buyer or seller
// slot, depending on which side the reviewer is on. Consumed from the
// message bus, so re-delivery simply overwrites the slot with the same
// review.
type ApplyReviewCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApplyReviewCommandHandler creates a handler for review ingestion.
func NewApplyReviewCommandHandler(uowFactory OrderUoWFactory) ApplyReviewCommandHandler {
	return ApplyReviewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review command.
func (h *ApplyReviewCommandHandler) Handle(ctx context.Context, cmd ApplyReviewCommand) error {
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

	review, err := order.NewReview(cmd.Rating(), cmd.Text(), time.Now().UTC())
	if err != nil {
		return err
	}

	switch partyRoleOf(foundOrder, cmd.ActorID()) {
	case kernel.RoleBuyer:
		foundOrder.AttachBuyerReview(review)
	case kernel.RoleSeller:
		foundOrder.AttachSellerReview(review)
	default:
		return errs.NewConflictError("order", foundOrder.ID().String(),
			foundOrder.Status().String(), "account is not a party to the order")
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
