package commands

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/domain/model/negotiation"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// ApproveNegotiationCommandHandler handles the acceptance of a pending
// change request. The negotiation, the order, and (for cancellations) the
// order's payments all change in one transaction; settlement jobs are
// enqueued only after that transaction commits.
type ApproveNegotiationCommandHandler struct {
	uowFactory UoWFactory
	queue      ports.SettlementQueue
	publisher  ports.NotificationPublisher
}

// NewApproveNegotiationCommandHandler creates a handler for negotiation acceptance.
func NewApproveNegotiationCommandHandler(
	uowFactory UoWFactory,
	queue ports.SettlementQueue,
	publisher ports.NotificationPublisher,
) ApproveNegotiationCommandHandler {
	return ApproveNegotiationCommandHandler{
		uowFactory: uowFactory,
		queue:      queue,
		publisher:  publisher,
	}
}

// Handle processes the acceptance command. Only the counterparty of the
// negotiation's requester may accept.
func (h *ApproveNegotiationCommandHandler) Handle(ctx context.Context, cmd ApproveNegotiationCommand) error {
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

	foundNegotiation, err := uow.NegotiationRepository().Get(ctx, cmd.NegotiationID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	foundOrder, err := orderRepo.Get(ctx, foundNegotiation.OrderID())
	if err != nil {
		return err
	}

	responder := foundNegotiation.RequesterRole().Opposite()
	if partyRoleOf(foundOrder, cmd.ActorID()) != responder {
		return errs.NewConflictError("negotiation", foundNegotiation.ID().String(),
			foundNegotiation.Status().String(), "only the counterparty can respond to the proposal")
	}

	now := time.Now().UTC()
	if err = foundNegotiation.Accept(now); err != nil {
		return err
	}

	plan, err := h.applyProposal(ctx, uow, foundOrder, foundNegotiation, now)
	if err != nil {
		return err
	}

	if err = uow.NegotiationRepository().Update(ctx, foundNegotiation); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = enqueueSettlement(ctx, h.queue, foundOrder.ID(), plan); err != nil {
		return err
	}

	notify(ctx, h.publisher, foundOrder, NotifyNegotiationAccepted, foundNegotiation.RequesterRole(),
		"your proposal has been accepted", now)
	return nil
}

// applyProposal applies the accepted proposal's effect to the order. Only a
// cancellation produces a settlement plan.
func (h *ApproveNegotiationCommandHandler) applyProposal(
	ctx context.Context,
	uow UoW,
	foundOrder *order.Order,
	foundNegotiation *negotiation.Negotiation,
	now time.Time,
) (settlementPlan, error) {
	switch proposal := foundNegotiation.Proposal().(type) {
	case negotiation.ExtendDelivery:
		return settlementPlan{}, foundOrder.AcceptDeliveryExtension(
			foundNegotiation.ID(), proposal.AdditionalDays(), now)

	case negotiation.CancelOrder:
		cancellation, err := order.NewCancellation(foundNegotiation.RequesterRole(), proposal.Reason())
		if err != nil {
			return settlementPlan{}, err
		}

		if err = foundOrder.AcceptCancellation(foundNegotiation.ID(), cancellation, now); err != nil {
			return settlementPlan{}, err
		}

		return beginSettlement(ctx, uow.PaymentRepository(), foundOrder.ID())

	case negotiation.ModifyOrder:
		return settlementPlan{}, foundOrder.AcceptModification(
			foundNegotiation.ID(), proposal.NewUnitPrice(), now)

	default:
		return settlementPlan{}, fmt.Errorf("unsupported proposal type %q", foundNegotiation.Proposal().Type())
	}
}
