package commands

import (
	"context"
	"time"
)

// EscalateDisputeCommandHandler freezes an order in DISPUTED and links the
// resolution case to the negotiation that led there. The dispute itself is
// resolved outside this system.
type EscalateDisputeCommandHandler struct {
	uowFactory OrderNegotiationUoWFactory
}

// NewEscalateDisputeCommandHandler creates a handler for dispute escalation.
func NewEscalateDisputeCommandHandler(uowFactory OrderNegotiationUoWFactory) EscalateDisputeCommandHandler {
	return EscalateDisputeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the escalation command.
func (h *EscalateDisputeCommandHandler) Handle(ctx context.Context, cmd EscalateDisputeCommand) error {
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

	negotiationRepo := uow.NegotiationRepository()
	foundNegotiation, err := negotiationRepo.Get(ctx, cmd.NegotiationID())
	if err != nil {
		return err
	}

	if err = foundOrder.EscalateDispute(cmd.CaseID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = foundNegotiation.LinkDisputeCase(cmd.CaseID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = negotiationRepo.Update(ctx, foundNegotiation); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
