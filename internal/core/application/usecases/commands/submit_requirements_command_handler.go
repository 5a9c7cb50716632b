package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// SubmitRequirementsCommandHandler handles the buyer's requirement submission.
// Validates the answers against the questionnaire before uploading any files,
// so a rejected submission never leaves stray uploads behind; a failed upload
// aborts the whole operation.
type SubmitRequirementsCommandHandler struct {
	uowFactory OrderUoWFactory
	fileStore  ports.FileStore
	publisher  ports.NotificationPublisher
}

// NewSubmitRequirementsCommandHandler creates a handler for requirement submission.
func NewSubmitRequirementsCommandHandler(
	uowFactory OrderUoWFactory,
	fileStore ports.FileStore,
	publisher ports.NotificationPublisher,
) SubmitRequirementsCommandHandler {
	return SubmitRequirementsCommandHandler{
		uowFactory: uowFactory,
		fileStore:  fileStore,
		publisher:  publisher,
	}
}

// Handle processes the requirement submission command.
func (h *SubmitRequirementsCommandHandler) Handle(ctx context.Context, cmd SubmitRequirementsCommand) error {
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

	if partyRoleOf(foundOrder, cmd.ActorID()) != kernel.RoleBuyer {
		return errs.NewConflictError("order", foundOrder.ID().String(),
			foundOrder.Status().String(), "only the buyer can submit requirements")
	}

	answers := cmd.Answers()
	drafts := make([]order.RequirementAnswer, 0, len(answers))
	for _, a := range answers {
		drafts = append(drafts, order.RequirementAnswer{
			RequirementID: a.RequirementID,
			Text:          a.Text,
			HasFile:       a.File != nil,
		})
	}

	if err = foundOrder.ValidateRequirementSubmission(drafts); err != nil {
		return err
	}

	fulfilled, err := h.uploadAnswerFiles(ctx, cmd.OrderID(), answers)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = foundOrder.FulfillRequirements(fulfilled, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, foundOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.publisher, foundOrder, NotifyOrderStarted, kernel.RoleSeller,
		"the buyer submitted the order requirements", now)
	return nil
}

// uploadAnswerFiles pushes the attached files to storage in one batch and
// folds the returned URLs back into the answers, preserving input order.
func (h *SubmitRequirementsCommandHandler) uploadAnswerFiles(
	ctx context.Context,
	orderID kernel.UUID,
	answers []RequirementAnswerInput,
) ([]order.FulfilledAnswer, error) {
	var uploads []ports.FileUpload
	var uploadIdx []int
	for i, a := range answers {
		if a.File != nil {
			uploads = append(uploads, *a.File)
			uploadIdx = append(uploadIdx, i)
		}
	}

	fulfilled := make([]order.FulfilledAnswer, len(answers))
	for i, a := range answers {
		fulfilled[i] = order.FulfilledAnswer{RequirementID: a.RequirementID, Text: a.Text}
	}

	if len(uploads) == 0 {
		return fulfilled, nil
	}

	stored, err := h.fileStore.UploadBatch(ctx, "orders/"+orderID.String()+"/requirements", uploads)
	if err != nil {
		return nil, err
	}

	for n, i := range uploadIdx {
		fulfilled[i].FileURL = stored[n].DownloadURL
	}

	return fulfilled, nil
}
