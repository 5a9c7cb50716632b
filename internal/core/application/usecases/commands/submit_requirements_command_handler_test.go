package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequirementsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testOrder := fixtureActiveOrder(t, fixtureRequirements(t))
	cmd, err := commands.NewSubmitRequirementsCommand(testOrder.ID(), buyerID, []commands.RequirementAnswerInput{
		{RequirementID: "req-1", Text: "bold and simple"},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	fileStore := new(MockFileStore)
	publisher := new(MockNotificationPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("Publish", ctx, mock.AnythingOfType("ports.NotificationEvent")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitRequirementsCommandHandler(factory, fileStore, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, testOrder.Status())
	// No file answers, so storage is never touched.
	fileStore.AssertNotCalled(t, "UploadBatch", mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitRequirementsCommandHandler_Handle_UploadsFiles(t *testing.T) {
	ctx := t.Context()

	fileReq, err := order.NewRequirement("req-2", "Upload your assets", true, true)
	require.NoError(t, err)
	testOrder := fixtureActiveOrder(t, []order.Requirement{fileReq})

	upload := ports.FileUpload{FileName: "assets.zip", ContentType: "application/zip", Data: []byte("zip")}
	cmd, err := commands.NewSubmitRequirementsCommand(testOrder.ID(), buyerID, []commands.RequirementAnswerInput{
		{RequirementID: "req-2", File: &upload},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	fileStore := new(MockFileStore)
	publisher := new(MockNotificationPublisher)

	stored := []order.StoredFile{{DownloadURL: "https://files.example.com/assets.zip", FileName: "assets.zip"}}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		fileStore.On("UploadBatch", ctx, "orders/"+testOrder.ID().String()+"/requirements",
			[]ports.FileUpload{upload}).Return(stored, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("Publish", ctx, mock.AnythingOfType("ports.NotificationEvent")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitRequirementsCommandHandler(factory, fileStore, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/assets.zip", testOrder.Requirements()[0].AnswerFile())
	fileStore.AssertExpectations(t)
}

func TestSubmitRequirementsCommandHandler_Handle_MissingAnswers(t *testing.T) {
	ctx := t.Context()
	testOrder := fixtureActiveOrder(t, fixtureRequirements(t))
	cmd, err := commands.NewSubmitRequirementsCommand(testOrder.ID(), buyerID, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	fileStore := new(MockFileStore)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitRequirementsCommandHandler(factory, fileStore, new(MockNotificationPublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrMissingRequirements)
	// Validation failed before any upload was attempted.
	fileStore.AssertNotCalled(t, "UploadBatch", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, order.Active, testOrder.Status())
}

func TestSubmitRequirementsCommandHandler_Handle_NotTheBuyer(t *testing.T) {
	ctx := t.Context()
	testOrder := fixtureActiveOrder(t, nil)
	cmd, err := commands.NewSubmitRequirementsCommand(testOrder.ID(), sellerID, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitRequirementsCommandHandler(factory, new(MockFileStore),
		new(MockNotificationPublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.Active, testOrder.Status())
}
