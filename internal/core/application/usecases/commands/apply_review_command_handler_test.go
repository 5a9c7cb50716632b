package commands_test

import (
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyReviewCommandHandler_Handle_AttachesBuyerReview(t *testing.T) {
	ctx := t.Context()
	testOrder := fixtureDeliveredOrder(t)
	require.NoError(t, testOrder.ApproveDelivery(fixtureTime.Add(30*time.Hour)))
	cmd, err := commands.NewApplyReviewCommand(testOrder.ID(), buyerID, 5, "great work")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyReviewCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, testOrder.BuyerReview())
	assert.Equal(t, 5, testOrder.BuyerReview().Rating())
	assert.Equal(t, "great work", testOrder.BuyerReview().Text())
	assert.Nil(t, testOrder.SellerReview())
	uow.AssertExpectations(t)
}

func TestApplyReviewCommandHandler_Handle_AttachesSellerReview(t *testing.T) {
	ctx := t.Context()
	testOrder := fixtureDeliveredOrder(t)
	cmd, err := commands.NewApplyReviewCommand(testOrder.ID(), sellerID, 4, "clear brief")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyReviewCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, testOrder.SellerReview())
	assert.Equal(t, 4, testOrder.SellerReview().Rating())
	assert.Nil(t, testOrder.BuyerReview())
}

func TestApplyReviewCommandHandler_Handle_StrangerIsRejected(t *testing.T) {
	ctx := t.Context()
	testOrder := fixtureDeliveredOrder(t)
	cmd, err := commands.NewApplyReviewCommand(testOrder.ID(), "intruder-1", 1, "bad")
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

	handler := commands.NewApplyReviewCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewApplyReviewCommand_RatingOutOfRange(t *testing.T) {
	testOrder := fixtureOrder(t, nil)

	_, err := commands.NewApplyReviewCommand(testOrder.ID(), buyerID, 6, "too good")
	require.ErrorIs(t, err, commands.ErrRatingIsOutOfRange)

	_, err = commands.NewApplyReviewCommand(testOrder.ID(), buyerID, 0, "")
	require.ErrorIs(t, err, commands.ErrRatingIsOutOfRange)
}
