package commands_test

import (
	"context"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/payment"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// The handlers share one pool of hand-written mocks: three repositories, a
// unit of work satisfying every composed interface, one factory per factory
// interface, and the collaborator ports.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInProgressPastDue(ctx context.Context, before time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockNegotiationRepository struct{ mock.Mock }

func (m *MockNegotiationRepository) Add(ctx context.Context, n *negotiation.Negotiation) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNegotiationRepository) Update(ctx context.Context, n *negotiation.Negotiation) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNegotiationRepository) Get(ctx context.Context, id kernel.UUID) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByGatewayTransactionID(
	ctx context.Context,
	transactionID string,
) (*payment.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetCurrentByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetAllByOrderID(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) NegotiationRepository() ports.NegotiationRepository {
	args := m.Called()
	return args.Get(0).(ports.NegotiationRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderNegotiationUoWFactory struct{ mock.Mock }

func (m *MockOrderNegotiationUoWFactory) Create() commands.OrderNegotiationUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderNegotiationUoW)
}

type MockOrderPaymentUoWFactory struct{ mock.Mock }

func (m *MockOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderPaymentUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCatalogClient struct{ mock.Mock }

func (m *MockCatalogClient) GetGig(ctx context.Context, gigID string) (ports.Gig, error) {
	args := m.Called(ctx, gigID)
	return args.Get(0).(ports.Gig), args.Error(1)
}

func (m *MockCatalogClient) GetProfile(ctx context.Context, accountID string) (ports.Profile, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(ports.Profile), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) FindOrCreateCustomer(ctx context.Context, email, username string) (string, error) {
	args := m.Called(ctx, email, username)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreateChargeIntent(
	ctx context.Context,
	req ports.ChargeIntentRequest,
) (ports.ChargeIntent, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.ChargeIntent), args.Error(1)
}

func (m *MockPaymentGateway) CancelChargeIntent(ctx context.Context, transactionID, idempotencyKey string) error {
	args := m.Called(ctx, transactionID, idempotencyKey)
	return args.Error(0)
}

func (m *MockPaymentGateway) CreateRefund(ctx context.Context, transactionID, idempotencyKey string) (string, error) {
	args := m.Called(ctx, transactionID, idempotencyKey)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CalculateTax(ctx context.Context, amount int64, currency, country string) (int64, error) {
	args := m.Called(ctx, amount, currency, country)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentGateway) ParseWebhook(payload []byte, signature string) (ports.WebhookEvent, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(ports.WebhookEvent), args.Error(1)
}

type MockFileStore struct{ mock.Mock }

func (m *MockFileStore) UploadBatch(
	ctx context.Context,
	folder string,
	files []ports.FileUpload,
) ([]order.StoredFile, error) {
	args := m.Called(ctx, folder, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StoredFile), args.Error(1)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, event ports.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockSettlementQueue struct{ mock.Mock }

func (m *MockSettlementQueue) EnqueueRefund(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockSettlementQueue) EnqueueCancel(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
