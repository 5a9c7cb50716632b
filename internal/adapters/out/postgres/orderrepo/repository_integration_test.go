package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

var orderedAt = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

// createTestOrder builds a pending order with one requirement.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	gig, err := order.NewGigSnapshot("gig-42", "I will design a logo", "Minimal vector logo design", "")
	suite.Require().NoError(err)
	buyer, err := order.NewParty("buyer-7", "ada", "ada@example.com", "")
	suite.Require().NoError(err)
	seller, err := order.NewParty("seller-9", "grace", "grace@example.com", "")
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(1, 5000, 400, 5400, "USD")
	suite.Require().NoError(err)
	req, err := order.NewRequirement("req-1", "Describe your brand", true, false)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), order.NewInvoiceID(orderedAt), gig, buyer, seller,
		pricing, 3, nil, []order.Requirement{req}, false, orderedAt)
	suite.Require().NoError(err)
	return o
}

// createDeliveredOrder walks a fresh order through activation, requirement
// submission and delivery, so the persisted row carries every JSONB
// collection.
func (suite *OrderRepositoryIntegrationTestSuite) createDeliveredOrder() *order.Order {
	o := suite.createTestOrder()
	suite.Require().NoError(o.Activate(orderedAt.Add(time.Minute)))

	answers := []order.FulfilledAnswer{{RequirementID: "req-1", Text: "bold and simple"}}
	suite.Require().NoError(o.FulfillRequirements(answers, orderedAt.Add(2*time.Minute)))

	files := []order.StoredFile{{
		DownloadURL: "https://files.example.com/logo.svg",
		FileName:    "logo.svg",
		FileType:    "image/svg+xml",
		FileSize:    2048,
	}}
	suite.Require().NoError(o.Deliver("first draft", files, orderedAt.Add(24*time.Hour)))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_DeliveredOrder_RoundTrips() {
	ctx := context.Background()
	original := suite.createDeliveredOrder()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.InvoiceID(), retrieved.InvoiceID())
	suite.Equal(order.Delivered, retrieved.Status())
	suite.Equal("I will design a logo", retrieved.Gig().Title())
	suite.Equal("ada", retrieved.Buyer().Username())
	suite.Equal("grace", retrieved.Seller().Username())
	suite.Equal(int64(5400), retrieved.Pricing().TotalAmount())

	suite.Require().Len(retrieved.Requirements(), 1)
	suite.Equal("bold and simple", retrieved.Requirements()[0].AnswerText())
	suite.True(retrieved.Requirements()[0].Answered())

	suite.Require().Len(retrieved.Deliveries(), 1)
	delivery := retrieved.Deliveries()[0]
	suite.Equal("first draft", delivery.Message())
	suite.Require().Len(delivery.Files(), 1)
	suite.Equal("https://files.example.com/logo.svg", delivery.Files()[0].DownloadURL)
	suite.False(delivery.IsResolved())

	// The delivery froze the clock; the frozen remainder survives the trip.
	suite.True(retrieved.Clock().IsPaused())
	suite.Equal(original.Clock().Remaining(), retrieved.Clock().Remaining())

	suite.Require().NotEmpty(retrieved.Events())
	suite.Equal(original.Events()[0].Type, retrieved.Events()[0].Type)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusChange() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Activate(orderedAt.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Active, retrieved.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInProgressPastDue_FiltersCorrectly() {
	ctx := context.Background()
	now := orderedAt.Add(10 * 24 * time.Hour)

	// Past due, clock running: should be returned.
	pastDue := suite.createDeliveredOrderless()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, pastDue))

	// In progress but delivered (clock paused): stale due date, excluded.
	paused := suite.createDeliveredOrder()
	suite.Require().NoError(suite.repository.Add(ctx, paused))

	// Still pending: excluded by status.
	pending := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	result, err := suite.repository.GetAllInProgressPastDue(ctx, now)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(pastDue.ID(), result[0].ID())
	suite.Equal(order.InProgress, result[0].Status())
}

// createDeliveredOrderless builds an in-progress order whose due date has
// passed without any delivery.
func (suite *OrderRepositoryIntegrationTestSuite) createDeliveredOrderless() *order.Order {
	o := suite.createTestOrder()
	suite.Require().NoError(o.Activate(orderedAt.Add(time.Minute)))
	answers := []order.FulfilledAnswer{{RequirementID: "req-1", Text: "bold and simple"}}
	suite.Require().NoError(o.FulfillRequirements(answers, orderedAt.Add(2*time.Minute)))
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
