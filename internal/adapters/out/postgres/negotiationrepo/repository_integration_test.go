package negotiationrepo_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/negotiationrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"
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

type NegotiationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *negotiationrepo.GormNegotiationRepository
	tracker    *MockAggregateTracker
}

func (suite *NegotiationRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&negotiationrepo.NegotiationDTO{}))
}

func (suite *NegotiationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE negotiations").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = negotiationrepo.NewGormNegotiationRepository(suite.db, suite.tracker)
}

func (suite *NegotiationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

var createdAt = time.Date(2025, 4, 2, 14, 30, 0, 0, time.UTC)

func (suite *NegotiationRepositoryIntegrationTestSuite) createNegotiation(proposal negotiation.Proposal) *negotiation.Negotiation {
	n, err := negotiation.NewNegotiation(kernel.NewUUID(), kernel.NewUUID(), proposal,
		"seller-9", kernel.RoleSeller, "life happened, need more time", createdAt)
	suite.Require().NoError(err)
	return n
}

func (suite *NegotiationRepositoryIntegrationTestSuite) TestAdd_ValidNegotiation_Success() {
	ctx := context.Background()
	proposal, err := negotiation.NewExtendDelivery(3)
	suite.Require().NoError(err)
	testNegotiation := suite.createNegotiation(proposal)
	suite.tracker.On("TrackAggregate", testNegotiation.ID(), testNegotiation).Once()

	err = suite.repository.Add(ctx, testNegotiation)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&negotiationrepo.NegotiationDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *NegotiationRepositoryIntegrationTestSuite) TestGet_ExtendDeliveryProposal_RoundTrips() {
	ctx := context.Background()
	proposal, err := negotiation.NewExtendDelivery(5)
	suite.Require().NoError(err)
	original := suite.createNegotiation(proposal)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.OrderID(), retrieved.OrderID())
	suite.Equal("seller-9", retrieved.RequesterID())
	suite.Equal(kernel.RoleSeller, retrieved.RequesterRole())
	suite.Equal(negotiation.Pending, retrieved.Status())
	suite.Equal("life happened, need more time", retrieved.Message())

	extend, ok := retrieved.Proposal().(negotiation.ExtendDelivery)
	suite.Require().True(ok)
	suite.Equal(5, extend.AdditionalDays())
}

func (suite *NegotiationRepositoryIntegrationTestSuite) TestGet_CancelOrderProposal_RoundTrips() {
	ctx := context.Background()
	proposal, err := negotiation.NewCancelOrder("project no longer needed")
	suite.Require().NoError(err)
	original := suite.createNegotiation(proposal)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	cancel, ok := retrieved.Proposal().(negotiation.CancelOrder)
	suite.Require().True(ok)
	suite.Equal("project no longer needed", cancel.Reason())
}

func (suite *NegotiationRepositoryIntegrationTestSuite) TestGet_ModifyOrderProposal_RoundTrips() {
	ctx := context.Background()
	proposal, err := negotiation.NewModifyOrder(7500, "add a second logo concept")
	suite.Require().NoError(err)
	original := suite.createNegotiation(proposal)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	modify, ok := retrieved.Proposal().(negotiation.ModifyOrder)
	suite.Require().True(ok)
	suite.Equal(int64(7500), modify.NewUnitPrice())
	suite.Equal("add a second logo concept", modify.ScopeNote())
}

func (suite *NegotiationRepositoryIntegrationTestSuite) TestGet_NonExistentNegotiation_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *NegotiationRepositoryIntegrationTestSuite) TestUpdate_PersistsResponse() {
	ctx := context.Background()
	proposal, err := negotiation.NewExtendDelivery(2)
	suite.Require().NoError(err)
	testNegotiation := suite.createNegotiation(proposal)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testNegotiation))

	respondedAt := createdAt.Add(6 * time.Hour)
	suite.Require().NoError(testNegotiation.Accept(respondedAt))
	suite.Require().NoError(suite.repository.Update(ctx, testNegotiation))

	retrieved, err := suite.repository.Get(ctx, testNegotiation.ID())
	suite.Require().NoError(err)
	suite.Equal(negotiation.Accepted, retrieved.Status())
	suite.Require().NotNil(retrieved.RespondedAt())
	suite.True(retrieved.RespondedAt().Equal(respondedAt))
}

func (suite *NegotiationRepositoryIntegrationTestSuite) TestUpdate_NonExistentNegotiation_ReturnsError() {
	ctx := context.Background()
	proposal, err := negotiation.NewExtendDelivery(1)
	suite.Require().NoError(err)
	testNegotiation := suite.createNegotiation(proposal)

	err = suite.repository.Update(ctx, testNegotiation)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestNegotiationRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(NegotiationRepositoryIntegrationTestSuite))
}
