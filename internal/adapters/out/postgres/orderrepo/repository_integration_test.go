package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(flags []string) *order.Order {
	price, err := kernel.NewMoney(2499)
	suite.Require().NoError(err)
	lipstick, err := order.NewItem(kernel.NewUUID(), "Velvet Matte Lipstick", price, 2, "Ruby")
	suite.Require().NoError(err)

	serumPrice, err := kernel.NewMoney(3999)
	suite.Require().NoError(err)
	serum, err := order.NewItem(kernel.NewUUID(), "Glow Serum", serumPrice, 1, "")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Ana Lova",
		"kate@example.com",
		[]order.Item{lipstick, serum},
		flags,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(2), itemCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()

	original := suite.createTestOrder([]string{"urgent", "vip"})
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()

	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.AgentID(), retrieved.AgentID())
	suite.Equal("Ana Lova", retrieved.AgentName())
	suite.Equal("kate@example.com", retrieved.CustomerEmail())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal([]string{"urgent", "vip"}, retrieved.Flags())
	suite.Equal(int64(2*2499+3999), retrieved.Total().Amount())

	items := retrieved.Items()
	suite.Require().Len(items, 2)
	suite.Equal("Velvet Matte Lipstick", items[0].Name())
	suite.Equal("Ruby", items[0].Shade())
	suite.Equal(2, items[0].Quantity())
	suite.Equal("Glow Serum", items[1].Name())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusPersists() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	previous, err := testOrder.ChangeStatus(order.Shipped)
	suite.Require().NoError(err)
	suite.Equal(order.Pending, previous)

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, retrieved.Status())
	suite.Equal(testOrder.Total().Amount(), retrieved.Total().Amount())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	ghost := suite.createTestOrder(nil)

	err := suite.repository.Update(ctx, ghost)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPendingOlderThan() {
	ctx := context.Background()

	stale := suite.createTestOrder(nil)
	fresh := suite.createTestOrder(nil)
	shipped := suite.createTestOrder(nil)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, stale))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	_, err := shipped.ChangeStatus(order.Shipped)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, shipped))

	// Age the stale and shipped rows past the cutoff.
	agedAt := time.Now().UTC().Add(-2 * time.Hour)
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("id IN ?", []any{stale.ID().Bytes(), shipped.ID().Bytes()}).
		Update("created_at", agedAt).Error)

	cutoff := time.Now().UTC().Add(-time.Hour)
	results, err := suite.repository.GetAllPendingOlderThan(ctx, cutoff)
	suite.Require().NoError(err)

	suite.Require().Len(results, 1)
	suite.Equal(stale.ID(), results[0].ID())
	suite.Equal(order.Pending, results[0].Status())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
