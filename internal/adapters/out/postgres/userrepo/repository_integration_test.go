package userrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/userrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/user"
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

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *userrepo.GormUserRepository
	tracker    *MockAggregateTracker
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&userrepo.UserDTO{}))
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = userrepo.NewGormUserRepository(suite.db, suite.tracker)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestAddAndGetByEmail_PasswordSurvivesRoundTrip() {
	ctx := context.Background()

	account, err := user.NewUser(
		kernel.NewUUID(), "Ana Lova", "ana@glowbeauty.example", user.RoleAgent, "s3cret-pass")
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", account.ID(), account).Once()
	suite.Require().NoError(suite.repository.Add(ctx, account))

	retrieved, err := suite.repository.GetByEmail(ctx, "ana@glowbeauty.example")
	suite.Require().NoError(err)

	suite.Equal(account.ID(), retrieved.ID())
	suite.Equal(user.RoleAgent, retrieved.Role())
	suite.NoError(retrieved.VerifyPassword("s3cret-pass"))
	suite.ErrorIs(retrieved.VerifyPassword("wrong"), user.ErrInvalidCredentials)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *UserRepositoryIntegrationTestSuite) TestGetByEmail_Unknown_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByEmail(ctx, "nobody@glowbeauty.example")

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_DuplicateEmail_Fails() {
	ctx := context.Background()

	first, err := user.NewUser(
		kernel.NewUUID(), "Ana Lova", "ana@glowbeauty.example", user.RoleAgent, "pass-one")
	suite.Require().NoError(err)
	second, err := user.NewUser(
		kernel.NewUUID(), "Another Ana", "ana@glowbeauty.example", user.RoleAdmin, "pass-two")
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	suite.Require().Error(suite.repository.Add(ctx, second))
}

func (suite *UserRepositoryIntegrationTestSuite) TestAddBatch_PersistsAllAccounts() {
	ctx := context.Background()

	agent, err := user.NewUser(
		kernel.NewUUID(), "Ana Lova", "ana@glowbeauty.example", user.RoleAgent, "pass-one")
	suite.Require().NoError(err)
	admin, err := user.NewUser(
		kernel.NewUUID(), "Kate Flow", "kate@glowbeauty.example", user.RoleAdmin, "pass-two")
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.AddBatch(ctx, []*user.User{agent, admin}))

	var count int64
	suite.Require().NoError(suite.db.Model(&userrepo.UserDTO{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
