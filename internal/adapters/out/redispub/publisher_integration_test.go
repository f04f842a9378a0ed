package redispub_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/adapters/out/redispub"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PublisherIntegrationTestSuite verifies event publishing against a real
// Redis instance using a container.
type PublisherIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	publisher *redispub.Publisher
}

func (suite *PublisherIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())

	suite.publisher = redispub.NewPublisher(suite.client, slog.Default())
}

func (suite *PublisherIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PublisherIntegrationTestSuite) subscribe(channel string) *redis.PubSub {
	ctx := context.Background()
	sub := suite.client.Subscribe(ctx, channel)

	_, err := sub.Receive(ctx)
	suite.Require().NoError(err)

	return sub
}

func (suite *PublisherIntegrationTestSuite) receive(sub *redis.PubSub) []byte {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg, err := sub.ReceiveMessage(ctx)
	suite.Require().NoError(err)

	return []byte(msg.Payload)
}

func (suite *PublisherIntegrationTestSuite) TestPublishOrderCreated() {
	ctx := context.Background()

	sub := suite.subscribe(redispub.OrderCreatedChannel)
	defer sub.Close()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.publisher.PublishOrderCreated(ctx, testOrder))

	var event struct {
		OrderID     string    `json:"orderId"`
		AgentID     string    `json:"agentId"`
		AgentName   string    `json:"agentName"`
		Status      string    `json:"status"`
		TotalAmount int64     `json:"totalAmount"`
		ItemCount   int       `json:"itemCount"`
		CreatedAt   time.Time `json:"createdAt"`
	}
	suite.Require().NoError(json.Unmarshal(suite.receive(sub), &event))

	suite.Assert().Equal(testOrder.ID().String(), event.OrderID)
	suite.Assert().Equal(testOrder.AgentID().String(), event.AgentID)
	suite.Assert().Equal("Maria Lopez", event.AgentName)
	suite.Assert().Equal(order.Pending.String(), event.Status)
	suite.Assert().Equal(testOrder.Total().Amount(), event.TotalAmount)
	suite.Assert().Equal(1, event.ItemCount)
}

func (suite *PublisherIntegrationTestSuite) TestPublishStatusChanged() {
	ctx := context.Background()

	sub := suite.subscribe(redispub.StatusChangedChannel)
	defer sub.Close()

	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.publisher.PublishStatusChanged(
		ctx, orderID, order.Pending, order.Shipped,
	))

	var event struct {
		OrderID   string `json:"orderId"`
		OldStatus string `json:"oldStatus"`
		NewStatus string `json:"newStatus"`
	}
	suite.Require().NoError(json.Unmarshal(suite.receive(sub), &event))

	suite.Assert().Equal(orderID.String(), event.OrderID)
	suite.Assert().Equal(order.Pending.String(), event.OldStatus)
	suite.Assert().Equal(order.Shipped.String(), event.NewStatus)
}

func (suite *PublisherIntegrationTestSuite) TestTransportFailureIsSwallowed() {
	ctx := context.Background()

	deadClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer deadClient.Close()

	publisher := redispub.NewPublisher(deadClient, slog.Default())

	suite.Assert().NoError(publisher.PublishStatusChanged(
		ctx, kernel.NewUUID(), order.Pending, order.Shipped,
	))
	suite.Assert().NoError(publisher.PublishOrderCreated(ctx, suite.createTestOrder()))
}

func (suite *PublisherIntegrationTestSuite) createTestOrder() *order.Order {
	price, err := kernel.NewMoney(2499)
	suite.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), "Velvet Lipstick", price, 2, "Ruby")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), "Maria Lopez", "customer@example.com",
		[]order.Item{item}, nil, time.Now().UTC(),
	)
	suite.Require().NoError(err)

	return testOrder
}

func TestPublisherIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherIntegrationTestSuite))
}
