package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusOrderRepository struct{ mock.Mock }

func (m *MockStatusOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockStatusOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockStatusOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockStatusOrderRepository) GetAllPendingOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStatusUoW struct{ mock.Mock }

func (m *MockStatusUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockStatusUoWFactory struct{ mock.Mock }

func (m *MockStatusUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStatusDrafter struct{ mock.Mock }

func (m *MockStatusDrafter) DraftStatusUpdate(
	ctx context.Context,
	transition order.StatusTransition,
) (notification.Decision, error) {
	args := m.Called(ctx, transition)
	return args.Get(0).(notification.Decision), args.Error(1)
}

func (m *MockStatusDrafter) DraftNewOrderAlert(
	ctx context.Context,
	o *order.Order,
	adminEmail string,
) (string, string, error) {
	args := m.Called(ctx, o, adminEmail)
	return args.String(0), args.String(1), args.Error(2)
}

type MockStatusPublisher struct{ mock.Mock }

func (m *MockStatusPublisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockStatusPublisher) PublishStatusChanged(
	ctx context.Context,
	orderID kernel.UUID,
	oldStatus, newStatus order.Status,
) error {
	args := m.Called(ctx, orderID, oldStatus, newStatus)
	return args.Error(0)
}

func statusTestOrder(t *testing.T, flags []string) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(2499)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Velvet Matte Lipstick", price, 2, "Ruby")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Ana Lova",
		"kate@example.com",
		[]order.Item{item},
		flags,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func statusTestDecision(t *testing.T) notification.Decision {
	t.Helper()

	decision, err := notification.NewDecision(
		true,
		notification.TemplateStatusUpdate,
		"Your order has shipped",
		"Good news! Your order is on its way.",
	)
	require.NoError(t, err)
	return decision
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := statusTestOrder(t, nil)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Shipped)
	require.NoError(t, err)

	decision := statusTestDecision(t)

	orderRepo := new(MockStatusOrderRepository)
	uow := new(MockStatusUoW)
	drafter := new(MockStatusDrafter)
	publisher := new(MockStatusPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	drafter.On("DraftStatusUpdate", mock.Anything, mock.AnythingOfType("order.StatusTransition")).
		Return(decision, nil).Once()
	publisher.On("PublishStatusChanged", ctx, testOrder.ID(), order.Pending, order.Shipped).
		Return(nil).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, drafter, publisher, time.Second)

	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.SendEmail())
	assert.Equal(t, notification.TemplateStatusUpdate, got.Template())
	assert.Equal(t, order.Shipped, testOrder.Status())

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	drafter.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_DraftingFailureRestoresStatus(t *testing.T) {
	ctx := t.Context()

	testOrder := statusTestOrder(t, nil)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Shipped)
	require.NoError(t, err)

	orderRepo := new(MockStatusOrderRepository)
	uow := new(MockStatusUoW)
	drafter := new(MockStatusDrafter)
	publisher := new(MockStatusPublisher)

	// Optimistic write, then a second transaction undoing it.
	uow.On("Begin", mock.Anything).Return(nil).Twice()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	orderRepo.On("Get", mock.Anything, testOrder.ID()).Return(testOrder, nil).Twice()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice()
	uow.On("Commit", mock.Anything).Return(nil).Twice()
	uow.On("Rollback", mock.Anything).Return(nil).Twice()

	drafter.On("DraftStatusUpdate", mock.Anything, mock.AnythingOfType("order.StatusTransition")).
		Return(notification.Decision{}, ports.ErrDraftingFailed).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, drafter, publisher, time.Second)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrDraftingFailed)
	assert.Equal(t, order.Pending, testOrder.Status())

	publisher.AssertNotCalled(t, "PublishStatusChanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	drafter.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CompensationFailure(t *testing.T) {
	ctx := t.Context()

	testOrder := statusTestOrder(t, nil)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Shipped)
	require.NoError(t, err)

	orderRepo := new(MockStatusOrderRepository)
	uow := new(MockStatusUoW)
	drafter := new(MockStatusDrafter)
	publisher := new(MockStatusPublisher)

	storageDown := errors.New("connection reset")

	uow.On("Begin", mock.Anything).Return(nil).Twice()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("Rollback", mock.Anything).Return(nil).Twice()
	orderRepo.On("Get", mock.Anything, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	// The compensating read fails, leaving the order in the new status.
	orderRepo.On("Get", mock.Anything, testOrder.ID()).Return(nil, storageDown).Once()

	drafter.On("DraftStatusUpdate", mock.Anything, mock.AnythingOfType("order.StatusTransition")).
		Return(notification.Decision{}, ports.ErrDraftingFailed).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, drafter, publisher, time.Second)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCompensationFailed)
	require.ErrorIs(t, err, storageDown)
	assert.Equal(t, order.Shipped, testOrder.Status())
}

func TestUpdateOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.Processing)
	require.NoError(t, err)

	orderRepo := new(MockStatusOrderRepository)
	uow := new(MockStatusUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(
		factory, new(MockStatusDrafter), new(MockStatusPublisher), time.Second)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotFound)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_NoOpTransitionStillDrafts(t *testing.T) {
	ctx := t.Context()

	testOrder := statusTestOrder(t, nil)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Pending)
	require.NoError(t, err)

	orderRepo := new(MockStatusOrderRepository)
	uow := new(MockStatusUoW)
	drafter := new(MockStatusDrafter)
	publisher := new(MockStatusPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	drafter.On("DraftStatusUpdate", mock.Anything, mock.MatchedBy(func(tr order.StatusTransition) bool {
		return tr.IsNoOp()
	})).Return(notification.NoEmailDecision(), nil).Once()
	publisher.On("PublishStatusChanged", ctx, testOrder.ID(), order.Pending, order.Pending).
		Return(nil).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, drafter, publisher, time.Second)

	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, got.SendEmail())
	drafter.AssertExpectations(t)
}
