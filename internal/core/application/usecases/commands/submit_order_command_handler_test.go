package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubmitOrderRepository struct{ mock.Mock }

func (m *MockSubmitOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSubmitOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSubmitOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockSubmitOrderRepository) GetAllPendingOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockSubmitProductRepository struct{ mock.Mock }

func (m *MockSubmitProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockSubmitProductRepository) AddBatch(ctx context.Context, ps []*product.Product) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

func (m *MockSubmitProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockSubmitProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockSubmitUoW struct{ mock.Mock }

func (m *MockSubmitUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubmitUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubmitUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubmitUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockSubmitUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockSubmitUoWFactory struct{ mock.Mock }

func (m *MockSubmitUoWFactory) Create() commands.OrderProductUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderProductUoW)
}

type MockSubmitPublisher struct{ mock.Mock }

func (m *MockSubmitPublisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSubmitPublisher) PublishStatusChanged(
	ctx context.Context,
	orderID kernel.UUID,
	oldStatus, newStatus order.Status,
) error {
	args := m.Called(ctx, orderID, oldStatus, newStatus)
	return args.Error(0)
}

func submitTestProduct(t *testing.T, priceMinor int64, shades []string) *product.Product {
	t.Helper()

	price, err := kernel.NewMoney(priceMinor)
	require.NoError(t, err)
	p, err := product.NewProduct(
		kernel.NewUUID(),
		"Velvet Matte Lipstick",
		"Long-wearing matte finish",
		"Lips",
		price,
		shades,
	)
	require.NoError(t, err)
	return p
}

func TestSubmitOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testProduct := submitTestProduct(t, 2499, []string{"Ruby", "Coral"})

	cmd, err := commands.NewSubmitOrderCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Ana Lova",
		"kate@example.com",
		[]commands.OrderLine{{ProductID: testProduct.ID(), Quantity: 2, Shade: "Ruby"}},
		[]string{"vip"},
	)
	require.NoError(t, err)

	orderRepo := new(MockSubmitOrderRepository)
	productRepo := new(MockSubmitProductRepository)
	uow := new(MockSubmitUoW)
	publisher := new(MockSubmitPublisher)

	var added *order.Order
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("Get", ctx, testProduct.ID()).Return(testProduct, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				added = args.Get(1).(*order.Order)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher.On("PublishOrderCreated", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitOrderCommandHandler(factory, publisher)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, order.Pending, added.Status())
	assert.Equal(t, int64(4998), added.Total().Amount())
	assert.True(t, added.HasFlag("vip"))
	require.Len(t, added.Items(), 1)
	assert.Equal(t, "Velvet Matte Lipstick", added.Items()[0].Name())

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOrderCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Ana Lova",
		"kate@example.com",
		[]commands.OrderLine{{ProductID: productID, Quantity: 1}},
		nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockSubmitOrderRepository)
	productRepo := new(MockSubmitProductRepository)
	uow := new(MockSubmitUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("Get", ctx, productID).
			Return(nil, errs.NewObjectNotFoundError("product", productID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitOrderCommandHandler(factory, new(MockSubmitPublisher))

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrProductNotFound)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSubmitOrderCommandHandler_Handle_ShadeNotOffered(t *testing.T) {
	ctx := t.Context()

	testProduct := submitTestProduct(t, 1299, []string{"Ruby"})

	cmd, err := commands.NewSubmitOrderCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Ana Lova",
		"kate@example.com",
		[]commands.OrderLine{{ProductID: testProduct.ID(), Quantity: 1, Shade: "Emerald"}},
		nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockSubmitOrderRepository)
	productRepo := new(MockSubmitProductRepository)
	uow := new(MockSubmitUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("Get", ctx, testProduct.ID()).Return(testProduct, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitOrderCommandHandler(factory, new(MockSubmitPublisher))

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrShadeNotOfferedByProduct)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSubmitOrderCommandHandler_Handle_PublishFailureDoesNotFailSubmission(t *testing.T) {
	ctx := t.Context()

	testProduct := submitTestProduct(t, 2499, nil)

	cmd, err := commands.NewSubmitOrderCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Ana Lova",
		"kate@example.com",
		[]commands.OrderLine{{ProductID: testProduct.ID(), Quantity: 1}},
		nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockSubmitOrderRepository)
	productRepo := new(MockSubmitProductRepository)
	uow := new(MockSubmitUoW)
	publisher := new(MockSubmitPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	productRepo.On("Get", ctx, testProduct.ID()).Return(testProduct, nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	publisher.On("PublishOrderCreated", ctx, mock.AnythingOfType("*order.Order")).
		Return(assert.AnError).Once()

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitOrderCommandHandler(factory, publisher)

	require.NoError(t, handler.Handle(ctx, cmd))
	publisher.AssertExpectations(t)
}
