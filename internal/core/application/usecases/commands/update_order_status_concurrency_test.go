package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inMemoryOrderStore is a thread-safe order store used to observe how the
// orchestrator interleaves reads and writes under concurrent updates.
type inMemoryOrderStore struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	history []order.Status
}

func newInMemoryOrderStore() *inMemoryOrderStore {
	return &inMemoryOrderStore{
		orders: make(map[string]*order.Order),
	}
}

func (s *inMemoryOrderStore) put(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = o
}

func (s *inMemoryOrderStore) get(id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	return copyOrder(o)
}

func (s *inMemoryOrderStore) update(o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := copyOrder(o)
	if err != nil {
		return err
	}

	s.orders[o.ID().String()] = stored
	s.history = append(s.history, o.Status())
	return nil
}

func (s *inMemoryOrderStore) statusHistory() []order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]order.Status(nil), s.history...)
}

// copyOrder produces an independent aggregate so concurrent handlers never
// share mutable state through the store.
func copyOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(), o.AgentID(), o.AgentName(), o.CustomerEmail(),
		o.Items(), o.Total(), o.Status(), o.Flags(), o.CreatedAt(),
		order.SchemaVersion,
	)
}

// memoryOrderUoW adapts the in-memory store to the unit of work contract.
type memoryOrderUoW struct {
	store *inMemoryOrderStore
}

func (u *memoryOrderUoW) Begin(context.Context) error    { return nil }
func (u *memoryOrderUoW) Commit(context.Context) error   { return nil }
func (u *memoryOrderUoW) Rollback(context.Context) error { return nil }

func (u *memoryOrderUoW) OrderRepository() ports.OrderRepository {
	return &memoryOrderRepository{store: u.store}
}

type memoryOrderRepository struct {
	store *inMemoryOrderStore
}

func (r *memoryOrderRepository) Add(_ context.Context, o *order.Order) error {
	r.store.put(o)
	return nil
}

func (r *memoryOrderRepository) Update(_ context.Context, o *order.Order) error {
	return r.store.update(o)
}

func (r *memoryOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	return r.store.get(id)
}

func (r *memoryOrderRepository) GetAllPendingOlderThan(context.Context, time.Time) ([]*order.Order, error) {
	return nil, nil
}

type memoryOrderUoWFactory struct {
	store *inMemoryOrderStore
}

func (f *memoryOrderUoWFactory) Create() commands.OrderUoW {
	return &memoryOrderUoW{store: f.store}
}

// countingDrafter returns a fixed decision and counts drafting calls.
type countingDrafter struct {
	mu    sync.Mutex
	calls int
}

func (d *countingDrafter) DraftStatusUpdate(
	_ context.Context,
	_ order.StatusTransition,
) (notification.Decision, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	return notification.NoEmailDecision(), nil
}

func (d *countingDrafter) DraftNewOrderAlert(
	context.Context,
	*order.Order,
	string,
) (string, string, error) {
	return "", "", nil
}

type discardPublisher struct{}

func (discardPublisher) PublishOrderCreated(context.Context, *order.Order) error { return nil }
func (discardPublisher) PublishStatusChanged(context.Context, kernel.UUID, order.Status, order.Status) error {
	return nil
}

func TestUpdateOrderStatusCommandHandler_Handle_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := t.Context()

	store := newInMemoryOrderStore()
	testOrder := statusTestOrder(t, nil)
	store.put(testOrder)

	drafter := &countingDrafter{}
	handler := commands.NewUpdateOrderStatusCommandHandler(
		&memoryOrderUoWFactory{store: store}, drafter, discardPublisher{}, time.Second,
	)

	statuses := []order.Status{
		order.Processing, order.Shipped, order.Delivered,
		order.Processing, order.Shipped, order.Delivered,
	}

	var wg sync.WaitGroup
	for _, status := range statuses {
		wg.Add(1)
		go func(newStatus order.Status) {
			defer wg.Done()

			cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), newStatus)
			require.NoError(t, err)

			_, err = handler.Handle(ctx, cmd)
			assert.NoError(t, err)
		}(status)
	}
	wg.Wait()

	// Every update committed exactly once, none overwrote another mid-flight.
	history := store.statusHistory()
	assert.Len(t, history, len(statuses))
	assert.Equal(t, len(statuses), drafter.calls)

	// The stored order carries the status of whichever update committed last.
	final, err := store.get(testOrder.ID())
	require.NoError(t, err)
	assert.Equal(t, history[len(history)-1], final.Status())
}
