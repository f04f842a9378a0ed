package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrCompensationFailed reports that the optimistic status write could
	// not be undone after a drafting failure. The order is left in the new
	// status and the failure carries both underlying causes.
	ErrCompensationFailed = errors.New("failed to restore previous order status")
)

// orderLocks serializes status updates per order ID. Updates for distinct
// orders proceed concurrently; two updates for the same order queue behind
// one another so their write-draft-compensate sequences never interleave.
type orderLocks struct {
	mu    sync.Mutex
	locks map[string]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

func newOrderLocks() *orderLocks {
	return &orderLocks{locks: make(map[string]*orderLock)}
}

func (l *orderLocks) lock(key string) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &orderLock{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *orderLocks) unlock(key string) {
	l.mu.Lock()
	entry := l.locks[key]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}

// UpdateOrderStatusCommandHandler orchestrates the status update pipeline.
// The write is optimistic: the new status is committed before the drafting
// delegate is consulted, so a reader mid-flight observes the new status.
// If drafting fails the handler compensates by writing the previous status
// back in a second transaction, restoring the pre-update state.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, drafter, publisher, 30*time.Second)
//	decision, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderNotFound):
//	    log.Println("unknown order")
//	case errors.Is(err, ports.ErrDraftingFailed):
//	    log.Println("status restored, notification not drafted")
//	case err != nil:
//	    log.Printf("update failed: %v", err)
//	default:
//	    log.Printf("send email: %v", decision.SendEmail())
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	drafter      ports.NotificationDrafter
	publisher    ports.OrderEventPublisher
	draftTimeout time.Duration
	locks        *orderLocks
}

// NewUpdateOrderStatusCommandHandler creates the status update orchestrator.
// draftTimeout bounds the drafting call; an expired deadline counts as a
// drafting failure and triggers compensation.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	drafter ports.NotificationDrafter,
	publisher ports.OrderEventPublisher,
	draftTimeout time.Duration,
) *UpdateOrderStatusCommandHandler {
	return &UpdateOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		drafter:      drafter,
		publisher:    publisher,
		draftTimeout: draftTimeout,
		locks:        newOrderLocks(),
	}
}

// Handle processes a status update end to end.
//
// The sequence is: load the order, apply and commit the new status, build a
// transition snapshot, ask the drafting delegate for a notification
// decision, and announce the change. On drafting failure the previous
// status is written back before the error is returned, so callers always
// observe either the completed pipeline or the untouched order. Updates to
// the same order are serialized; a no-op transition still runs the full
// pipeline and drafts a decision.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (notification.Decision, error) {
	if err := cmd.Validate(); err != nil {
		return notification.Decision{}, err
	}

	key := cmd.OrderID().String()
	h.locks.lock(key)
	defer h.locks.unlock(key)

	updated, transition, err := h.applyStatus(ctx, cmd)
	if err != nil {
		return notification.Decision{}, err
	}

	draftCtx, cancel := context.WithTimeout(ctx, h.draftTimeout)
	defer cancel()

	decision, err := h.drafter.DraftStatusUpdate(draftCtx, transition)
	if err != nil {
		if compErr := h.restoreStatus(ctx, cmd.OrderID(), transition.OldStatus()); compErr != nil {
			return notification.Decision{}, fmt.Errorf("%w: %w (after drafting failure: %w)",
				ErrCompensationFailed, compErr, err)
		}
		return notification.Decision{}, err
	}

	_ = h.publisher.PublishStatusChanged(ctx, updated.ID(), transition.OldStatus(), transition.NewStatus())

	return decision, nil
}

// applyStatus performs the optimistic write: it loads the order, records
// the transition snapshot, and commits the new status.
func (h *UpdateOrderStatusCommandHandler) applyStatus(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, order.StatusTransition, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.StatusTransition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, order.StatusTransition{}, ErrOrderNotFound
	}
	if err != nil {
		return nil, order.StatusTransition{}, err
	}

	transition, err := order.TransitionForOrder(aggregate, cmd.NewStatus())
	if err != nil {
		return nil, order.StatusTransition{}, err
	}

	if _, err = aggregate.ChangeStatus(cmd.NewStatus()); err != nil {
		return nil, order.StatusTransition{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, order.StatusTransition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.StatusTransition{}, err
	}

	return aggregate, transition, nil
}

// restoreStatus writes the previous status back in its own transaction.
func (h *UpdateOrderStatusCommandHandler) restoreStatus(
	ctx context.Context,
	orderID kernel.UUID,
	previous order.Status,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if _, err = aggregate.ChangeStatus(previous); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
