package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

var (
	ErrProductNotFound          = errors.New("product not found")
	ErrShadeNotOfferedByProduct = errors.New("shade is not offered by product")
)

// SubmitOrderCommandHandler handles the business logic for order submission.
// Resolves each requested line against the catalog, snapshots the product
// name and price into the order, and persists the order in Pending status.
//
// The publisher announcement after commit is advisory: a transport failure
// never fails a submission that already committed.
type SubmitOrderCommandHandler struct {
	uowFactory OrderProductUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
// Requires an OrderProductUoWFactory for transactional persistence and an
// event publisher for the post-commit announcement.
func NewSubmitOrderCommandHandler(
	uowFactory OrderProductUoWFactory,
	publisher ports.OrderEventPublisher,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order submission command.
// Looks up every requested product, validates requested shades against the
// product's offering, and creates the order with the total fixed from the
// snapshotted prices. Returns ErrProductNotFound when a line references an
// unknown product and ErrShadeNotOfferedByProduct for an invalid shade.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	orderRepo := uow.OrderRepository()

	items := make([]order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		product, err := productRepo.Get(ctx, line.ProductID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		if line.Shade != "" && !product.HasShade(line.Shade) {
			return ErrShadeNotOfferedByProduct
		}

		item, err := order.NewItem(product.ID(), product.Name(), product.Price(), line.Quantity, line.Shade)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.AgentID(),
		cmd.AgentName(),
		cmd.CustomerEmail(),
		items,
		cmd.Flags(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderCreated(ctx, newOrder)

	return nil
}
