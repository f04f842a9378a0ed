package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderEventPublisher is the outbound channel for order lifecycle events.
// It replaces ad-hoc cross-client change propagation with an explicit
// publish/subscribe boundary: the orchestrator publishes, display surfaces
// subscribe through whatever transport the adapter wraps.
//
// Publishing is advisory. Implementations should log and swallow transport
// failures rather than fail the business operation that produced the event.
type OrderEventPublisher interface {
	// PublishOrderCreated announces a newly submitted order.
	PublishOrderCreated(ctx context.Context, o *order.Order) error

	// PublishStatusChanged announces a committed status transition.
	PublishStatusChanged(ctx context.Context, orderID kernel.UUID, oldStatus, newStatus order.Status) error
}
