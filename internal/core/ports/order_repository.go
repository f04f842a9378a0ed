package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It is the authoritative store addressed by order identifier; lookups have
// no side effects and a missing identifier surfaces as errs.ErrObjectNotFound.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// In normal flow only the status field changes after creation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Calling Get twice without an intervening Update returns identical values.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPendingOlderThan retrieves orders that have sat in Pending status
	// since before the given cutoff. Used by the stale-order alert job.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
