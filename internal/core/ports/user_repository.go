package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add persists a new user.
	Add(ctx context.Context, aggregate *user.User) error

	// AddBatch persists several users at once, e.g. the result of a CSV
	// import. Atomic within the enclosing unit of work.
	AddBatch(ctx context.Context, aggregates []*user.User) error

	// Get retrieves a user by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves a user by login address. Credential verification
	// starts here; a missing address surfaces as errs.ErrObjectNotFound.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
