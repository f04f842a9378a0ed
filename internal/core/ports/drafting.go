package ports

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/user"
)

var (
	// ErrDraftingFailed classifies every failure mode of the drafting
	// delegate: transport errors, timeouts, and responses that do not
	// conform to the required schema. A drafting failure during a status
	// update triggers the orchestrator's compensating rollback.
	ErrDraftingFailed = errors.New("drafting failed")

	// ErrImportValidationFailed indicates that at least one CSV row violated
	// a type or enum constraint. Imports are all-or-nothing: a single bad
	// row discards the whole batch.
	ErrImportValidationFailed = errors.New("import validation failed")
)

// NotificationDrafter is the boundary to the external text-generation
// capability that drafts email content. Implementations call a hosted
// language model and must return either a well-formed result or an error
// wrapping ErrDraftingFailed; a partially populated decision is never
// returned.
//
// Calls are network-bound and long-latency. Callers control cancellation
// through the context; a deadline expiry is reported as a drafting failure
// like any other.
type NotificationDrafter interface {
	// DraftStatusUpdate turns a status transition into a notification
	// decision: whether to email the customer, with which template, and the
	// drafted subject/body.
	DraftStatusUpdate(ctx context.Context, transition order.StatusTransition) (notification.Decision, error)

	// DraftNewOrderAlert produces the subject/body pair for the admin alert
	// sent when a new order is placed, describing order id, agent name,
	// total, and item count.
	DraftNewOrderAlert(ctx context.Context, o *order.Order, adminEmail string) (subject, body string, err error)
}

// ProductRecord is a validated row from a product CSV import.
type ProductRecord struct {
	Name        string
	Description string
	Category    string
	Price       kernel.Money
	Shades      []string
}

// UserRecord is a validated row from a user CSV import.
type UserRecord struct {
	Name  string
	Email string
	Role  user.Role
}

// RecordImporter parses uploaded CSV blobs into validated structured
// records via the same text-generation delegate. Malformed rows,
// non-numeric prices, or invalid roles fail the whole import with
// ErrImportValidationFailed; there are no partial-import semantics.
type RecordImporter interface {
	// ImportProducts parses product rows: name, description, category,
	// numeric price, comma-separated shades (possibly empty).
	ImportProducts(ctx context.Context, csvData string) ([]ProductRecord, error)

	// ImportUsers parses user rows: name, email, role (agent or admin).
	ImportUsers(ctx context.Context, csvData string) ([]UserRecord, error)
}
