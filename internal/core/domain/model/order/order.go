package order

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// SchemaVersion is the current version of the persisted order layout.
// Rows carrying a different version are rejected on read instead of being
// silently reinterpreted.
const SchemaVersion = 1

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is created without line items.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")

	// ErrAgentNameIsRequired is returned when the owning agent's display name is empty.
	ErrAgentNameIsRequired = errors.New("agent name is required")
)

// Order represents a customer order in the system. It is the aggregate root
// that manages the order lifecycle from submission by an agent through status
// changes applied by admins.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a valid owning agent
//   - Must contain at least one line item
//   - Total equals the sum of each line's price x quantity at creation time
//     and is never recomputed on status changes
//   - Only the status field is mutated after creation; orders are never
//     hard-deleted in normal flow
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// agentID identifies the agent who submitted the order
	agentID kernel.UUID

	// agentName is the agent's display name snapshot
	agentName string

	// customerEmail is the contact address notifications are drafted for
	customerEmail string

	// items are the ordered lines with denormalized product snapshots
	items []Item

	// total is the fixed order total computed at creation time
	total kernel.Money

	// status is the current state in the order lifecycle
	status Status

	// flags are descriptive markers such as "urgent" or "vip"
	flags []string

	// createdAt is the submission timestamp
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status. The total is computed from
// the line items once, here, and stays fixed for the life of the order.
//
// Parameters:
//   - id: unique identifier for the order
//   - agentID: identifier of the submitting agent
//   - agentName: the agent's display name
//   - customerEmail: contact address for customer notifications
//   - items: at least one validated line item
//   - flags: optional descriptive markers ("urgent", "vip"); may be nil
//   - createdAt: submission timestamp
func NewOrder(
	id kernel.UUID,
	agentID kernel.UUID,
	agentName string,
	customerEmail string,
	items []Item,
	flags []string,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setAgent(agentID, agentName),
		order.setCustomerEmail(customerEmail),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.flags = append([]string(nil), flags...)
	order.createdAt = createdAt

	total, err := kernel.NewMoney(0)
	if err != nil {
		return nil, err
	}
	for _, item := range order.items {
		lineTotal, err := item.Total()
		if err != nil {
			return nil, err
		}
		total, err = total.Add(lineTotal)
		if err != nil {
			return nil, err
		}
	}
	order.total = total

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts the stored status and total verbatim, after validating them, so a
// restored aggregate is byte-for-byte the one that was saved.
func RestoreOrder(
	id kernel.UUID,
	agentID kernel.UUID,
	agentName string,
	customerEmail string,
	items []Item,
	total kernel.Money,
	status Status,
	flags []string,
	createdAt time.Time,
	schemaVersion int,
) (*Order, error) {
	if schemaVersion != SchemaVersion {
		return nil, errs.NewVersionIsInvalidError(
			"order schema version",
			fmt.Errorf("stored version %d, supported version %d", schemaVersion, SchemaVersion),
		)
	}

	order, err := NewOrder(id, agentID, agentName, customerEmail, items, flags, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = total.Validate(); err != nil {
		return nil, err
	}

	order.status = status
	order.total = total
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// AgentID returns the identifier of the agent who submitted the order.
func (o *Order) AgentID() kernel.UUID {
	return o.agentID
}

// AgentName returns the agent's display name snapshot.
func (o *Order) AgentName() string {
	return o.agentName
}

// CustomerEmail returns the customer contact address.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Total returns the order total fixed at creation time.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Flags returns a copy of the order's descriptive flags.
func (o *Order) Flags() []string {
	return append([]string(nil), o.flags...)
}

// HasFlag reports whether the order carries the given flag.
func (o *Order) HasFlag(flag string) bool {
	for _, f := range o.flags {
		if f == flag {
			return true
		}
	}
	return false
}

// CreatedAt returns the submission timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ChangeStatus writes a new status into the order and returns the status it
// replaced. The previous value is what a caller needs to compensate with if
// a downstream step of its own fails after the write.
//
// Setting the current status again is allowed and returns that same value;
// callers that treat no-op transitions specially must check before calling.
func (o *Order) ChangeStatus(newStatus Status) (Status, error) {
	if err := newStatus.Validate(); err != nil {
		return Unknown, err
	}

	previous := o.status
	o.status = newStatus
	return previous, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAgent(agentID kernel.UUID, agentName string) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if agentName == "" {
		return ErrAgentNameIsRequired
	}
	o.agentID = agentID
	o.agentName = agentName
	return nil
}

func (o *Order) setCustomerEmail(customerEmail string) error {
	if _, err := mail.ParseAddress(customerEmail); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer email is invalid", err)
	}
	o.customerEmail = customerEmail
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}
