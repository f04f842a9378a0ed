package order

import (
	"errors"
	"net/mail"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrStatusTransitionIsNotConstructed = errors.New(
	"StatusTransition must be created via NewStatusTransition constructor",
)

// StatusTransition captures everything the notification drafting service
// needs to know about a single status change attempt. It is ephemeral: built
// fresh for each update, handed to the drafter, and discarded. It is never
// persisted.
type StatusTransition struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	oldStatus     Status
	newStatus     Status
	flags         []string
	agentName     string
	customerEmail string

	guard guard.ConstructorGuard
}

// NewStatusTransition creates a validated transition snapshot.
// Both statuses must be valid; oldStatus and newStatus may be equal, since
// the pipeline drafts a decision even for no-op transitions.
func NewStatusTransition(
	orderID kernel.UUID,
	oldStatus Status,
	newStatus Status,
	flags []string,
	agentName string,
	customerEmail string,
) (StatusTransition, error) {
	if err := errors.Join(
		orderID.Validate(),
		oldStatus.Validate(),
		newStatus.Validate(),
	); err != nil {
		return StatusTransition{}, err
	}

	if agentName == "" {
		return StatusTransition{}, ErrAgentNameIsRequired
	}
	if _, err := mail.ParseAddress(customerEmail); err != nil {
		return StatusTransition{}, errs.NewValueIsInvalidErrorWithCause("customer email is invalid", err)
	}

	return StatusTransition{
		orderID:       orderID,
		oldStatus:     oldStatus,
		newStatus:     newStatus,
		flags:         append([]string(nil), flags...),
		agentName:     agentName,
		customerEmail: customerEmail,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// TransitionForOrder builds a StatusTransition from an order's current
// fields and a target status. The order's current status becomes oldStatus.
func TransitionForOrder(o *Order, newStatus Status) (StatusTransition, error) {
	if err := o.Validate(); err != nil {
		return StatusTransition{}, err
	}
	return NewStatusTransition(o.ID(), o.Status(), newStatus, o.Flags(), o.AgentName(), o.CustomerEmail())
}

// Validate ensures the transition was created through the constructor.
func (t StatusTransition) Validate() error {
	return t.guard.Validate(ErrStatusTransitionIsNotConstructed)
}

// OrderID returns the identifier of the order being transitioned.
func (t StatusTransition) OrderID() kernel.UUID {
	return t.orderID
}

// OldStatus returns the status the order held before the attempt.
func (t StatusTransition) OldStatus() Status {
	return t.oldStatus
}

// NewStatus returns the target status of the attempt.
func (t StatusTransition) NewStatus() Status {
	return t.newStatus
}

// Flags returns a copy of the order's descriptive flags.
func (t StatusTransition) Flags() []string {
	return append([]string(nil), t.flags...)
}

// HasFlag reports whether the transition carries the given order flag.
func (t StatusTransition) HasFlag(flag string) bool {
	for _, f := range t.flags {
		if f == flag {
			return true
		}
	}
	return false
}

// AgentName returns the owning agent's display name.
func (t StatusTransition) AgentName() string {
	return t.agentName
}

// CustomerEmail returns the customer contact address.
func (t StatusTransition) CustomerEmail() string {
	return t.customerEmail
}

// IsNoOp reports whether the transition targets the status the order
// already holds.
func (t StatusTransition) IsNoOp() bool {
	return t.oldStatus == t.newStatus
}
