package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
	ErrAgentNameIsRequired   = errors.New("agent name is required")
	ErrLineQuantityIsInvalid = errors.New("line quantity must be greater than 0")
	ErrCustomerEmailRequired = errors.New("customer email is required")
)

// OrderLine is a single requested product within a submission. Product name
// and price are not part of the request; the handler snapshots them from the
// catalog at submission time.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
	Shade     string
}

// SubmitOrderCommand represents a request to place a new customer order.
// Carries the submitting agent's identity, the customer contact address,
// the requested lines, and optional flags such as "urgent" or "vip".
//
// Example:
//
//	orderID := kernel.NewUUID()
//	lines := []commands.OrderLine{{ProductID: lipstickID, Quantity: 2}}
//	cmd, err := NewSubmitOrderCommand(orderID, agentID, "Ana Lova", "kate@example.com", lines, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	agentID       kernel.UUID
	agentName     string
	customerEmail string
	lines         []OrderLine
	flags         []string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to place a new order.
// Validates identifiers, requires a non-empty agent name and customer email,
// and rejects empty line lists and non-positive quantities.
func NewSubmitOrderCommand(
	orderID kernel.UUID,
	agentID kernel.UUID,
	agentName string,
	customerEmail string,
	lines []OrderLine,
	flags []string,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgent(agentID, agentName),
		cmd.setCustomerEmail(customerEmail),
		cmd.setLines(lines),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	cmd.flags = append([]string(nil), flags...)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the submitting agent's identifier.
func (c SubmitOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

// AgentName returns the submitting agent's display name.
func (c SubmitOrderCommand) AgentName() string {
	return c.agentName
}

// CustomerEmail returns the customer contact address.
func (c SubmitOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Lines returns a copy of the requested order lines.
func (c SubmitOrderCommand) Lines() []OrderLine {
	return append([]OrderLine(nil), c.lines...)
}

// Flags returns a copy of the order's descriptive flags.
func (c SubmitOrderCommand) Flags() []string {
	return append([]string(nil), c.flags...)
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setAgent(agentID kernel.UUID, agentName string) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if agentName == "" {
		return ErrAgentNameIsRequired
	}

	c.agentID = agentID
	c.agentName = agentName
	return nil
}

func (c *SubmitOrderCommand) setCustomerEmail(customerEmail string) error {
	if customerEmail == "" {
		return ErrCustomerEmailRequired
	}

	c.customerEmail = customerEmail
	return nil
}

func (c *SubmitOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return ErrLineQuantityIsInvalid
		}
	}

	c.lines = append([]OrderLine(nil), lines...)
	return nil
}
