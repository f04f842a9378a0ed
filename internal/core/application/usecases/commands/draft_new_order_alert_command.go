package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDraftNewOrderAlertCommandIsNotConstructed = errors.New(
	"DraftNewOrderAlertCommand must be created via NewDraftNewOrderAlertCommand constructor",
)

// DraftNewOrderAlertCommand requests an admin-facing email draft announcing
// a previously submitted order.
type DraftNewOrderAlertCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDraftNewOrderAlertCommand creates a command to draft the admin alert
// for the given order.
func NewDraftNewOrderAlertCommand(orderID kernel.UUID) (DraftNewOrderAlertCommand, error) {
	cmd := DraftNewOrderAlertCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return DraftNewOrderAlertCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DraftNewOrderAlertCommand) Validate() error {
	return c.guard.Validate(ErrDraftNewOrderAlertCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to announce.
func (c DraftNewOrderAlertCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *DraftNewOrderAlertCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
