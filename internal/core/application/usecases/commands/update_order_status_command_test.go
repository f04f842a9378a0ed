package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.Delivered)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, order.Delivered, cmd.NewStatus())
	assert.NoError(t, cmd.Validate())
}

func TestNewUpdateOrderStatusCommand_InvalidInput(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Unknown)
		require.Error(t, err)
	})

	t.Run("zero order id", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.UUID{}, order.Shipped)
		require.Error(t, err)
	})
}

func TestUpdateOrderStatusCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.UpdateOrderStatusCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateOrderStatusCommandIsNotConstructed)
}
