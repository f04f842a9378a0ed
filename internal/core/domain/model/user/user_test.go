package user_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	t.Run("parses_agent_and_admin", func(t *testing.T) {
		agent, err := user.RoleFromString("agent")
		require.NoError(t, err)
		assert.Equal(t, user.RoleAgent, agent)

		admin, err := user.RoleFromString("admin")
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, admin)
	})

	t.Run("rejects_other_values", func(t *testing.T) {
		for _, s := range []string{"", "Agent", "superuser", "customer"} {
			_, err := user.RoleFromString(s)
			require.Error(t, err, s)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestNewUser(t *testing.T) {
	t.Run("creates_user_with_hashed_password", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Alice (Agent)", "alice@example.com", user.RoleAgent, "s3cret")

		require.NoError(t, err)
		assert.Equal(t, "Alice (Agent)", u.Name())
		assert.Equal(t, user.RoleAgent, u.Role())
		assert.NotContains(t, string(u.PasswordHash()), "s3cret")
		require.NoError(t, u.Validate())
	})

	t.Run("rejects_empty_password", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Alice", "alice@example.com", user.RoleAgent, "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_invalid_email", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Alice", "not-an-address", user.RoleAgent, "s3cret")

		require.Error(t, err)
	})

	t.Run("rejects_invalid_role", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Alice", "alice@example.com", user.RoleUnknown, "s3cret")

		require.Error(t, err)
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "Bob (Admin)", "bob@example.com", user.RoleAdmin, "hunter2")
	require.NoError(t, err)

	t.Run("accepts_correct_password", func(t *testing.T) {
		require.NoError(t, u.VerifyPassword("hunter2"))
	})

	t.Run("rejects_wrong_password", func(t *testing.T) {
		err := u.VerifyPassword("hunter3")

		require.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("round_trips_through_restore", func(t *testing.T) {
		restored, err := user.RestoreUser(u.ID(), u.Name(), u.Email(), u.Role(), u.PasswordHash())
		require.NoError(t, err)

		require.NoError(t, restored.VerifyPassword("hunter2"))
		require.ErrorIs(t, restored.VerifyPassword("wrong"), user.ErrInvalidCredentials)
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("rejects_empty_hash", func(t *testing.T) {
		_, err := user.RestoreUser(kernel.NewUUID(), "Bob", "bob@example.com", user.RoleAdmin, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_user_fails_validation", func(t *testing.T) {
		var u user.User

		require.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	})
}
