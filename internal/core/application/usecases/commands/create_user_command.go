package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateUserCommandIsNotConstructed = errors.New(
		"CreateUserCommand must be created via NewCreateUserCommand constructor",
	)
	ErrPasswordIsRequired = errors.New("password is required")
)

// CreateUserCommand represents a request to register a single account.
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	name     string
	email    string
	role     user.Role
	password string

	guard guard.ConstructorGuard
}

// NewCreateUserCommand creates a command to register an account.
// Requires a valid role and a non-empty password; name and email are
// validated by the user aggregate when the handler constructs it.
func NewCreateUserCommand(name, email string, role user.Role, password string) (CreateUserCommand, error) {
	if err := role.Validate(); err != nil {
		return CreateUserCommand{}, err
	}
	if password == "" {
		return CreateUserCommand{}, ErrPasswordIsRequired
	}

	return CreateUserCommand{
		userID:   kernel.NewUUID(),
		name:     name,
		email:    email,
		role:     role,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

// UserID returns the generated identifier for the new account.
func (c CreateUserCommand) UserID() kernel.UUID {
	return c.userID
}

// Name returns the account holder's display name.
func (c CreateUserCommand) Name() string {
	return c.name
}

// Email returns the account email address.
func (c CreateUserCommand) Email() string {
	return c.email
}

// Role returns the account role.
func (c CreateUserCommand) Role() user.Role {
	return c.role
}

// Password returns the initial plaintext password. It is hashed by the
// user aggregate and never persisted in the clear.
func (c CreateUserCommand) Password() string {
	return c.password
}
