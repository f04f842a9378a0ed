package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var (
	ErrAuthenticateUserCommandIsNotConstructed = errors.New(
		"AuthenticateUserCommand must be created via NewAuthenticateUserCommand constructor",
	)
	ErrEmailIsRequired = errors.New("email is required")
)

// AuthenticateUserCommand carries login credentials for verification.
type AuthenticateUserCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

// NewAuthenticateUserCommand creates a command to verify credentials.
func NewAuthenticateUserCommand(email, password string) (AuthenticateUserCommand, error) {
	if email == "" {
		return AuthenticateUserCommand{}, ErrEmailIsRequired
	}
	if password == "" {
		return AuthenticateUserCommand{}, ErrPasswordIsRequired
	}

	return AuthenticateUserCommand{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AuthenticateUserCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticateUserCommandIsNotConstructed)
}

// Email returns the login email address.
func (c AuthenticateUserCommand) Email() string {
	return c.email
}

// Password returns the plaintext password to verify.
func (c AuthenticateUserCommand) Password() string {
	return c.password
}
