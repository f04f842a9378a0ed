// Package user implements the user aggregate and credential verification.
//
// Users are either agents, who submit orders for customers, or admins, who
// manage orders, products, and users across the system. Authentication is a
// bcrypt comparison against the stored password hash; the unguarded
// email-only lookup of earlier iterations is intentionally not supported.
package user

import (
	"errors"
	"net/mail"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserIsNotConstructed is returned when a User instance was not created
	// through the NewUser or RestoreUser factory methods.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

	ErrNameIsRequired = errors.New("user name is required")

	// ErrInvalidCredentials is returned by VerifyPassword when the supplied
	// password does not match the stored hash. Callers must not distinguish
	// this from an unknown user in responses they surface.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a member of the sales team with a role that controls which
// operations the HTTP layer permits.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	role         Role
	passwordHash []byte

	isConstructed bool
}

// NewUser creates a user with a freshly hashed password.
func NewUser(id kernel.UUID, name, email string, role Role, password string) (*User, error) {
	if password == "" {
		return nil, errs.NewValueIsRequiredError("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return RestoreUser(id, name, email, role, hash)
}

// RestoreUser reconstructs a user from persistence with an existing
// password hash.
func RestoreUser(id kernel.UUID, name, email string, role Role, passwordHash []byte) (*User, error) {
	u := &User{
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	if len(passwordHash) == 0 {
		return nil, errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = append([]byte(nil), passwordHash...)

	return u, nil
}

// Validate ensures the User was created through a factory method.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's login address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}

// PasswordHash returns the stored bcrypt hash for persistence.
// The hash never leaves the persistence boundary.
func (u *User) PasswordHash() []byte {
	return append([]byte(nil), u.passwordHash...)
}

// VerifyPassword compares a candidate password against the stored hash.
// Returns ErrInvalidCredentials on mismatch.
func (u *User) VerifyPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email is invalid", err)
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
