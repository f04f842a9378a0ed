package user

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Role controls which operations a user may perform.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAgent users create orders for customers.
	RoleAgent

	// RoleAdmin users manage orders, products, and users across the system.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleAgent: "agent",
		RoleAdmin: "admin",
	}
}

// RoleFromString parses a role name. Only "agent" and "admin" are accepted;
// this is the same constraint applied to CSV user imports.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid role, want agent or admin", s),
	)
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name used in persistence and the API.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
