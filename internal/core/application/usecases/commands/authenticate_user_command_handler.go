package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/pkg/errs"
)

// AuthenticateUserCommandHandler verifies login credentials against stored
// password hashes. An unknown email and a wrong password are reported as
// the same user.ErrInvalidCredentials, so callers cannot probe for which
// addresses have accounts.
type AuthenticateUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewAuthenticateUserCommandHandler creates a handler for credential
// verification.
func NewAuthenticateUserCommandHandler(uowFactory UserUoWFactory) AuthenticateUserCommandHandler {
	return AuthenticateUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle looks up the account by email and checks the password hash.
// Returns the verified user on success and user.ErrInvalidCredentials on
// any mismatch.
func (h AuthenticateUserCommandHandler) Handle(
	ctx context.Context,
	cmd AuthenticateUserCommand,
) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	account, err := uow.UserRepository().GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = account.VerifyPassword(cmd.Password()); err != nil {
		return nil, err
	}

	return account, nil
}
