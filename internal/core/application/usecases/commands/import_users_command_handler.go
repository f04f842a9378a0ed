package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/core/ports"
)

// ImportUsersCommandHandler handles bulk account imports from CSV.
// Imported accounts receive a random initial password; holders reset it
// through the usual credentials flow before first login.
type ImportUsersCommandHandler struct {
	uowFactory    UserUoWFactory
	importer      ports.RecordImporter
	importTimeout time.Duration
}

// NewImportUsersCommandHandler creates a handler for account imports.
func NewImportUsersCommandHandler(
	uowFactory UserUoWFactory,
	importer ports.RecordImporter,
	importTimeout time.Duration,
) ImportUsersCommandHandler {
	return ImportUsersCommandHandler{
		uowFactory:    uowFactory,
		importer:      importer,
		importTimeout: importTimeout,
	}
}

// Handle parses the CSV through the importer delegate and persists every
// resulting account in one transaction. Returns the number of accounts
// written; on any failure the count is zero and nothing is persisted.
func (h ImportUsersCommandHandler) Handle(ctx context.Context, cmd ImportUsersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	importCtx, cancel := context.WithTimeout(ctx, h.importTimeout)
	defer cancel()

	records, err := h.importer.ImportUsers(importCtx, cmd.CSVData())
	if err != nil {
		return 0, err
	}

	users := make([]*user.User, 0, len(records))
	for _, record := range records {
		u, err := user.NewUser(
			kernel.NewUUID(),
			record.Name,
			record.Email,
			record.Role,
			kernel.NewUUID().String(),
		)
		if err != nil {
			return 0, err
		}
		users = append(users, u)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().AddBatch(ctx, users); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(users), nil
}
