package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrImportUsersCommandIsNotConstructed = errors.New(
	"ImportUsersCommand must be created via NewImportUsersCommand constructor",
)

// ImportUsersCommand carries a raw CSV blob of account rows.
type ImportUsersCommand struct { //nolint:recvcheck //using for validation
	csvData string

	guard guard.ConstructorGuard
}

// NewImportUsersCommand creates a command to bulk-import accounts.
func NewImportUsersCommand(csvData string) (ImportUsersCommand, error) {
	if csvData == "" {
		return ImportUsersCommand{}, ErrCSVDataIsRequired
	}

	return ImportUsersCommand{
		csvData: csvData,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportUsersCommand) Validate() error {
	return c.guard.Validate(ErrImportUsersCommandIsNotConstructed)
}

// CSVData returns the raw CSV payload.
func (c ImportUsersCommand) CSVData() string {
	return c.csvData
}
