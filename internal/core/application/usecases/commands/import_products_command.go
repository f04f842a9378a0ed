package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var (
	ErrImportProductsCommandIsNotConstructed = errors.New(
		"ImportProductsCommand must be created via NewImportProductsCommand constructor",
	)
	ErrCSVDataIsRequired = errors.New("csv data is required")
)

// ImportProductsCommand carries a raw CSV blob of catalog rows. Parsing and
// per-row validation are delegated; the command only rejects empty input.
type ImportProductsCommand struct { //nolint:recvcheck //using for validation
	csvData string

	guard guard.ConstructorGuard
}

// NewImportProductsCommand creates a command to bulk-import products.
func NewImportProductsCommand(csvData string) (ImportProductsCommand, error) {
	if csvData == "" {
		return ImportProductsCommand{}, ErrCSVDataIsRequired
	}

	return ImportProductsCommand{
		csvData: csvData,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportProductsCommand) Validate() error {
	return c.guard.Validate(ErrImportProductsCommandIsNotConstructed)
}

// CSVData returns the raw CSV payload.
func (c ImportProductsCommand) CSVData() string {
	return c.csvData
}
