package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/ports"
)

// ImportProductsCommandHandler handles bulk catalog imports from CSV.
// The importer delegate parses and validates the rows; the handler turns
// the validated records into aggregates and persists them in one
// transaction. Imports are all-or-nothing: one bad row, wherever it sits
// in the file, means nothing is written.
type ImportProductsCommandHandler struct {
	uowFactory    ProductUoWFactory
	importer      ports.RecordImporter
	importTimeout time.Duration
}

// NewImportProductsCommandHandler creates a handler for product imports.
func NewImportProductsCommandHandler(
	uowFactory ProductUoWFactory,
	importer ports.RecordImporter,
	importTimeout time.Duration,
) ImportProductsCommandHandler {
	return ImportProductsCommandHandler{
		uowFactory:    uowFactory,
		importer:      importer,
		importTimeout: importTimeout,
	}
}

// Handle parses the CSV through the importer delegate and persists every
// resulting product. Returns the number of products written; on any
// failure the count is zero and nothing is persisted.
func (h ImportProductsCommandHandler) Handle(ctx context.Context, cmd ImportProductsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	importCtx, cancel := context.WithTimeout(ctx, h.importTimeout)
	defer cancel()

	records, err := h.importer.ImportProducts(importCtx, cmd.CSVData())
	if err != nil {
		return 0, err
	}

	products := make([]*product.Product, 0, len(records))
	for _, record := range records {
		p, err := product.NewProduct(
			kernel.NewUUID(),
			record.Name,
			record.Description,
			record.Category,
			record.Price,
			record.Shades,
		)
		if err != nil {
			return 0, err
		}
		products = append(products, p)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().AddBatch(ctx, products); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(products), nil
}
