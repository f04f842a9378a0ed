package queries

import (
	"context"
	"encoding/json"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllProductsQueryHandler retrieves the catalog from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetAllProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllProductsQueryHandler creates a handler for catalog retrieval.
func NewGetAllProductsQueryHandler(db *gorm.DB) GetAllProductsQueryHandler {
	return GetAllProductsQueryHandler{db: db}
}

// Handle executes the query to retrieve all products sorted by name.
func (h GetAllProductsQueryHandler) Handle(
	ctx context.Context,
	query GetAllProductsQuery,
) ([]GetAllProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]GetAllProductsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			category,
			price_amount,
			shades
		FROM products
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllProductsQueryResponse
		var id uuid.UUID
		var priceAmount int64
		var shadesJSON []byte

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Description,
			&resp.Category,
			&priceAmount,
			&shadesJSON,
		)
		if err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = productID

		price, moneyErr := kernel.NewMoney(priceAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.Price = price

		if len(shadesJSON) > 0 {
			if err = json.Unmarshal(shadesJSON, &resp.Shades); err != nil {
				return nil, err
			}
		}

		products = append(products, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
