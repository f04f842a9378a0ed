// Package productrepo provides data transfer objects and mapping functions for catalog persistence.
package productrepo

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting catalog products.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(255);not null"`
	PriceAmount int64     `gorm:"type:bigint;not null"`
	Shades      []string  `gorm:"type:jsonb;serializer:json"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Description: aggregate.Description(),
		Category:    aggregate.Category(),
		PriceAmount: aggregate.Price().Amount(),
		Shades:      aggregate.Shades(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceAmount)
	if err != nil {
		return nil, err
	}

	return product.NewProduct(id, dto.Name, dto.Description, dto.Category, price, dto.Shades)
}
