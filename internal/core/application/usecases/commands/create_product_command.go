package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents a request to add a single product to the
// catalog. The product ID is generated here so callers can reference the
// product immediately after the handler returns.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	name        string
	description string
	category    string
	price       kernel.Money
	shades      []string

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to add a product.
// Generates a fresh product ID; name, category, and price are validated by
// the product aggregate when the handler constructs it.
func NewCreateProductCommand(
	name string,
	description string,
	category string,
	price kernel.Money,
	shades []string,
) (CreateProductCommand, error) {
	if err := price.Validate(); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
		productID:   kernel.NewUUID(),
		name:        name,
		description: description,
		category:    category,
		price:       price,
		shades:      append([]string(nil), shades...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// ProductID returns the generated identifier for the new product.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Name returns the product name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Description returns the product description.
func (c CreateProductCommand) Description() string {
	return c.description
}

// Category returns the product category.
func (c CreateProductCommand) Category() string {
	return c.category
}

// Price returns the product price.
func (c CreateProductCommand) Price() kernel.Money {
	return c.price
}

// Shades returns a copy of the product's shade labels.
func (c CreateProductCommand) Shades() []string {
	return append([]string(nil), c.shades...)
}
