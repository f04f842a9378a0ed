// Package product implements the catalog product aggregate.
// Products carry the price and shade list that order lines snapshot at
// submission time; editing a product never changes existing orders.
package product

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	ErrNameIsRequired     = errors.New("product name is required")
	ErrCategoryIsRequired = errors.New("product category is required")
)

// Product is a catalog entry: name, description, category, unit price, and
// the list of available shades (empty for shadeless products such as
// mascara or primer).
type Product struct {
	id          kernel.UUID
	name        string
	description string
	category    string
	price       kernel.Money
	shades      []string

	isConstructed bool
}

// NewProduct creates a validated catalog product.
// Description may be empty; shades may be nil for products without variants.
func NewProduct(
	id kernel.UUID,
	name string,
	description string,
	category string,
	price kernel.Money,
	shades []string,
) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setCategory(category),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	p.description = description
	p.shades = append([]string(nil), shades...)
	return p, nil
}

// Validate ensures the Product was created through NewProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Description returns the product description.
func (p *Product) Description() string {
	return p.description
}

// Category returns the product category, e.g. "Lipstick" or "Foundation".
func (p *Product) Category() string {
	return p.category
}

// Price returns the current unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Shades returns a copy of the available shade labels.
func (p *Product) Shades() []string {
	return append([]string(nil), p.shades...)
}

// HasShade reports whether the given shade is offered for this product.
func (p *Product) HasShade(shade string) bool {
	for _, s := range p.shades {
		if s == shade {
			return true
		}
	}
	return false
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setCategory(category string) error {
	if category == "" {
		return ErrCategoryIsRequired
	}
	p.category = category
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}
