package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	ErrProductNameIsEmpty   = errors.New("product name is required")
)

// Item is a single order line. The product name and unit price are
// denormalized snapshots taken at order time, so later catalog edits never
// change what the customer was charged.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	name      string
	price     kernel.Money
	quantity  int
	shade     string

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line.
//
// Parameters:
//   - productID: identifier of the catalog product
//   - name: product name snapshot (must be non-empty)
//   - price: unit price snapshot
//   - quantity: number of units (must be positive)
//   - shade: optional shade/variant label, empty when not applicable
func NewItem(productID kernel.UUID, name string, price kernel.Money, quantity int, shade string) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setPrice(price),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.shade = shade
	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the catalog product identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name snapshot.
func (i Item) Name() string {
	return i.name
}

// Price returns the unit price snapshot.
func (i Item) Price() kernel.Money {
	return i.price
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// Shade returns the shade/variant label, or an empty string when the
// product has no shades.
func (i Item) Shade() string {
	return i.shade
}

// Total returns price multiplied by quantity.
func (i Item) Total() (kernel.Money, error) {
	return i.price.Multiply(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return ErrProductNameIsEmpty
	}
	i.name = name
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
