package kernel

import (
	"fmt"
	"math"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when a Money instance was not created
// through one of the constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or MoneyFromFloat")

// Money is a value object representing a monetary amount in minor currency
// units (paise). Keeping amounts as integers avoids floating-point drift when
// order totals are computed from line items.
//
// The zero value of Money is invalid and must be constructed using NewMoney
// or MoneyFromFloat.
//
// Example usage:
//
//	price, err := kernel.MoneyFromFloat(24.99)
//	if err != nil {
//	    // handle error
//	}
//	lineTotal, err := price.Multiply(3)
type Money struct { //nolint:recvcheck //using for validation
	amount int64

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor units.
// The amount must not be negative.
func NewMoney(amount int64) (Money, error) {
	money := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := money.setAmount(amount); err != nil {
		return Money{}, err
	}

	return money, nil
}

// MoneyFromFloat creates a Money value from a major-unit amount, e.g. the
// numeric price column of a CSV import. The value is rounded to the nearest
// minor unit.
func MoneyFromFloat(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", fmt.Errorf("%f is not a finite number", value))
	}

	return NewMoney(int64(math.Round(value * 100)))
}

// Validate ensures the Money value was created through a constructor.
// Returns ErrMoneyIsNotConstructed for zero values.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Float64 returns the amount in major units.
func (m Money) Float64() float64 {
	return float64(m.amount) / 100
}

// Multiply returns the amount scaled by a quantity. A product outside the
// valid amount range is rejected.
func (m Money) Multiply(quantity int) (Money, error) {
	product := m.amount * int64(quantity)
	if quantity != 0 && product/int64(quantity) != m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d times %d overflows", m.amount, quantity))
	}
	return NewMoney(product)
}

// Add returns the sum of two Money values. A sum outside the valid amount
// range is rejected.
func (m Money) Add(other Money) (Money, error) {
	return NewMoney(m.amount + other.amount)
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String renders the amount in major units, e.g. "24.99".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}

func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid", fmt.Errorf("%d is negative", amount))
	}
	m.amount = amount
	return nil
}
