// Package money provides an immutable monetary value type. The dues ledger
// is denominated in Indonesian rupiah, which has no minor unit in practice,
// so amounts are whole-number decimals.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IDR is the only currency this deployment bills in.
const IDR = "IDR"

// Money represents an immutable monetary amount. Fields are unexported to
// enforce immutability.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New creates a Money value from a decimal amount and currency code.
func New(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// FromRupiah creates an IDR Money value from a whole rupiah amount.
func FromRupiah(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount), currency: IDR}
}

// Zero returns a zero Money value in the given currency.
func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns the sum of m and other. Returns an error if the currencies do
// not match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MulInt returns m multiplied by a whole-number factor, for turning a weekly
// unit into a multi-week total.
func (m Money) MulInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor)), currency: m.currency}
}

// GreaterThanOrEqual reports whether m is at least other. Currencies must
// match; mismatched currencies compare false.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.currency == other.currency && m.amount.GreaterThanOrEqual(other.amount)
}

// Equal returns true if both the amount and currency of m and other are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Rupiah returns the whole-rupiah amount, truncating any fractional part.
func (m Money) Rupiah() int64 {
	return m.amount.IntPart()
}

// String formats the Money value as "<amount> <currency>", for example
// "5000 IDR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(0), m.currency)
}
