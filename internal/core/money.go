// Package core holds the dashboard's domain model and the balance
// reconstruction engine.
//
// Monetary values are scaled integers (cents) end to end; decimal strings
// are parsed through shopspring/decimal so binary floating point never
// touches an amount.
package core

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary amount in minor units (cents).
type Money struct {
	Cents int64
}

// Validate checks that the amount is strictly positive. Used for
// transaction amounts; reconstructed balances may of course go negative.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + n.
func (m Money) Add(n Money) Money {
	return Money{Cents: m.Cents + n.Cents}
}

// Sub returns m - n.
func (m Money) Sub(n Money) Money {
	return Money{Cents: m.Cents - n.Cents}
}

// Decimal returns the amount in major units as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Display formats the amount for presentation, e.g. "€1,234.50".
// EUR matches the currency the dashboard has always shown.
func (m Money) Display() string {
	return gomoney.New(m.Cents, gomoney.EUR).Display()
}

// ParseAmount converts a decimal string ("12.34") into cents, rounding
// half-up on the third decimal place. Rejects zero and negative values.
func ParseAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if !cents.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	if !cents.IsInteger() || cents.GreaterThan(decimal.NewFromInt(1<<62)) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}
