package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Spanner NUMERIC holds 29 integer digits and 9 fractional digits.
const (
	maxStorageIntegerDigits = 29
	maxStorageScale         = 9
)

// Money is an exact decimal amount. It never passes through float64, so
// totals computed by multiplication are exact.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{d: decimal.Zero}

// NewMoney parses a decimal string such as "10.00".
func NewMoney(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money value %q: %w", value, err)
	}
	return Money{d: d}, nil
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(value string) Money {
	m, err := NewMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromDecimal wraps a decimal.Decimal.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// MoneyFromRat converts a big.Rat read from a NUMERIC column. The rat must
// have a terminating decimal expansion within the storage scale.
func MoneyFromRat(r *big.Rat) (Money, error) {
	if r == nil {
		return Zero, nil
	}
	s := r.FloatString(maxStorageScale)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid numeric value %s: %w", r.String(), err)
	}
	return Money{d: d}, nil
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Rat returns the value as a big.Rat for NUMERIC columns.
func (m Money) Rat() *big.Rat { return m.d.Rat() }

// MultiplyQuantity returns m * qty without rounding.
func (m Money) MultiplyQuantity(qty int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(qty))}
}

func (m Money) IsZero() bool     { return m.d.IsZero() }
func (m Money) IsNegative() bool { return m.d.IsNegative() }
func (m Money) IsPositive() bool { return m.d.IsPositive() }

// Equals compares numerically, so 30 equals 30.00.
func (m Money) Equals(other Money) bool { return m.d.Equal(other.d) }

// IsSafeForStorage reports whether the value fits a Spanner NUMERIC column.
func (m Money) IsSafeForStorage() bool {
	if !m.d.Equal(m.d.Truncate(maxStorageScale)) {
		return false
	}
	integer := m.d.Truncate(0).Abs()
	return len(integer.String()) <= maxStorageIntegerDigits
}

// String renders the exact value, keeping the scale it was created with.
func (m Money) String() string {
	if m.d.Exponent() < 0 {
		return m.d.StringFixed(-m.d.Exponent())
	}
	return m.d.String()
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid money value: %w", err)
	}
	m.d = d
	return nil
}
