package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a dollar amount with financial precision. Engine code keeps
// amounts as raw decimals through accumulation; Money exists for the
// presentation boundary, where rounding is allowed.
type Money struct {
	decimal.Decimal
}

// New creates a Money from a float64.
func New(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// FromDecimal creates a Money from a decimal.Decimal.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// FromString creates a Money from a string.
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to cents using banker's rounding.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundDollars rounds to the nearest whole dollar.
func (m Money) RoundDollars() Money {
	return Money{m.Decimal.Round(0)}
}

// PerArea divides the amount by a floor area, yielding a $/sqft rate.
func (m Money) PerArea(area decimal.Decimal) Money {
	return Money{m.Decimal.Div(area)}
}

// Add adds another Money amount.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Min returns the smaller of two Money amounts.
func Min(a, b Money) Money {
	if a.Decimal.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Max returns the larger of two Money amounts.
func Max(a, b Money) Money {
	if a.Decimal.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// Zero returns a zero Money amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount fixed to cents.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format returns the amount as "$1,234,567.89".
func (m Money) Format() string {
	return "$" + groupThousands(m.Decimal.StringFixed(2))
}

// FormatWhole returns the amount as "$1,234,568", rounded to whole dollars.
func (m Money) FormatWhole() string {
	return "$" + groupThousands(m.Decimal.Round(0).StringFixed(0))
}

// groupThousands inserts comma separators into the integer part of a plain
// decimal string (optionally signed, optionally with a fraction).
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + fracPart
}
