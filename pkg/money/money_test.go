package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Under a thousand", 999.9, "$999.90"},
		{"Exactly a thousand", 1000, "$1,000.00"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -28526.04, "$-28,526.04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.value).Format())
		})
	}
}

func TestFormatWhole(t *testing.T) {
	assert.Equal(t, "$28,526", New(28526.04).FormatWhole())
	assert.Equal(t, "$1,234,568", New(1234567.89).FormatWhole())
	assert.Equal(t, "$0", Zero().FormatWhole())
}

func TestRound(t *testing.T) {
	m := New(43739.928)
	assert.Equal(t, "43739.93", m.Round().Decimal.String())
	assert.Equal(t, "43740", m.RoundDollars().Decimal.String())

	// Rounding returns a new value; the original is untouched.
	assert.Equal(t, "43739.928", m.Decimal.String())
}

func TestPerArea(t *testing.T) {
	rate := New(28526.04).PerArea(decimal.NewFromInt(52826))
	assert.Equal(t, "0.54", rate.Round().Decimal.StringFixed(2))
}

func TestArithmetic(t *testing.T) {
	a := New(100.50)
	b := New(49.50)

	assert.Equal(t, "150.00", a.Add(b).String())
	assert.Equal(t, "51.00", a.Sub(b).String())
	assert.Equal(t, "49.50", Min(a, b).String())
	assert.Equal(t, "100.50", Max(a, b).String())
}

func TestFromString(t *testing.T) {
	m, err := FromString("28526.04")
	require.NoError(t, err)
	assert.Equal(t, "$28,526.04", m.Format())

	_, err = FromString("not-a-number")
	assert.Error(t, err)
}
