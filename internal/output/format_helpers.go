package output

import (
	"github.com/bpsgo/compliance-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Presentation-time rounding lives here and only here; the engine never rounds
// inside accumulation.

// FormatCurrency formats a decimal as USD with cents and thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	return money.FromDecimal(amount).Format()
}

// FormatWholeCurrency formats a decimal as USD rounded to whole dollars.
func FormatWholeCurrency(amount decimal.Decimal) string {
	return money.FromDecimal(amount).FormatWhole()
}

// FormatPercentage formats a decimal as a percentage with 1 decimal.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(1) + "%"
}

// FormatEUI formats an energy-use-intensity value (kBtu/sqft/yr) with 1 decimal.
func FormatEUI(value decimal.Decimal) string {
	return value.StringFixed(1)
}

// FormatRate formats a per-area dollar rate with 2 decimals.
func FormatRate(value decimal.Decimal) string {
	return "$" + value.StringFixed(2)
}
