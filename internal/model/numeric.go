package model

import "github.com/shopspring/decimal"

// RoundHalfUp is the only rounding mode the statistics use.
const RoundHalfUp = "HALF_UP"

// PercentScale is the number of fractional digits kept in share-of-volume ratios.
const PercentScale int32 = 5

// NumericPolicy is the resolved arithmetic configuration shared by every
// trading day of a ticker. It must not be mutated once handed out.
type NumericPolicy struct {
	// Scale is the number of fractional digits kept when a statistic is rounded.
	Scale int32 `yaml:"scale"`
	// Precision is the number of significant digits kept when a field is
	// parsed. Zero keeps every digit.
	Precision int `yaml:"precision"`
}

// FormatDecimal renders d keeping its exponent, so 125.00 stays "125.00"
// instead of collapsing to "125".
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.StringFixed(0)
}
