package services

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two decimal places, half away from zero. Every derived
// weight and amount goes through it at the point of derivation.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ShareOf returns round2(percent * base / 100)
func ShareOf(percent, base decimal.Decimal) decimal.Decimal {
	return Round2(percent.Mul(base).Div(hundred))
}

// ClampPercent limits a percentage to [0, 100]
func ClampPercent(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

// ClampNonNegative replaces negative values with zero
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
