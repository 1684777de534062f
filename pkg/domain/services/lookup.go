package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/paddy/pkg/domain/entities"
)

// PercentForValue returns the percent of the first band containing value, or
// zero when no band matches. Bands are searched in table order, so when a
// misconfigured table has overlapping bands the first listed one wins.
func PercentForValue(bands []entities.DiscountBand, value decimal.Decimal) decimal.Decimal {
	for _, band := range bands {
		if band.Contains(value) {
			return band.Percent
		}
	}
	return decimal.Zero
}
