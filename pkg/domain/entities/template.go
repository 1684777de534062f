package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountBand maps a measured reading range, inclusive on both ends, to a defect percentage
type DiscountBand struct {
	Start   decimal.Decimal
	End     decimal.Decimal
	Percent decimal.Decimal
}

// NewDiscountBand creates a validated DiscountBand
func NewDiscountBand(start, end, percent decimal.Decimal) (*DiscountBand, error) {
	if start.IsNegative() {
		return nil, fmt.Errorf("band start cannot be negative, got %s", start)
	}
	if end.LessThan(start) {
		return nil, fmt.Errorf("band end (%s) cannot be less than start (%s)", end, start)
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, fmt.Errorf("band percent must be between 0 and 100, got %s", percent)
	}

	return &DiscountBand{
		Start:   start,
		End:     end,
		Percent: percent,
	}, nil
}

// Contains reports whether value falls inside the band
func (b DiscountBand) Contains(value decimal.Decimal) bool {
	return value.GreaterThanOrEqual(b.Start) && value.LessThanOrEqual(b.End)
}

// Overlaps reports whether two bands share at least one reading
func (b DiscountBand) Overlaps(other DiscountBand) bool {
	return b.Start.LessThanOrEqual(other.End) && other.Start.LessThanOrEqual(b.End)
}

// DiscountTemplate is the configured discount schedule of a company or producer:
// reading bands and default tolerances per parameter, plus the grouped tolerance default.
type DiscountTemplate struct {
	Name                  string
	Default               bool
	GroupToleranceEnabled bool
	Bands                 [ParameterCount][]DiscountBand
	Tolerances            [ParameterCount]decimal.Decimal
}

// NewDiscountTemplate creates an empty named template
func NewDiscountTemplate(name string) (*DiscountTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("template name cannot be empty")
	}
	return &DiscountTemplate{Name: name}, nil
}

// AddBand appends a band to the parameter's table. Table order is lookup order.
func (t *DiscountTemplate) AddBand(name ParameterName, band DiscountBand) error {
	if !name.Valid() {
		return fmt.Errorf("invalid parameter: %d", int(name))
	}
	t.Bands[name] = append(t.Bands[name], band)
	return nil
}

// SetTolerance sets the default tolerance applied to the parameter
func (t *DiscountTemplate) SetTolerance(name ParameterName, tolerance decimal.Decimal) error {
	if !name.Valid() {
		return fmt.Errorf("invalid parameter: %d", int(name))
	}
	if tolerance.IsNegative() || tolerance.GreaterThan(hundred) {
		return fmt.Errorf("tolerance for %s must be between 0 and 100, got %s", name, tolerance)
	}
	t.Tolerances[name] = tolerance
	return nil
}

// BandsFor returns the parameter's band table, nil when none is configured
func (t *DiscountTemplate) BandsFor(name ParameterName) []DiscountBand {
	if t == nil || !name.Valid() {
		return nil
	}
	return t.Bands[name]
}
