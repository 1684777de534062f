package entities

import "github.com/shopspring/decimal"

// ParameterCell holds the measurement and derived penalty for one quality parameter
type ParameterCell struct {
	Percent   decimal.Decimal // observed defect percentage, [0, 100]
	Tolerance decimal.Decimal // allowance before a penalty applies, [0, 100]
	PenaltyKg decimal.Decimal // derived
}

// BonusCell is the drying/quality credit. PenaltyKg is added back to the net paddy,
// the name only mirrors ParameterCell.
type BonusCell struct {
	Tolerance decimal.Decimal
	PenaltyKg decimal.Decimal
}

// ReceptionRecord is one truckload of paddy with its weights, quality
// measurements and derived rollups. The zero value is an empty reception.
type ReceptionRecord struct {
	GrossWeight decimal.Decimal
	Tare        decimal.Decimal
	NetWeight   decimal.Decimal
	Price       decimal.Decimal

	Parameters            [ParameterCount]ParameterCell
	ToleranceGroupEnabled bool

	Bonus      BonusCell
	DryPercent decimal.Decimal // informational, never part of the totals

	// Pooled figures are kept in both modes so the two can be compared.
	GroupPercentTotal     decimal.Decimal
	GroupToleranceTotal   decimal.Decimal
	GroupPenaltyKg        decimal.Decimal
	IndependentDiscountKg decimal.Decimal

	TotalDiscountKg decimal.Decimal
	TotalPaddyNetKg decimal.Decimal
	TotalToPay      decimal.Decimal
}

// NewReceptionRecord returns an empty reception
func NewReceptionRecord() ReceptionRecord {
	return ReceptionRecord{}
}

// Cell returns a pointer to the cell for the given parameter, or nil if the
// parameter is unknown
func (r *ReceptionRecord) Cell(name ParameterName) *ParameterCell {
	if !name.Valid() {
		return nil
	}
	return &r.Parameters[name]
}

// Parameter returns a copy of the cell for the given parameter
func (r ReceptionRecord) Parameter(name ParameterName) ParameterCell {
	if !name.Valid() {
		return ParameterCell{}
	}
	return r.Parameters[name]
}
