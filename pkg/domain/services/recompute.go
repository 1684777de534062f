package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/paddy/pkg/domain/entities"
)

// Recompute derives every calculated field of a reception from its inputs and
// returns the updated copy. Stages run in a fixed order and each consumes only
// the rounded outputs of the stages before it:
//
//  1. net weight
//  2. per-parameter penalties and the grouped tolerance pool
//  3. total discount
//  4. bonus credit
//  5. net paddy
//  6. total to pay
//
// Recompute does not clamp inputs; use Normalize on records that did not come
// through the clamping setters.
func Recompute(record entities.ReceptionRecord) entities.ReceptionRecord {
	r := record

	r.NetWeight = NetWeight(r.GrossWeight, r.Tare)
	applyPenalties(&r)

	r.Bonus.PenaltyKg = ShareOf(r.Bonus.Tolerance, r.NetWeight)

	// Discounts larger than the lot would otherwise produce a negative payable weight.
	r.TotalPaddyNetKg = ClampNonNegative(Round2(r.NetWeight.Sub(r.TotalDiscountKg).Add(r.Bonus.PenaltyKg)))
	r.TotalToPay = Round2(r.TotalPaddyNetKg.Mul(r.Price))

	return r
}

// NetWeight returns max(0, gross - tare)
func NetWeight(gross, tare decimal.Decimal) decimal.Decimal {
	return ClampNonNegative(gross.Sub(tare))
}

func applyPenalties(r *entities.ReceptionRecord) {
	independent := decimal.Zero
	percentTotal := decimal.Zero
	toleranceTotal := decimal.Zero

	for i := range r.Parameters {
		cell := &r.Parameters[i]

		own := ShareOf(ClampNonNegative(cell.Percent.Sub(cell.Tolerance)), r.NetWeight)
		independent = independent.Add(own)
		percentTotal = percentTotal.Add(cell.Percent)
		toleranceTotal = toleranceTotal.Add(cell.Tolerance)

		if r.ToleranceGroupEnabled {
			// The tolerance is consumed by the pool, so the cell shows its raw share.
			cell.PenaltyKg = ShareOf(cell.Percent, r.NetWeight)
		} else {
			cell.PenaltyKg = own
		}
	}

	r.GroupPercentTotal = percentTotal
	r.GroupToleranceTotal = toleranceTotal
	r.GroupPenaltyKg = ShareOf(ClampNonNegative(percentTotal.Sub(toleranceTotal)), r.NetWeight)
	r.IndependentDiscountKg = Round2(independent)

	if r.ToleranceGroupEnabled {
		r.TotalDiscountKg = Round2(r.GroupPenaltyKg)
	} else {
		r.TotalDiscountKg = r.IndependentDiscountKg
	}
}

// Normalize clamps every input field of a record into its valid range and
// recomputes it. Used when hydrating a reception from a persisted snapshot.
func Normalize(record entities.ReceptionRecord) entities.ReceptionRecord {
	r := record

	r.GrossWeight = ClampNonNegative(r.GrossWeight)
	r.Tare = ClampNonNegative(r.Tare)
	r.Price = ClampNonNegative(r.Price)
	r.Bonus.Tolerance = ClampNonNegative(r.Bonus.Tolerance)
	r.DryPercent = ClampPercent(r.DryPercent)

	for i := range r.Parameters {
		r.Parameters[i].Percent = ClampPercent(r.Parameters[i].Percent)
		r.Parameters[i].Tolerance = ClampPercent(r.Parameters[i].Tolerance)
	}

	return Recompute(r)
}
