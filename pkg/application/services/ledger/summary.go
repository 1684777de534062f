package ledger

import (
	"github.com/vsinha/paddy/pkg/application/dto"
	"github.com/vsinha/paddy/pkg/domain/entities"
)

// Summarize projects a reception into a read-only snapshot. The snapshot shares
// no memory with the record, so later edits do not show through it.
func Summarize(record entities.ReceptionRecord) dto.ReceptionSummary {
	lines := make([]dto.ParameterLine, 0, entities.ParameterCount)
	for _, p := range entities.AllParameters() {
		cell := record.Parameter(p)
		lines = append(lines, dto.ParameterLine{
			Parameter: p,
			Percent:   cell.Percent,
			Tolerance: cell.Tolerance,
			PenaltyKg: cell.PenaltyKg,
		})
	}

	return dto.ReceptionSummary{
		GrossWeight:           record.GrossWeight,
		Tare:                  record.Tare,
		NetWeight:             record.NetWeight,
		Price:                 record.Price,
		Parameters:            lines,
		ToleranceGroupEnabled: record.ToleranceGroupEnabled,
		GroupPercentTotal:     record.GroupPercentTotal,
		GroupToleranceTotal:   record.GroupToleranceTotal,
		GroupPenaltyKg:        record.GroupPenaltyKg,
		IndependentDiscountKg: record.IndependentDiscountKg,
		BonusTolerance:        record.Bonus.Tolerance,
		BonusKg:               record.Bonus.PenaltyKg,
		DryPercent:            record.DryPercent,
		TotalDiscountKg:       record.TotalDiscountKg,
		TotalPaddyNetKg:       record.TotalPaddyNetKg,
		TotalToPay:            record.TotalToPay,
	}
}
