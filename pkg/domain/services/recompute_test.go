package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/paddy/pkg/domain/entities"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertKg(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, d(expected).StringFixed(2), got.StringFixed(2), msgAndArgs...)
}

func recordWithNet(net string) entities.ReceptionRecord {
	r := entities.NewReceptionRecord()
	r.GrossWeight = d(net)
	return r
}

func TestNetWeight_NeverNegative(t *testing.T) {
	tests := []struct {
		gross, tare, expected string
	}{
		{"10000", "500", "9500"},
		{"500", "500", "0"},
		{"500", "10000", "0"},
		{"0", "0", "0"},
		{"1234.56", "34.5", "1200.06"},
	}

	for _, tt := range tests {
		r := entities.NewReceptionRecord()
		r.GrossWeight = d(tt.gross)
		r.Tare = d(tt.tare)

		got := Recompute(r)
		assertKg(t, tt.expected, got.NetWeight, "gross=%s tare=%s", tt.gross, tt.tare)
		assert.False(t, got.NetWeight.IsNegative())
	}
}

func TestRecompute_IndependentPenalty(t *testing.T) {
	r := recordWithNet("1000")
	r.Cell(entities.Humedad).Percent = d("12")
	r.Cell(entities.Humedad).Tolerance = d("5")

	got := Recompute(r)

	assertKg(t, "70.00", got.Parameter(entities.Humedad).PenaltyKg)
	assertKg(t, "70.00", got.TotalDiscountKg)
	assertKg(t, "930.00", got.TotalPaddyNetKg)
}

func TestRecompute_IndependentPenaltyFloor(t *testing.T) {
	r := recordWithNet("1000")
	r.Cell(entities.Impurezas).Percent = d("3")
	r.Cell(entities.Impurezas).Tolerance = d("5")

	got := Recompute(r)

	assertKg(t, "0", got.Parameter(entities.Impurezas).PenaltyKg)
	assertKg(t, "0", got.TotalDiscountKg)
}

func TestRecompute_GroupedPooling(t *testing.T) {
	tests := []struct {
		name                string
		percents            [2]string
		tolerances          [2]string
		net                 string
		expectedGrouped     string
		expectedIndependent string
	}{
		{
			name:                "pooled_formula",
			percents:            [2]string{"10", "8"},
			tolerances:          [2]string{"4", "2"},
			net:                 "1000",
			expectedGrouped:     "120.00",
			expectedIndependent: "120.00",
		},
		{
			// The second parameter is under its own tolerance: independently it
			// clamps to zero, pooled its spare tolerance offsets the first.
			name:                "clamping_diverges",
			percents:            [2]string{"10", "1"},
			tolerances:          [2]string{"4", "5"},
			net:                 "1000",
			expectedGrouped:     "20.00",
			expectedIndependent: "60.00",
		},
		{
			name:                "rounding_diverges",
			percents:            [2]string{"1.5", "1.5"},
			tolerances:          [2]string{"0.25", "0.25"},
			net:                 "333",
			expectedGrouped:     "8.33",
			expectedIndependent: "8.32",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := recordWithNet(tt.net)
			r.ToleranceGroupEnabled = true
			r.Cell(entities.GranosVerdes).Percent = d(tt.percents[0])
			r.Cell(entities.GranosVerdes).Tolerance = d(tt.tolerances[0])
			r.Cell(entities.Vano).Percent = d(tt.percents[1])
			r.Cell(entities.Vano).Tolerance = d(tt.tolerances[1])

			got := Recompute(r)

			pooled := d(tt.percents[0]).Add(d(tt.percents[1])).
				Sub(d(tt.tolerances[0])).Sub(d(tt.tolerances[1]))
			expected := Round2(decimal.Max(decimal.Zero, pooled).Mul(d(tt.net)).Div(d("100")))

			assertKg(t, expected.String(), got.TotalDiscountKg)
			assertKg(t, tt.expectedGrouped, got.TotalDiscountKg)
			assertKg(t, tt.expectedGrouped, got.GroupPenaltyKg)
			assertKg(t, tt.expectedIndependent, got.IndependentDiscountKg)
		})
	}
}

func TestRecompute_GroupedCellsShowRawShare(t *testing.T) {
	r := recordWithNet("1000")
	r.ToleranceGroupEnabled = true
	r.Cell(entities.Humedad).Percent = d("10")
	r.Cell(entities.Humedad).Tolerance = d("4")
	r.Cell(entities.Hualcacho).Percent = d("2")
	r.Cell(entities.Hualcacho).Tolerance = d("3")

	got := Recompute(r)

	assertKg(t, "100", got.Parameter(entities.Humedad).PenaltyKg)
	assertKg(t, "20", got.Parameter(entities.Hualcacho).PenaltyKg)
	assertKg(t, "12", got.GroupPercentTotal)
	assertKg(t, "7", got.GroupToleranceTotal)
	assertKg(t, "50", got.TotalDiscountKg)
}

func TestRecompute_ToggleSwitchesTotals(t *testing.T) {
	r := recordWithNet("1000")
	r.Cell(entities.Humedad).Percent = d("10")
	r.Cell(entities.Humedad).Tolerance = d("4")
	r.Cell(entities.Impurezas).Percent = d("1")
	r.Cell(entities.Impurezas).Tolerance = d("5")

	independent := Recompute(r)
	r.ToleranceGroupEnabled = true
	grouped := Recompute(r)

	assertKg(t, "60", independent.TotalDiscountKg)
	assertKg(t, "20", grouped.TotalDiscountKg)
	assertKg(t, independent.IndependentDiscountKg.String(), grouped.IndependentDiscountKg)
	assertKg(t, independent.GroupPenaltyKg.String(), grouped.GroupPenaltyKg)
}

func TestRecompute_BonusAdditivity(t *testing.T) {
	r := recordWithNet("9500")
	r.Cell(entities.Humedad).Percent = d("14")
	r.Cell(entities.Humedad).Tolerance = d("13")
	r.Bonus.Tolerance = d("0.5")

	got := Recompute(r)

	assertKg(t, "47.50", got.Bonus.PenaltyKg)
	expected := got.NetWeight.Sub(got.TotalDiscountKg).Add(got.Bonus.PenaltyKg)
	assertKg(t, expected.String(), got.TotalPaddyNetKg)
	assertKg(t, "9452.50", got.TotalPaddyNetKg)
}

func TestRecompute_BonusMonotonic(t *testing.T) {
	r := recordWithNet("9500")
	r.Cell(entities.GranosManchados).Percent = d("6")
	r.Cell(entities.GranosManchados).Tolerance = d("1")

	previous := Recompute(r).TotalPaddyNetKg
	for step := 1; step <= 20; step++ {
		r.Bonus.Tolerance = decimal.NewFromInt(int64(step)).Div(d("4"))
		current := Recompute(r).TotalPaddyNetKg
		require.True(t, current.GreaterThan(previous),
			"bonus %s: expected %s > %s", r.Bonus.Tolerance, current, previous)
		previous = current
	}
}

func TestRecompute_EndToEndScenario(t *testing.T) {
	r := entities.NewReceptionRecord()
	r.GrossWeight = d("10000")
	r.Tare = d("500")
	r.Cell(entities.Humedad).Percent = d("14")
	r.Cell(entities.Humedad).Tolerance = d("13")
	r.Price = d("480")

	got := Recompute(r)

	assertKg(t, "9500.00", got.NetWeight)
	assertKg(t, "95.00", got.Parameter(entities.Humedad).PenaltyKg)
	for _, p := range entities.AllParameters()[1:] {
		assertKg(t, "0", got.Parameter(p).PenaltyKg, "parameter %s", p)
	}
	assertKg(t, "0", got.Bonus.PenaltyKg)
	assertKg(t, "95.00", got.TotalDiscountKg)
	assertKg(t, "9405.00", got.TotalPaddyNetKg)
	assertKg(t, "4514400.00", got.TotalToPay)
}

func TestRecompute_ZeroNetWeight(t *testing.T) {
	r := entities.NewReceptionRecord()
	r.GrossWeight = d("400")
	r.Tare = d("500")
	r.Price = d("480")
	r.Bonus.Tolerance = d("2")
	for _, p := range entities.AllParameters() {
		r.Cell(p).Percent = d("30")
	}

	for _, grouped := range []bool{false, true} {
		r.ToleranceGroupEnabled = grouped
		got := Recompute(r)

		for _, p := range entities.AllParameters() {
			assert.True(t, got.Parameter(p).PenaltyKg.IsZero(), "parameter %s", p)
		}
		assert.True(t, got.TotalDiscountKg.IsZero())
		assert.True(t, got.Bonus.PenaltyKg.IsZero())
		assert.True(t, got.TotalToPay.IsZero())
	}
}

func TestRecompute_NetPaddyFloor(t *testing.T) {
	r := recordWithNet("1000")
	r.Price = d("480")
	r.Cell(entities.Humedad).Percent = d("100")
	r.Cell(entities.Impurezas).Percent = d("50")

	got := Recompute(r)

	assertKg(t, "1500", got.TotalDiscountKg)
	assertKg(t, "0", got.TotalPaddyNetKg)
	assertKg(t, "0", got.TotalToPay)
}

func TestRecompute_DryPercentIsInformational(t *testing.T) {
	r := recordWithNet("9500")
	r.Price = d("480")
	r.Cell(entities.Humedad).Percent = d("14")
	r.Cell(entities.Humedad).Tolerance = d("13")

	without := Recompute(r)
	r.DryPercent = d("12.5")
	with := Recompute(r)

	assertKg(t, without.TotalPaddyNetKg.String(), with.TotalPaddyNetKg)
	assertKg(t, without.TotalToPay.String(), with.TotalToPay)
	assertKg(t, "12.5", with.DryPercent)
}

func TestRecompute_DoesNotMutateInput(t *testing.T) {
	r := recordWithNet("1000")
	r.Cell(entities.Vano).Percent = d("5")

	_ = Recompute(r)

	assert.True(t, r.NetWeight.IsZero())
	assert.True(t, r.Parameter(entities.Vano).PenaltyKg.IsZero())
}

func TestRecompute_Deterministic(t *testing.T) {
	r := recordWithNet("8765.43")
	r.Price = d("512.75")
	r.Bonus.Tolerance = d("0.75")
	for i, p := range entities.AllParameters() {
		r.Cell(p).Percent = decimal.NewFromInt(int64(i + 1)).Div(d("3")).Round(2)
		r.Cell(p).Tolerance = d("0.5")
	}

	first := Recompute(r)
	second := Recompute(Recompute(r))

	assert.Equal(t, first.TotalToPay.String(), second.TotalToPay.String())
	assert.Equal(t, first.TotalPaddyNetKg.String(), second.TotalPaddyNetKg.String())
}

func TestNormalize_ClampsInputs(t *testing.T) {
	r := entities.NewReceptionRecord()
	r.GrossWeight = d("-10")
	r.Tare = d("-1")
	r.Price = d("-480")
	r.Bonus.Tolerance = d("-2")
	r.DryPercent = d("140")
	r.Cell(entities.Humedad).Percent = d("150")
	r.Cell(entities.Humedad).Tolerance = d("-5")

	got := Normalize(r)

	assertKg(t, "0", got.GrossWeight)
	assertKg(t, "0", got.Tare)
	assertKg(t, "0", got.Price)
	assertKg(t, "0", got.Bonus.Tolerance)
	assertKg(t, "100", got.DryPercent)
	assertKg(t, "100", got.Parameter(entities.Humedad).Percent)
	assertKg(t, "0", got.Parameter(entities.Humedad).Tolerance)
}
