package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/paddy/pkg/application/services/ledger"
	"github.com/vsinha/paddy/pkg/domain/entities"
)

func main() {
	// Set up a simple humidity schedule with default tolerances
	tmpl := buildTemplate()

	l := ledger.New(ledger.WithTemplate(tmpl), ledger.WithReference("TICKET-0042"))

	fmt.Println("🌾 Receiving a paddy lot...")
	fmt.Println()

	// Keystrokes as the operator types them; "12.555" is refused and 12.5 stays
	l.SetGrossWeightInput("24850")
	l.SetTareInput("8120")
	l.SetPercentInput(entities.Vano, "2.5")
	l.SetPercentInput(entities.Impurezas, "1.")
	l.SetPercentInput(entities.Impurezas, "1.5")
	l.SetPercentInput(entities.GranosVerdes, "12.5")
	if !l.SetPercentInput(entities.GranosVerdes, "12.555") {
		fmt.Println("⚠️  12.555 rejected, keeping 12.5")
	}
	applied := l.SetReading(entities.Humedad, decimal.RequireFromString("16.4"))
	fmt.Printf("Humidity reading 16.4 → %s%% discount\n", applied)
	l.SetBonusTolerance(decimal.RequireFromString("0.5"))
	l.SetPrice(decimal.RequireFromString("455.5"))
	fmt.Println()

	printLiquidation("Independent tolerances", l)

	l.SetToleranceGroupEnabled(true)
	printLiquidation("Grouped tolerances", l)

	fmt.Println("✅ Reception complete!")
}

func printLiquidation(title string, l *ledger.Ledger) {
	s := l.Summarize()

	fmt.Printf("📊 %s:\n", title)
	fmt.Printf("  Net weight: %s kg\n", s.NetWeight.StringFixed(2))
	for _, line := range s.Parameters {
		if line.Percent.IsZero() {
			continue
		}
		fmt.Printf("  %-16s %6s%% (tol %s%%) → %s kg\n",
			line.Parameter, line.Percent.StringFixed(2), line.Tolerance.StringFixed(2), line.PenaltyKg.StringFixed(2))
	}
	if s.ToleranceGroupEnabled {
		fmt.Printf("  Group: %s%% - %s%% → %s kg\n",
			s.GroupPercentTotal.StringFixed(2), s.GroupToleranceTotal.StringFixed(2), s.GroupPenaltyKg.StringFixed(2))
	}
	fmt.Printf("  Discount: %s kg | Bonus: %s kg\n", s.TotalDiscountKg.StringFixed(2), s.BonusKg.StringFixed(2))
	fmt.Printf("  Paddy net: %s kg\n", s.TotalPaddyNetKg.StringFixed(2))
	fmt.Printf("  💰 Total to pay: %s\n", s.TotalToPay.StringFixed(2))
	fmt.Println()
}

func buildTemplate() *entities.DiscountTemplate {
	tmpl, err := entities.NewDiscountTemplate("estandar")
	if err != nil {
		panic(err)
	}

	humidity := [][3]int64{
		// start, end, percent (in hundredths)
		{0, 1500, 0},
		{1501, 1600, 150},
		{1601, 1700, 300},
		{1701, 1800, 450},
	}
	for _, b := range humidity {
		band, err := entities.NewDiscountBand(
			decimal.New(b[0], -2),
			decimal.New(b[1], -2),
			decimal.New(b[2], -2),
		)
		if err != nil {
			panic(err)
		}
		if err := tmpl.AddBand(entities.Humedad, *band); err != nil {
			panic(err)
		}
	}

	tolerances := map[entities.ParameterName]int64{
		entities.GranosVerdes: 200,
		entities.Impurezas:    100,
		entities.Vano:         100,
	}
	for param, tol := range tolerances {
		if err := tmpl.SetTolerance(param, decimal.New(tol, -2)); err != nil {
			panic(err)
		}
	}

	return tmpl
}
