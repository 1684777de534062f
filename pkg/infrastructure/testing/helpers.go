package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/paddy/pkg/domain/entities"
	"github.com/vsinha/paddy/pkg/infrastructure/repositories/memory"
)

type bandSpec struct {
	start, end, percent string
}

var cooperativeBands = map[entities.ParameterName][]bandSpec{
	entities.Humedad: {
		{"0", "15", "0"},
		{"15.01", "16", "1.5"},
		{"16.01", "17", "3"},
		{"17.01", "18", "4.5"},
		{"18.01", "20", "6.5"},
		{"20.01", "25", "10"},
	},
	entities.GranosVerdes: {
		{"0", "2", "0"},
		{"2.01", "4", "2"},
		{"4.01", "8", "5"},
	},
	entities.Impurezas: {
		{"0", "1", "0"},
		{"1.01", "2", "1"},
		{"2.01", "3", "2"},
		{"3.01", "5", "4"},
	},
}

var cooperativeTolerances = map[entities.ParameterName]string{
	entities.GranosVerdes:    "2",
	entities.Impurezas:       "1",
	entities.Vano:            "1",
	entities.Hualcacho:       "0.5",
	entities.GranosManchados: "1",
	entities.GranosPelados:   "1",
	entities.GranosYesosos:   "2",
}

// BuildEstandarTemplate builds the cooperative's default discount template:
// humidity, green grain and impurity band tables with per-parameter tolerances
func BuildEstandarTemplate() *entities.DiscountTemplate {
	return buildTemplate("estandar", true, false)
}

// BuildAgrupadaTemplate builds the same schedule with grouped tolerances enabled
func BuildAgrupadaTemplate() *entities.DiscountTemplate {
	return buildTemplate("agrupada", false, true)
}

// BuildCooperativeTemplates returns a repository holding both cooperative templates
func BuildCooperativeTemplates() *memory.TemplateRepository {
	repo := memory.NewTemplateRepository(2)
	err := repo.LoadTemplates([]*entities.DiscountTemplate{
		BuildEstandarTemplate(),
		BuildAgrupadaTemplate(),
	})
	if err != nil {
		panic(err)
	}
	return repo
}

// BuildScenarioRecord returns the reference reception: 10000 kg gross, 500 kg
// tare, Humedad 14% against a 13% tolerance, price 480
func BuildScenarioRecord() entities.ReceptionRecord {
	record := entities.NewReceptionRecord()
	record.GrossWeight = decimal.NewFromInt(10000)
	record.Tare = decimal.NewFromInt(500)
	record.Price = decimal.NewFromInt(480)
	record.Parameters[entities.Humedad].Percent = decimal.NewFromInt(14)
	record.Parameters[entities.Humedad].Tolerance = decimal.NewFromInt(13)
	return record
}

func buildTemplate(name string, isDefault, grouped bool) *entities.DiscountTemplate {
	tmpl, err := entities.NewDiscountTemplate(name)
	if err != nil {
		panic(err)
	}
	tmpl.Default = isDefault
	tmpl.GroupToleranceEnabled = grouped

	for _, param := range entities.AllParameters() {
		for _, b := range cooperativeBands[param] {
			band, err := entities.NewDiscountBand(
				decimal.RequireFromString(b.start),
				decimal.RequireFromString(b.end),
				decimal.RequireFromString(b.percent),
			)
			if err != nil {
				panic(err)
			}
			if err := tmpl.AddBand(param, *band); err != nil {
				panic(err)
			}
		}
		if tolerance, ok := cooperativeTolerances[param]; ok {
			if err := tmpl.SetTolerance(param, decimal.RequireFromString(tolerance)); err != nil {
				panic(err)
			}
		}
	}

	return tmpl
}
