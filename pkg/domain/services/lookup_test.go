package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/paddy/pkg/domain/entities"
)

func band(start, end, percent string) entities.DiscountBand {
	return entities.DiscountBand{
		Start:   decimal.RequireFromString(start),
		End:     decimal.RequireFromString(end),
		Percent: decimal.RequireFromString(percent),
	}
}

func TestPercentForValue(t *testing.T) {
	humidity := []entities.DiscountBand{
		band("0", "15", "0"),
		band("15.01", "16", "1.5"),
		band("16.01", "17", "3"),
		band("17.01", "18", "4.5"),
	}

	tests := []struct {
		name     string
		bands    []entities.DiscountBand
		value    string
		expected string
	}{
		{"first_band", humidity, "14.2", "0"},
		{"lower_edge_inclusive", humidity, "15.01", "1.5"},
		{"upper_edge_inclusive", humidity, "17", "3"},
		{"last_band", humidity, "17.5", "4.5"},
		{"gap_between_bands", humidity, "15.005", "0"},
		{"above_all_bands", humidity, "25", "0"},
		{"no_match_defaults_to_zero", []entities.DiscountBand{band("0", "5", "2")}, "10", "0"},
		{"empty_table", nil, "3", "0"},
		{"overlap_first_listed_wins", []entities.DiscountBand{band("0", "10", "2"), band("5", "15", "7")}, "6", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentForValue(tt.bands, decimal.RequireFromString(tt.value))
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
