package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/vsinha/paddy/pkg/application/dto"
	"github.com/vsinha/paddy/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives the output when OutputDir is empty, and verbose notices
	// otherwise. Defaults to stdout.
	Writer io.Writer
}

// Generate writes reception summaries in the specified format
func Generate(summaries []dto.ReceptionSummary, config Config) error {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	switch config.Format {
	case "text":
		return generateTextOutput(summaries, config)
	case "json":
		return generateJSONOutput(summaries, config)
	case "csv":
		return generateCSVOutput(summaries, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates a human-readable liquidation per reception
func generateTextOutput(summaries []dto.ReceptionSummary, config Config) error {
	return emit(config, "receptions.txt", func(w io.Writer) error {
		fmt.Fprintf(w, "🌾 Paddy Reception Summary\n")
		fmt.Fprintf(w, "==========================\n\n")
		fmt.Fprintf(w, "Receptions: %d\n\n", len(summaries))

		for _, s := range summaries {
			writeTextReception(w, s)
		}
		return nil
	})
}

func writeTextReception(w io.Writer, s dto.ReceptionSummary) {
	fmt.Fprintf(w, "📋 Reception %s", s.Reference)
	if s.Template != "" {
		fmt.Fprintf(w, " (template: %s)", s.Template)
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  ID: %s\n", s.ReceptionID)
	fmt.Fprintf(w, "  Gross: %s kg  Tare: %s kg  Net: %s kg  Price: %s\n",
		amount(s.GrossWeight), amount(s.Tare), amount(s.NetWeight), amount(s.Price))

	mode := "independent"
	if s.ToleranceGroupEnabled {
		mode = "grouped"
	}
	fmt.Fprintf(w, "  Tolerances: %s\n\n", mode)

	fmt.Fprintf(w, "  %-18s %10s %10s %12s\n", "Parameter", "Percent", "Tolerance", "Penalty kg")
	fmt.Fprintf(w, "  %-18s %10s %10s %12s\n", "------------------", "----------", "----------", "------------")
	for _, line := range s.Parameters {
		fmt.Fprintf(w, "  %-18s %10s %10s %12s\n",
			line.Parameter, amount(line.Percent), amount(line.Tolerance), amount(line.PenaltyKg))
	}
	if s.ToleranceGroupEnabled {
		fmt.Fprintf(w, "  %-18s %10s %10s %12s\n",
			"Group", amount(s.GroupPercentTotal), amount(s.GroupToleranceTotal), amount(s.GroupPenaltyKg))
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "  Bonus: %s%% = %s kg\n", amount(s.BonusTolerance), amount(s.BonusKg))
	fmt.Fprintf(w, "  Dry: %s%%\n", amount(s.DryPercent))
	fmt.Fprintf(w, "  Total discount: %s kg\n", amount(s.TotalDiscountKg))
	fmt.Fprintf(w, "  Paddy net: %s kg\n", amount(s.TotalPaddyNetKg))
	fmt.Fprintf(w, "  💰 Total to pay: %s\n", amount(s.TotalToPay))
	if s.RejectedInputs > 0 {
		fmt.Fprintf(w, "  ⚠️  Rejected inputs: %d\n", s.RejectedInputs)
	}
	fmt.Fprintf(w, "\n")
}

// generateJSONOutput creates JSON output
func generateJSONOutput(summaries []dto.ReceptionSummary, config Config) error {
	jsonData, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return emit(config, "receptions.json", func(w io.Writer) error {
		_, err := fmt.Fprintln(w, string(jsonData))
		return err
	})
}

// generateCSVOutput creates one CSV row per reception
func generateCSVOutput(summaries []dto.ReceptionSummary, config Config) error {
	return emit(config, "receptions.csv", func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(csvHeader()); err != nil {
			return err
		}
		for _, s := range summaries {
			if err := writer.Write(csvRow(s)); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	})
}

func csvHeader() []string {
	header := []string{"reference", "reception_id", "template", "gross_weight", "tare", "net_weight", "price", "grouped"}
	for _, p := range entities.AllParameters() {
		name := p.String()
		header = append(header, name+"_percent", name+"_tolerance", name+"_penalty_kg")
	}
	return append(header,
		"group_penalty_kg", "bonus_tolerance", "bonus_kg", "dry_percent",
		"total_discount_kg", "total_paddy_net_kg", "total_to_pay", "rejected_inputs")
}

func csvRow(s dto.ReceptionSummary) []string {
	row := []string{
		s.Reference,
		s.ReceptionID.String(),
		s.Template,
		amount(s.GrossWeight),
		amount(s.Tare),
		amount(s.NetWeight),
		amount(s.Price),
		fmt.Sprintf("%t", s.ToleranceGroupEnabled),
	}
	for _, line := range s.Parameters {
		row = append(row, amount(line.Percent), amount(line.Tolerance), amount(line.PenaltyKg))
	}
	return append(row,
		amount(s.GroupPenaltyKg),
		amount(s.BonusTolerance),
		amount(s.BonusKg),
		amount(s.DryPercent),
		amount(s.TotalDiscountKg),
		amount(s.TotalPaddyNetKg),
		amount(s.TotalToPay),
		fmt.Sprintf("%d", s.RejectedInputs),
	)
}

// emit writes to the configured writer, or to filename under OutputDir when set
func emit(config Config, filename string, write func(io.Writer) error) error {
	if config.OutputDir == "" {
		return write(config.Writer)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(config.OutputDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 Results saved to: %s\n", path)
	}
	return nil
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
