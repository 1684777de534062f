package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/paddy/pkg/application/dto"
	"github.com/vsinha/paddy/pkg/domain/entities"
)

var (
	templateHeader  = []string{"template", "parameter", "start", "end", "percent", "tolerance", "group_tolerance", "default"}
	receptionHeader = []string{"reception", "field", "value"}
)

// Loader handles loading discount templates and reception entries from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadTemplates loads discount templates from a CSV file. Each row belongs to
// the template named in its first column; templates are returned in the order
// they first appear. A row contributes a band when start, end and percent are
// set, a tolerance when tolerance is set, and sets the template flags when
// group_tolerance or default is set. Bands keep their file order.
func (l *Loader) LoadTemplates(filename string) ([]*entities.DiscountTemplate, error) {
	records, err := readAll(filename, "templates")
	if err != nil {
		return nil, err
	}

	if !validateHeader(records[0], templateHeader) {
		return nil, fmt.Errorf("templates CSV header mismatch. Expected: %v, Got: %v", templateHeader, records[0])
	}

	var templates []*entities.DiscountTemplate
	byName := make(map[string]*entities.DiscountTemplate)

	for i, record := range records[1:] {
		row := i + 2
		if len(record) != len(templateHeader) {
			return nil, fmt.Errorf("templates CSV row %d: expected %d columns, got %d", row, len(templateHeader), len(record))
		}

		name := strings.TrimSpace(record[0])
		tmpl, ok := byName[name]
		if !ok {
			tmpl, err = entities.NewDiscountTemplate(name)
			if err != nil {
				return nil, fmt.Errorf("templates CSV row %d: %w", row, err)
			}
			byName[name] = tmpl
			templates = append(templates, tmpl)
		}

		if err := applyTemplateRow(tmpl, record); err != nil {
			return nil, fmt.Errorf("templates CSV row %d: %w", row, err)
		}
	}

	return templates, nil
}

// LoadReceptions loads reception entries from a CSV file. Rows are grouped by
// the reception column, receptions are returned in the order they first appear
// and entries keep their file order, which is the order they are applied in.
func (l *Loader) LoadReceptions(filename string) ([]*dto.ReceptionInput, error) {
	records, err := readAll(filename, "receptions")
	if err != nil {
		return nil, err
	}

	if !validateHeader(records[0], receptionHeader) {
		return nil, fmt.Errorf("receptions CSV header mismatch. Expected: %v, Got: %v", receptionHeader, records[0])
	}

	var receptions []*dto.ReceptionInput
	byReference := make(map[string]*dto.ReceptionInput)

	for i, record := range records[1:] {
		row := i + 2
		if len(record) != len(receptionHeader) {
			return nil, fmt.Errorf("receptions CSV row %d: expected %d columns, got %d", row, len(receptionHeader), len(record))
		}

		reference := strings.TrimSpace(record[0])
		if reference == "" {
			return nil, fmt.Errorf("receptions CSV row %d: reception cannot be empty", row)
		}
		field := strings.TrimSpace(record[1])
		if field == "" {
			return nil, fmt.Errorf("receptions CSV row %d: field cannot be empty", row)
		}

		input, ok := byReference[reference]
		if !ok {
			input = &dto.ReceptionInput{Reference: reference}
			byReference[reference] = input
			receptions = append(receptions, input)
		}

		// Values are kept raw; the ledger decides whether they are accepted.
		input.Entries = append(input.Entries, dto.FieldEntry{
			Field: field,
			Value: record[2],
			Line:  row,
		})
	}

	return receptions, nil
}

// Helper functions for parsing CSV records

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Column counts are checked per row so errors carry the row number.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func applyTemplateRow(tmpl *entities.DiscountTemplate, record []string) error {
	if flag := strings.TrimSpace(record[6]); flag != "" {
		enabled, err := parseBool(flag)
		if err != nil {
			return fmt.Errorf("invalid group_tolerance: %w", err)
		}
		tmpl.GroupToleranceEnabled = enabled
	}
	if flag := strings.TrimSpace(record[7]); flag != "" {
		isDefault, err := parseBool(flag)
		if err != nil {
			return fmt.Errorf("invalid default: %w", err)
		}
		tmpl.Default = isDefault
	}

	paramStr := strings.TrimSpace(record[1])
	start, end, percent := strings.TrimSpace(record[2]), strings.TrimSpace(record[3]), strings.TrimSpace(record[4])
	tolerance := strings.TrimSpace(record[5])

	if paramStr == "" {
		if start != "" || end != "" || percent != "" || tolerance != "" {
			return fmt.Errorf("parameter is required for band and tolerance values")
		}
		return nil
	}

	param, err := entities.ParseParameterName(paramStr)
	if err != nil {
		return err
	}

	if start != "" || end != "" || percent != "" {
		band, err := parseBand(start, end, percent)
		if err != nil {
			return err
		}
		if err := tmpl.AddBand(param, *band); err != nil {
			return err
		}
	}

	if tolerance != "" {
		value, err := parseDecimal("tolerance", tolerance)
		if err != nil {
			return err
		}
		if err := tmpl.SetTolerance(param, value); err != nil {
			return err
		}
	}

	return nil
}

func parseBand(startStr, endStr, percentStr string) (*entities.DiscountBand, error) {
	if startStr == "" || endStr == "" || percentStr == "" {
		return nil, fmt.Errorf("band needs start, end and percent")
	}

	start, err := parseDecimal("start", startStr)
	if err != nil {
		return nil, err
	}
	end, err := parseDecimal("end", endStr)
	if err != nil {
		return nil, err
	}
	percent, err := parseDecimal("percent", percentStr)
	if err != nil {
		return nil, err
	}

	return entities.NewDiscountBand(start, end, percent)
}

func parseDecimal(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", column, value)
	}
	return d, nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "si", "sí":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", value)
	}
}
