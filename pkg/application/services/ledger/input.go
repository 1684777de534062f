package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/paddy/pkg/domain/entities"
)

// Field names accepted by ApplyField. Per-parameter fields are written as
// "<prefix>.<Parameter>", e.g. "percent.Humedad".
const (
	FieldTemplate       = "template"
	FieldGrossWeight    = "gross_weight"
	FieldTare           = "tare"
	FieldPrice          = "price"
	FieldBonusTolerance = "bonus_tolerance"
	FieldDryPercent     = "dry_percent"
	FieldGrouped        = "grouped"
	FieldPercent        = "percent"
	FieldTolerance      = "tolerance"
	FieldReading        = "reading"
)

// SetGrossWeightInput parses raw text into the gross weight. It reports false,
// leaving the reception untouched, when the text is not an accepted number.
func (l *Ledger) SetGrossWeightInput(raw string) bool {
	return l.withInput(FieldGrossWeight, raw, l.SetGrossWeight)
}

// SetTareInput parses raw text into the tare
func (l *Ledger) SetTareInput(raw string) bool {
	return l.withInput(FieldTare, raw, l.SetTare)
}

// SetPriceInput parses raw text into the price
func (l *Ledger) SetPriceInput(raw string) bool {
	return l.withInput(FieldPrice, raw, l.SetPrice)
}

// SetBonusToleranceInput parses raw text into the bonus tolerance
func (l *Ledger) SetBonusToleranceInput(raw string) bool {
	return l.withInput(FieldBonusTolerance, raw, l.SetBonusTolerance)
}

// SetDryPercentInput parses raw text into the drying percentage
func (l *Ledger) SetDryPercentInput(raw string) bool {
	return l.withInput(FieldDryPercent, raw, l.SetDryPercent)
}

// SetPercentInput parses raw text into a parameter's percentage
func (l *Ledger) SetPercentInput(name entities.ParameterName, raw string) bool {
	return l.withInput(FieldPercent+"."+name.String(), raw, func(v decimal.Decimal) {
		l.SetPercent(name, v)
	})
}

// SetToleranceInput parses raw text into a parameter's tolerance
func (l *Ledger) SetToleranceInput(name entities.ParameterName, raw string) bool {
	return l.withInput(FieldTolerance+"."+name.String(), raw, func(v decimal.Decimal) {
		l.SetTolerance(name, v)
	})
}

// SetReadingInput parses a raw measured reading and applies its band percentage
func (l *Ledger) SetReadingInput(name entities.ParameterName, raw string) bool {
	return l.withInput(FieldReading+"."+name.String(), raw, func(v decimal.Decimal) {
		l.SetReading(name, v)
	})
}

// ApplyField routes a named raw entry to its setter. The bool reports whether
// the value was accepted; an error means the entry itself is malformed (unknown
// field or parameter, unknown template, bad flag).
func (l *Ledger) ApplyField(field, raw string) (bool, error) {
	name := strings.ToLower(strings.TrimSpace(field))

	switch name {
	case FieldTemplate:
		return true, l.applyTemplateByName(strings.TrimSpace(raw))
	case FieldGrossWeight:
		return l.SetGrossWeightInput(raw), nil
	case FieldTare:
		return l.SetTareInput(raw), nil
	case FieldPrice:
		return l.SetPriceInput(raw), nil
	case FieldBonusTolerance:
		return l.SetBonusToleranceInput(raw), nil
	case FieldDryPercent:
		return l.SetDryPercentInput(raw), nil
	case FieldGrouped:
		enabled, err := parseFlag(raw)
		if err != nil {
			return false, err
		}
		l.SetToleranceGroupEnabled(enabled)
		return true, nil
	}

	prefix, paramName, found := strings.Cut(name, ".")
	if !found {
		return false, fmt.Errorf("unknown field: %s", field)
	}
	param, err := entities.ParseParameterName(paramName)
	if err != nil {
		return false, fmt.Errorf("field %s: %w", field, err)
	}

	switch prefix {
	case FieldPercent:
		return l.SetPercentInput(param, raw), nil
	case FieldTolerance:
		return l.SetToleranceInput(param, raw), nil
	case FieldReading:
		return l.SetReadingInput(param, raw), nil
	default:
		return false, fmt.Errorf("unknown field: %s", field)
	}
}

func (l *Ledger) withInput(field, raw string, set func(decimal.Decimal)) bool {
	value, ok := l.parser.Parse(raw)
	if !ok {
		l.rejected++
		l.logger.Debug("input rejected",
			zap.String("reception_id", l.id.String()),
			zap.String("field", field),
			zap.String("value", raw))
		return false
	}
	set(value)
	return true
}

func (l *Ledger) applyTemplateByName(name string) error {
	if l.templates == nil {
		return fmt.Errorf("template %s: no template source configured", name)
	}
	tmpl, err := l.templates.GetTemplate(name)
	if err != nil {
		return err
	}
	l.ApplyTemplate(tmpl)
	return nil
}

func parseFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on", "si", "sí":
		return true, nil
	case "", "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag value: %s", raw)
	}
}
