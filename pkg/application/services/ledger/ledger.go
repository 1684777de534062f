package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/paddy/pkg/application/dto"
	"github.com/vsinha/paddy/pkg/domain/entities"
	"github.com/vsinha/paddy/pkg/domain/repositories"
	"github.com/vsinha/paddy/pkg/domain/services"
)

// Ledger owns the reception being edited in one session. Every setter clamps
// its input and recomputes the whole record before returning, so callers never
// observe a partially derived state. A Ledger is not safe for concurrent use.
type Ledger struct {
	id        uuid.UUID
	reference string
	record    entities.ReceptionRecord
	template  *entities.DiscountTemplate
	templates repositories.TemplateRepository
	parser    *services.InputParser
	logger    *zap.Logger
	rejected  int
}

// Option configures a Ledger
type Option func(*Ledger)

// WithID sets the reception identifier instead of generating one
func WithID(id uuid.UUID) Option {
	return func(l *Ledger) { l.id = id }
}

// WithReference attaches an external reference, such as a weighbridge ticket number
func WithReference(reference string) Option {
	return func(l *Ledger) { l.reference = reference }
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTemplate sets the discount template used for reading lookups
func WithTemplate(tmpl *entities.DiscountTemplate) Option {
	return func(l *Ledger) { l.template = tmpl }
}

// WithTemplateSource lets "template" field entries resolve templates by name
func WithTemplateSource(repo repositories.TemplateRepository) Option {
	return func(l *Ledger) { l.templates = repo }
}

// New creates a ledger holding an empty reception. A template given through
// WithTemplate is applied to it.
func New(opts ...Option) *Ledger {
	l := build(entities.NewReceptionRecord(), opts)
	if l.template != nil {
		l.ApplyTemplate(l.template)
	}
	return l
}

// Hydrate creates a ledger from a persisted reception. Input fields are clamped
// and all derived fields are recomputed, whatever the snapshot carried. A
// template given through WithTemplate is attached for reading lookups only; the
// snapshot keeps its own tolerances.
func Hydrate(record entities.ReceptionRecord, opts ...Option) *Ledger {
	return build(record, opts)
}

func build(record entities.ReceptionRecord, opts []Option) *Ledger {
	l := &Ledger{
		record: record,
		parser: services.NewInputParser(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.id == uuid.Nil {
		l.id = uuid.New()
	}
	l.record = services.Normalize(l.record)
	return l
}

// ID returns the reception identifier
func (l *Ledger) ID() uuid.UUID {
	return l.id
}

// Template returns the applied discount template, nil when none
func (l *Ledger) Template() *entities.DiscountTemplate {
	return l.template
}

// Record returns a copy of the current reception
func (l *Ledger) Record() entities.ReceptionRecord {
	return l.record
}

// Rejected returns how many raw inputs were refused so far
func (l *Ledger) Rejected() int {
	return l.rejected
}

// Reset clears the reception back to empty, keeping the identifier and template
func (l *Ledger) Reset() {
	l.record = entities.NewReceptionRecord()
	l.rejected = 0
	if l.template != nil {
		l.ApplyTemplate(l.template)
		return
	}
	l.recompute()
}

// ApplyTemplate copies the template's tolerances and grouped default into the
// reception. Percents already entered are kept.
func (l *Ledger) ApplyTemplate(tmpl *entities.DiscountTemplate) {
	if tmpl == nil {
		return
	}
	l.template = tmpl
	for _, p := range entities.AllParameters() {
		l.record.Parameters[p].Tolerance = services.ClampPercent(tmpl.Tolerances[p])
	}
	l.record.ToleranceGroupEnabled = tmpl.GroupToleranceEnabled
	l.logger.Debug("discount template applied",
		zap.String("reception_id", l.id.String()),
		zap.String("template", tmpl.Name),
		zap.Bool("grouped", tmpl.GroupToleranceEnabled))
	l.recompute()
}

// SetGrossWeight sets the gross weight, clamped to zero
func (l *Ledger) SetGrossWeight(value decimal.Decimal) {
	l.record.GrossWeight = services.ClampNonNegative(value)
	l.recompute()
}

// SetTare sets the tare, clamped to zero
func (l *Ledger) SetTare(value decimal.Decimal) {
	l.record.Tare = services.ClampNonNegative(value)
	l.recompute()
}

// SetPrice sets the unit price, clamped to zero
func (l *Ledger) SetPrice(value decimal.Decimal) {
	l.record.Price = services.ClampNonNegative(value)
	l.recompute()
}

// SetPercent sets a parameter's defect percentage, clamped to [0, 100].
// Unknown parameters are ignored.
func (l *Ledger) SetPercent(name entities.ParameterName, value decimal.Decimal) {
	cell := l.record.Cell(name)
	if cell == nil {
		return
	}
	cell.Percent = services.ClampPercent(value)
	l.recompute()
}

// SetTolerance sets a parameter's tolerance, clamped to [0, 100].
// Unknown parameters are ignored.
func (l *Ledger) SetTolerance(name entities.ParameterName, value decimal.Decimal) {
	cell := l.record.Cell(name)
	if cell == nil {
		return
	}
	cell.Tolerance = services.ClampPercent(value)
	l.recompute()
}

// SetToleranceGroupEnabled switches between pooled and independent tolerances
func (l *Ledger) SetToleranceGroupEnabled(enabled bool) {
	l.record.ToleranceGroupEnabled = enabled
	l.recompute()
}

// SetBonusTolerance sets the bonus percentage credited back, clamped to zero
func (l *Ledger) SetBonusTolerance(value decimal.Decimal) {
	l.record.Bonus.Tolerance = services.ClampNonNegative(value)
	l.recompute()
}

// SetDryPercent records the drying percentage. It is shown on the summary but
// does not enter any total.
func (l *Ledger) SetDryPercent(value decimal.Decimal) {
	l.record.DryPercent = services.ClampPercent(value)
	l.recompute()
}

// SetReading looks up the defect percentage for a measured reading in the
// applied template and sets it on the parameter. Without a template, or when no
// band matches, the percentage is zero. The applied percentage is returned.
func (l *Ledger) SetReading(name entities.ParameterName, reading decimal.Decimal) decimal.Decimal {
	percent := services.PercentForValue(l.template.BandsFor(name), reading)
	l.SetPercent(name, percent)
	return l.record.Parameter(name).Percent
}

// Summarize returns a snapshot of the reception
func (l *Ledger) Summarize() dto.ReceptionSummary {
	summary := Summarize(l.record)
	summary.ReceptionID = l.id
	summary.Reference = l.reference
	summary.RejectedInputs = l.rejected
	if l.template != nil {
		summary.Template = l.template.Name
	}
	return summary
}

func (l *Ledger) recompute() {
	l.record = services.Recompute(l.record)
	l.logger.Debug("reception recomputed",
		zap.String("reception_id", l.id.String()),
		zap.String("net_weight", l.record.NetWeight.String()),
		zap.String("total_discount_kg", l.record.TotalDiscountKg.String()),
		zap.String("total_to_pay", l.record.TotalToPay.String()))
}
