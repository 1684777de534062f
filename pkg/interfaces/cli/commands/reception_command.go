package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/paddy/pkg/application/dto"
	"github.com/vsinha/paddy/pkg/application/services/ledger"
	"github.com/vsinha/paddy/pkg/domain/entities"
	"github.com/vsinha/paddy/pkg/domain/repositories"
	"github.com/vsinha/paddy/pkg/domain/services"
	"github.com/vsinha/paddy/pkg/infrastructure/config"
	"github.com/vsinha/paddy/pkg/infrastructure/logger"
	"github.com/vsinha/paddy/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/paddy/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/paddy/pkg/interfaces/cli/output"
)

// Config holds configuration for the reception command
type Config struct {
	TemplatesFile   string
	ReceptionsFile  string
	DefaultTemplate string
	// GroupTolerance, when set, overrides the grouped flag of every reception
	// after its entries are applied.
	GroupTolerance *bool
	OutputDir      string
	Format         string
	Verbose        bool
	Help           bool
	// Writer receives summaries and help text. Defaults to stdout.
	Writer io.Writer
}

// ReceptionCommand liquidates a file of receptions against discount templates
type ReceptionCommand struct {
	config Config
	logger *zap.Logger
	out    io.Writer
}

// NewReceptionCommand creates a new reception command with the given configuration
func NewReceptionCommand(cfg Config, log *zap.Logger) *ReceptionCommand {
	out := cfg.Writer
	if out == nil {
		out = os.Stdout
	}
	return &ReceptionCommand{
		config: cfg,
		logger: logger.Named(log, "cli"),
		out:    out,
	}
}

// Execute runs the reception command
func (c *ReceptionCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	loader := csv.NewLoader()

	templates, err := c.loadTemplates(loader)
	if err != nil {
		return err
	}

	defaultTemplate, err := c.resolveDefaultTemplate(templates)
	if err != nil {
		return err
	}

	receptions, err := loader.LoadReceptions(c.config.ReceptionsFile)
	if err != nil {
		return fmt.Errorf("error loading receptions: %w", err)
	}
	c.logger.Info("receptions loaded",
		zap.String("file", c.config.ReceptionsFile),
		zap.Int("receptions", len(receptions)))

	summaries := make([]dto.ReceptionSummary, 0, len(receptions))
	for _, input := range receptions {
		if err := ctx.Err(); err != nil {
			return err
		}

		summary, err := c.liquidate(input, templates, defaultTemplate)
		if err != nil {
			return err
		}
		summaries = append(summaries, summary)
	}

	err = output.Generate(summaries, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Writer:    c.out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	c.logger.Info("receptions liquidated", zap.Int("receptions", len(summaries)))
	return nil
}

// liquidate replays one reception's entries through a fresh ledger
func (c *ReceptionCommand) liquidate(
	input *dto.ReceptionInput,
	templates repositories.TemplateRepository,
	defaultTemplate *entities.DiscountTemplate,
) (dto.ReceptionSummary, error) {
	l := ledger.New(
		ledger.WithReference(input.Reference),
		ledger.WithLogger(logger.Named(c.logger, "ledger")),
		ledger.WithTemplateSource(templates),
		ledger.WithTemplate(defaultTemplate),
	)

	for _, entry := range input.Entries {
		accepted, err := l.ApplyField(entry.Field, entry.Value)
		if err != nil {
			return dto.ReceptionSummary{}, fmt.Errorf("reception %s line %d: %w", input.Reference, entry.Line, err)
		}
		if !accepted {
			c.logger.Warn("value rejected, previous value kept",
				zap.String("reception", input.Reference),
				zap.Int("line", entry.Line),
				zap.String("field", entry.Field),
				zap.String("value", entry.Value))
		}
	}

	if c.config.GroupTolerance != nil {
		l.SetToleranceGroupEnabled(*c.config.GroupTolerance)
	}

	summary := l.Summarize()
	if c.config.Verbose {
		c.logger.Info("reception liquidated",
			zap.String("reception", input.Reference),
			zap.String("reception_id", summary.ReceptionID.String()),
			zap.String("total_paddy_net_kg", summary.TotalPaddyNetKg.StringFixed(2)),
			zap.String("total_to_pay", summary.TotalToPay.StringFixed(2)))
	}
	return summary, nil
}

// validateInputs validates the command configuration
func (c *ReceptionCommand) validateInputs() error {
	if c.config.ReceptionsFile == "" {
		return fmt.Errorf("must specify -receptions file")
	}
	if c.config.DefaultTemplate != "" && c.config.TemplatesFile == "" {
		return fmt.Errorf("-template %s needs a -templates file", c.config.DefaultTemplate)
	}
	return config.ValidateFormat(c.config.Format)
}

// loadTemplates loads and validates the templates file. Without one the
// repository is empty and readings resolve to zero.
func (c *ReceptionCommand) loadTemplates(loader *csv.Loader) (*memory.TemplateRepository, error) {
	if c.config.TemplatesFile == "" {
		return memory.NewTemplateRepository(0), nil
	}

	loaded, err := loader.LoadTemplates(c.config.TemplatesFile)
	if err != nil {
		return nil, fmt.Errorf("error loading templates: %w", err)
	}

	validation := services.NewTemplateValidator().ValidateTemplates(loaded)
	if len(validation.Errors) > 0 {
		return nil, fmt.Errorf("template validation failed: %s", strings.Join(validation.Errors, "; "))
	}
	for _, warning := range validation.Warnings {
		c.logger.Warn(warning)
	}

	repo := memory.NewTemplateRepository(len(loaded))
	if err := repo.LoadTemplates(loaded); err != nil {
		return nil, fmt.Errorf("failed to load templates into repository: %w", err)
	}

	c.logger.Info("templates loaded",
		zap.String("file", c.config.TemplatesFile),
		zap.Int("templates", len(loaded)))
	return repo, nil
}

// resolveDefaultTemplate picks the template applied before any entry: the
// configured one, else the repository default, else none.
func (c *ReceptionCommand) resolveDefaultTemplate(repo repositories.TemplateRepository) (*entities.DiscountTemplate, error) {
	if c.config.DefaultTemplate != "" {
		tmpl, err := repo.GetTemplate(c.config.DefaultTemplate)
		if err != nil {
			return nil, fmt.Errorf("default template: %w", err)
		}
		return tmpl, nil
	}

	tmpl, err := repo.GetDefaultTemplate()
	if errors.Is(err, repositories.ErrTemplateNotFound) {
		c.logger.Info("no default template, receptions start without one")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("default template: %w", err)
	}
	return tmpl, nil
}

// showHelp displays the help message
func (c *ReceptionCommand) showHelp() {
	fmt.Fprintf(c.out, `Paddy Reception CLI - quality discounts and bonuses for rice purchases

USAGE:
    paddy -receptions <file> [-templates <file>] [options]

OPTIONS:
    -receptions <file>  Path to receptions CSV file (required)
    -templates <file>   Path to discount templates CSV file
    -template <name>    Template applied to every reception before its entries
    -grouped <on|off>   Force grouped or independent tolerances on every reception
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -env <file>         Load PADDY_* settings from this file instead of .env
    -verbose            Enable verbose output
    -help               Show this help message

ENVIRONMENT:
    PADDY_TEMPLATES_FILE, PADDY_DEFAULT_TEMPLATE, PADDY_GROUP_TOLERANCE,
    PADDY_OUTPUT_FORMAT, PADDY_LOG_LEVEL, PADDY_LOG_FORMAT (console|json).
    Flags override the environment.

CSV FILE FORMATS:

templates.csv:
    template,parameter,start,end,percent,tolerance,group_tolerance,default
    estandar,,,,,,,true
    estandar,Humedad,15.01,16,1.5,,,
    estandar,GranosVerdes,,,,2,,

receptions.csv:
    reception,field,value
    T-001,gross_weight,10000
    T-001,tare,500
    T-001,price,480
    T-001,reading.Humedad,15.5
    T-001,tolerance.Impurezas,1
    T-001,percent.Vano,2.5
    T-001,grouped,true

    Fields: template, gross_weight, tare, price, bonus_tolerance, dry_percent,
    grouped, percent.<Parameter>, tolerance.<Parameter>, reading.<Parameter>.
    Parameters: Humedad, GranosVerdes, Impurezas, Vano, Hualcacho,
    GranosManchados, GranosPelados, GranosYesosos.

    Values accept digits with at most two decimals. Anything else is rejected
    and the previous value is kept.

EXAMPLES:
    paddy -templates data/templates.csv -receptions data/receptions.csv
    paddy -templates data/templates.csv -receptions data/receptions.csv -format json -output results/
    paddy -receptions data/receptions.csv -grouped on -format csv
`)
}
