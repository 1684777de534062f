package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/vsinha/paddy/pkg/infrastructure/config"
	"github.com/vsinha/paddy/pkg/infrastructure/logger"
	"github.com/vsinha/paddy/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		receptionsFile  = flag.String("receptions", "", "Path to receptions CSV file")
		templatesFile   = flag.String("templates", "", "Path to discount templates CSV file")
		defaultTemplate = flag.String("template", "", "Template applied to every reception before its entries")
		grouped         = flag.String("grouped", "", "Force grouped tolerances: on or off")
		outputDir       = flag.String("output", "", "Output directory for results (optional)")
		format          = flag.String("format", "", "Output format: text, json, csv (default: text)")
		envFile         = flag.String("env", "", "Load PADDY_* settings from this file instead of .env")
		verbose         = flag.Bool("verbose", false, "Enable verbose output")
		help            = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment
	if *templatesFile != "" {
		cfg.TemplatesFile = *templatesFile
	}
	if *defaultTemplate != "" {
		cfg.DefaultTemplate = *defaultTemplate
	}
	if *format != "" {
		cfg.OutputFormat = strings.ToLower(*format)
	}
	if *grouped != "" {
		enabled, err := parseSwitch(*grouped)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -grouped: %v\n", err)
			os.Exit(1)
		}
		cfg.GroupTolerance = &enabled
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Create command configuration
	cmdConfig := commands.Config{
		TemplatesFile:   cfg.TemplatesFile,
		ReceptionsFile:  *receptionsFile,
		DefaultTemplate: cfg.DefaultTemplate,
		GroupTolerance:  cfg.GroupTolerance,
		OutputDir:       *outputDir,
		Format:          cfg.OutputFormat,
		Verbose:         *verbose,
		Help:            *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create and execute command
	cmd := commands.NewReceptionCommand(cmdConfig, log)
	if err := cmd.Execute(ctx); err != nil {
		log.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not on or off", value)
	}
}
