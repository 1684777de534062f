package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Output formats accepted by OutputFormat
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

const envPrefix = "PADDY_"

// Config holds the reception tool's settings loaded from the environment.
type Config struct {
	TemplatesFile   string
	DefaultTemplate string
	// GroupTolerance forces grouped (true) or independent (false) tolerances on
	// every reception. Nil leaves the choice to the template and the entries.
	GroupTolerance *bool
	LogLevel       string
	LogFormat      string
	OutputFormat   string
}

// Load reads configuration from PADDY_* environment variables. Values from
// envFile are loaded first without overriding variables already set; an empty
// envFile means an optional .env in the working directory.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		TemplatesFile:   strings.TrimSpace(k.String("templates_file")),
		DefaultTemplate: strings.TrimSpace(k.String("default_template")),
		LogLevel:        strings.ToLower(valueOrDefault(k.String("log_level"), "info")),
		LogFormat:       strings.ToLower(valueOrDefault(k.String("log_format"), "console")),
		OutputFormat:    strings.ToLower(valueOrDefault(k.String("output_format"), FormatText)),
	}

	if raw := strings.TrimSpace(k.String("group_tolerance")); raw != "" {
		enabled, err := parseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("PADDY_GROUP_TOLERANCE: %w", err)
		}
		cfg.GroupTolerance = &enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad behaves like Load but panics on error
func MustLoad(envFile string) *Config {
	cfg, err := Load(envFile)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	if err := ValidateFormat(c.OutputFormat); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (expected console or json)", c.LogFormat)
	}
	return nil
}

// ValidateFormat checks an output format name
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (expected text, json or csv)", format)
	}
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", value)
	}
}
