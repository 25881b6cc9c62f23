// Package config loads gitstats settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

// Config is the top-level configuration struct for gitstats.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Aggregators []string        `mapstructure:"aggregators"`
	Output      OutputConfig    `mapstructure:"output"`
	Pipeline    PipelineConfig  `mapstructure:"pipeline"`
	History     HistoryConfig   `mapstructure:"history"`
	CoChange    CoChangeConfig  `mapstructure:"cochange"`
	Extensions  ExtensionConfig `mapstructure:"extensions"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

// OutputConfig selects the report rendering.
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	MetricsFile string `mapstructure:"metrics_file"`
}

// PipelineConfig holds aggregation driver knobs.
type PipelineConfig struct {
	Workers int `mapstructure:"workers"`
}

// HistoryConfig controls which commits are walked.
type HistoryConfig struct {
	FirstParent bool   `mapstructure:"first_parent"`
	Limit       int    `mapstructure:"limit"`
	Since       string `mapstructure:"since"`
	NewestFirst bool   `mapstructure:"newest_first"`
}

// CoChangeConfig holds co-change detector settings.
type CoChangeConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Window  int  `mapstructure:"window"`
}

// ExtensionConfig holds extension counter settings.
type ExtensionConfig struct {
	SkipVendor bool `mapstructure:"skip_vendor"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	Environment  string `mapstructure:"environment"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("pipeline.workers must be non-negative")
	// ErrInvalidLimit indicates the history limit is negative.
	ErrInvalidLimit = errors.New("history.limit must be non-negative")
	// ErrInvalidSince indicates history.since is not a date.
	ErrInvalidSince = errors.New("history.since must be YYYY-MM-DD or RFC 3339")
	// ErrInvalidWindow indicates the co-change window is negative.
	ErrInvalidWindow = errors.New("cochange.window must be non-negative")
	// ErrInvalidLogLevel indicates an unknown logging level.
	ErrInvalidLogLevel = errors.New("logging.level must be debug, info, warn or error")
)

var logLevels = []string{"debug", "info", "warn", "error"}

// sinceLayouts are accepted history.since formats.
var sinceLayouts = []string{time.DateOnly, time.RFC3339}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Pipeline.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.History.Limit < 0 {
		return ErrInvalidLimit
	}

	_, err := c.Since()
	if err != nil {
		return err
	}

	if c.CoChange.Window < 0 {
		return ErrInvalidWindow
	}

	if c.Logging.Level != "" && !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	if c.Output.Format != "" {
		_, formatErr := report.NormalizeFormat(c.Output.Format)
		if formatErr != nil {
			return fmt.Errorf("output.format: %w", formatErr)
		}
	}

	return nil
}

// Since parses history.since. An empty value yields the zero time.
func (c *Config) Since() (time.Time, error) {
	return ParseSince(c.History.Since)
}

// ParseSince parses a date in one of the accepted layouts.
func ParseSince(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range sinceLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSince, value)
}

// AggregatorPatterns returns the selection patterns, adding the co-change
// detector when it is enabled and not already named.
func (c *Config) AggregatorPatterns(cochangeFlag string) []string {
	patterns := slices.Clone(c.Aggregators)

	if !c.CoChange.Enabled || slices.Contains(patterns, cochangeFlag) {
		return patterns
	}

	if len(patterns) == 0 {
		patterns = append(patterns, analyze.DefaultSelector)
	}

	return append(patterns, cochangeFlag)
}
