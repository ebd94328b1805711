package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

// tableNamePattern restricts SQLite table names to plain identifiers since
// they are interpolated into queries.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "scanner.workers").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateParser(&cfg.Parser)...)
	errs = append(errs, validateScanner(&cfg.Scanner)...)
	errs = append(errs, validateSource(&cfg.Source)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateParser(cfg *ParserConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxDepth <= 0 {
		errs = append(errs, FieldError{
			Field:   "parser.max_depth",
			Message: "max depth must be positive",
		})
	}
	if cfg.MaxSpecSize <= 0 {
		errs = append(errs, FieldError{
			Field:   "parser.max_spec_size",
			Message: "max spec size must be positive",
		})
	}

	return errs
}

func validateScanner(cfg *ScannerConfig) []FieldError {
	var errs []FieldError

	if cfg.Workers <= 0 {
		errs = append(errs, FieldError{
			Field:   "scanner.workers",
			Message: "workers must be positive",
		})
	}
	if cfg.Limit < 0 {
		errs = append(errs, FieldError{
			Field:   "scanner.limit",
			Message: "limit cannot be negative",
		})
	}
	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "scanner.timeout",
			Message: "timeout cannot be negative",
		})
	}

	return errs
}

func validateSource(cfg *SourceConfig) []FieldError {
	var errs []FieldError

	switch cfg.Type {
	case "dir", "sqlite":
	case "":
		errs = append(errs, FieldError{
			Field:   "source.type",
			Message: "source type is required",
		})
	default:
		errs = append(errs, FieldError{
			Field:   "source.type",
			Message: fmt.Sprintf("invalid source type %q: must be 'dir' or 'sqlite'", cfg.Type),
		})
	}

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "source.path",
			Message: "source path is required",
		})
	}

	if cfg.Type == "sqlite" && !tableNamePattern.MatchString(cfg.Table) {
		errs = append(errs, FieldError{
			Field:   "source.table",
			Message: fmt.Sprintf("invalid table name %q: must be a plain identifier", cfg.Table),
		})
	}

	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce cannot be negative",
		})
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "watch.schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Path == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path is required when metrics are enabled",
			})
		} else if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: fmt.Sprintf("metrics path %q must start with '/'", cfg.Metrics.Path),
			})
		}
		if cfg.Metrics.Address == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.address",
				Message: "metrics address is required when metrics are enabled",
			})
		}
	}

	for i := 1; i < len(cfg.Metrics.ScanDurationBuckets); i++ {
		if cfg.Metrics.ScanDurationBuckets[i] <= cfg.Metrics.ScanDurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.scan_duration_buckets",
				Message: "buckets must be in strictly increasing order",
			})
			break
		}
	}

	return errs
}
