package config

import "time"

// Config is the root configuration structure for docfilter.
// It contains the parser limits, scanner tuning, the document source,
// watch mode and telemetry settings.
type Config struct {
	// Parser contains limits applied when compiling filter specifications.
	Parser ParserConfig `yaml:"parser"`

	// Scanner contains worker pool and result settings for collection scans.
	Scanner ScannerConfig `yaml:"scanner"`

	// Source selects where documents are read from.
	Source SourceConfig `yaml:"source"`

	// Watch contains settings for re-running a query on filter changes
	// and on a schedule.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains limits for the filter parser.
type ParserConfig struct {
	// MaxDepth is the maximum nesting depth of $or/$and groups.
	// Default: 32
	MaxDepth int `yaml:"max_depth"`

	// MaxSpecSize is the maximum size in bytes of a filter file.
	// Default: 1048576 (1MB)
	MaxSpecSize int64 `yaml:"max_spec_size"`
}

// ScannerConfig contains configuration for the collection scanner.
type ScannerConfig struct {
	// Workers is the size of the evaluation worker pool.
	// Default: 8
	Workers int `yaml:"workers"`

	// Limit stops the scan after this many matches (0 = unlimited).
	// Default: 0
	Limit int `yaml:"limit"`

	// Timeout bounds a single scan (0 = no timeout).
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`
}

// SourceConfig selects the document source.
type SourceConfig struct {
	// Type is the source kind.
	// Options: "dir", "sqlite"
	// Default: "dir"
	Type string `yaml:"type"`

	// Path is the directory for "dir" sources or the database file for
	// "sqlite" sources.
	// Default: "."
	Path string `yaml:"path"`

	// Table is the SQLite table holding documents.
	// Default: "documents"
	Table string `yaml:"table"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after the last filter file change
	// before re-running the query.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic rescans.
	// Example: "*/5 * * * *"
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Address is the listen address of the metrics endpoint in watch mode.
	// Default: "127.0.0.1:9090"
	Address string `yaml:"address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "docfilter"
	Namespace string `yaml:"namespace"`

	// ScanDurationBuckets defines histogram buckets for scan duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	ScanDurationBuckets []float64 `yaml:"scan_duration_buckets"`
}
