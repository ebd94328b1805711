package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultParserMaxDepth    = 32
	DefaultParserMaxSpecSize = int64(1 << 20) // 1MB

	// Scanner defaults
	DefaultScannerWorkers = 8

	// Source defaults
	DefaultSourceType  = "dir"
	DefaultSourcePath  = "."
	DefaultSourceTable = "documents"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsAddress   = "127.0.0.1:9090"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "docfilter"
)

// DefaultScanDurationBuckets are the scan duration histogram buckets in seconds.
var DefaultScanDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// ApplyDefaults fills every unset field with its default value.
// Fields that already have a value are left untouched.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = DefaultParserMaxDepth
	}
	if cfg.Parser.MaxSpecSize == 0 {
		cfg.Parser.MaxSpecSize = DefaultParserMaxSpecSize
	}

	// Scanner defaults
	if cfg.Scanner.Workers == 0 {
		cfg.Scanner.Workers = DefaultScannerWorkers
	}

	// Source defaults
	if cfg.Source.Type == "" {
		cfg.Source.Type = DefaultSourceType
	}
	if cfg.Source.Path == "" {
		cfg.Source.Path = DefaultSourcePath
	}
	if cfg.Source.Table == "" {
		cfg.Source.Table = DefaultSourceTable
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = DefaultMetricsAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Metrics.ScanDurationBuckets) == 0 {
		cfg.Metrics.ScanDurationBuckets = append([]float64(nil), DefaultScanDurationBuckets...)
	}
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
