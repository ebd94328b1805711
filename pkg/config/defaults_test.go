package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input Config
		check func(*testing.T, *Config)
	}{
		{
			name:  "empty config gets all defaults",
			input: Config{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Parser.MaxDepth != DefaultParserMaxDepth {
					t.Errorf("expected max depth %d, got %d", DefaultParserMaxDepth, cfg.Parser.MaxDepth)
				}
				if cfg.Parser.MaxSpecSize != DefaultParserMaxSpecSize {
					t.Errorf("expected max spec size %d, got %d", DefaultParserMaxSpecSize, cfg.Parser.MaxSpecSize)
				}
				if cfg.Scanner.Workers != DefaultScannerWorkers {
					t.Errorf("expected workers %d, got %d", DefaultScannerWorkers, cfg.Scanner.Workers)
				}
				if cfg.Source.Type != DefaultSourceType {
					t.Errorf("expected source type %q, got %q", DefaultSourceType, cfg.Source.Type)
				}
				if cfg.Source.Table != DefaultSourceTable {
					t.Errorf("expected table %q, got %q", DefaultSourceTable, cfg.Source.Table)
				}
				if cfg.Watch.Debounce != DefaultWatchDebounce {
					t.Errorf("expected debounce %v, got %v", DefaultWatchDebounce, cfg.Watch.Debounce)
				}
				if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
					t.Errorf("expected logging level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
				}
				if cfg.Telemetry.Metrics.Path != DefaultMetricsPath {
					t.Errorf("expected metrics path %q, got %q", DefaultMetricsPath, cfg.Telemetry.Metrics.Path)
				}
				if len(cfg.Telemetry.Metrics.ScanDurationBuckets) != len(DefaultScanDurationBuckets) {
					t.Errorf("expected %d buckets, got %d", len(DefaultScanDurationBuckets), len(cfg.Telemetry.Metrics.ScanDurationBuckets))
				}
				if cfg.Telemetry.Metrics.Enabled {
					t.Error("expected metrics to be disabled by default")
				}
			},
		},
		{
			name: "existing values are preserved",
			input: Config{
				Parser:  ParserConfig{MaxDepth: 4},
				Scanner: ScannerConfig{Workers: 2, Limit: 10},
				Source:  SourceConfig{Type: "sqlite", Path: "db.sqlite", Table: "people"},
				Watch:   WatchConfig{Debounce: time.Second},
				Telemetry: TelemetryConfig{
					Logging: LoggingConfig{Level: "debug", Format: "json"},
				},
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Parser.MaxDepth != 4 {
					t.Errorf("expected max depth 4, got %d", cfg.Parser.MaxDepth)
				}
				if cfg.Scanner.Workers != 2 || cfg.Scanner.Limit != 10 {
					t.Errorf("unexpected scanner config %+v", cfg.Scanner)
				}
				if cfg.Source.Table != "people" {
					t.Errorf("expected table %q, got %q", "people", cfg.Source.Table)
				}
				if cfg.Watch.Debounce != time.Second {
					t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
				}
				if cfg.Telemetry.Logging.Format != "json" {
					t.Errorf("expected format json, got %q", cfg.Telemetry.Logging.Format)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			ApplyDefaults(&cfg)
			tt.check(t, &cfg)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestApplyDefaults_BucketsNotShared(t *testing.T) {
	cfg := Default()
	cfg.Telemetry.Metrics.ScanDurationBuckets[0] = 42

	if DefaultScanDurationBuckets[0] == 42 {
		t.Error("modifying config buckets changed the package defaults")
	}
}
