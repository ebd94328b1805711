package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docfilter.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
parser:
  max_depth: 16
scanner:
  workers: 4
  limit: 100
  timeout: "30s"
source:
  type: "sqlite"
  path: "data/people.db"
  table: "people"
watch:
  debounce: "250ms"
  schedule: "*/5 * * * *"
telemetry:
  logging:
    level: "debug"
    format: "json"
  metrics:
    enabled: true
    address: ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxDepth != 16 {
		t.Errorf("expected max depth 16, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.Parser.MaxSpecSize != DefaultParserMaxSpecSize {
		t.Errorf("expected default max spec size, got %d", cfg.Parser.MaxSpecSize)
	}
	if cfg.Scanner.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Scanner.Timeout)
	}
	if cfg.Source.Type != "sqlite" || cfg.Source.Table != "people" {
		t.Errorf("unexpected source config %+v", cfg.Source)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Metrics.Path != DefaultMetricsPath {
		t.Errorf("expected default metrics path, got %q", cfg.Telemetry.Metrics.Path)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			content: "scanner: [workers",
			wantErr: "failed to parse configuration file",
		},
		{
			name:    "invalid source type",
			content: "source:\n  type: mongo\n",
			wantErr: "source.type",
		},
		{
			name:    "invalid cron schedule",
			content: "watch:\n  schedule: \"every minute\"\n",
			wantErr: "watch.schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
scanner:
  workers: 4
source:
  path: "docs"
`)

	t.Setenv("DOCFILTER_SCANNER_WORKERS", "16")
	t.Setenv("DOCFILTER_SCANNER_TIMEOUT", "5s")
	t.Setenv("DOCFILTER_SOURCE_PATH", "/var/lib/docs")
	t.Setenv("DOCFILTER_PARSER_MAX_SPEC_SIZE", "2048")
	t.Setenv("DOCFILTER_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("DOCFILTER_TELEMETRY_METRICS_ENABLED", "true")
	t.Setenv("DOCFILTER_PARSER_MAX_DEPTH", "not-a-number")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Scanner.Workers != 16 {
		t.Errorf("expected workers 16, got %d", cfg.Scanner.Workers)
	}
	if cfg.Scanner.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Scanner.Timeout)
	}
	if cfg.Source.Path != "/var/lib/docs" {
		t.Errorf("expected source path override, got %q", cfg.Source.Path)
	}
	if cfg.Parser.MaxSpecSize != 2048 {
		t.Errorf("expected max spec size 2048, got %d", cfg.Parser.MaxSpecSize)
	}
	if cfg.Parser.MaxDepth != DefaultParserMaxDepth {
		t.Errorf("unparseable override should be ignored, got max depth %d", cfg.Parser.MaxDepth)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics enabled by override")
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("DOCFILTER_SOURCE_TYPE", "sqlite")
	t.Setenv("DOCFILTER_SOURCE_PATH", "people.db")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Source.Type != "sqlite" || cfg.Source.Table != DefaultSourceTable {
		t.Errorf("unexpected source config %+v", cfg.Source)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("DOCFILTER_TELEMETRY_LOGGING_FORMAT", "xml")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("unexpected error: %v", err)
	}
}
