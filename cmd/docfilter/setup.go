package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/docfilter/pkg/cli"
	"mercator-hq/docfilter/pkg/collection"
	"mercator-hq/docfilter/pkg/collection/source"
	"mercator-hq/docfilter/pkg/config"
	"mercator-hq/docfilter/pkg/filter"
	"mercator-hq/docfilter/pkg/filter/parser"
	"mercator-hq/docfilter/pkg/telemetry/logging"
	"mercator-hq/docfilter/pkg/telemetry/metrics"
)

// sourceFlags are shared by commands that read documents.
type sourceFlags struct {
	kind    string
	path    string
	table   string
	workers int
	limit   int
	timeout time.Duration
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "source", "", "document source: dir or sqlite (default from config)")
	cmd.Flags().StringVarP(&f.path, "path", "p", "", "document directory or SQLite database path")
	cmd.Flags().StringVar(&f.table, "table", "", "SQLite table holding the documents")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "evaluation workers (default from config)")
	cmd.Flags().IntVar(&f.limit, "limit", -1, "stop after N matches (0 = unlimited)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "abort a scan after this long")
	_ = cmd.RegisterFlagCompletionFunc("source", completeValues("dir", "sqlite"))
}

// apply copies explicitly set flags over the configuration.
func (f *sourceFlags) apply(cfg *config.Config) error {
	if f.kind != "" {
		cfg.Source.Type = f.kind
	}
	if f.path != "" {
		cfg.Source.Path = f.path
	}
	if f.table != "" {
		cfg.Source.Table = f.table
	}
	if f.workers > 0 {
		cfg.Scanner.Workers = f.workers
	}
	if f.limit >= 0 {
		cfg.Scanner.Limit = f.limit
	}
	if f.timeout > 0 {
		cfg.Scanner.Timeout = f.timeout
	}

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("flags", err.Error())
	}
	return nil
}

// env is what every command needs once configuration is resolved.
type env struct {
	cfg      *config.Config
	logger   *logging.Logger
	metrics  *metrics.Collector
	compiler *filter.Compiler
}

// loadConfig reads --config and DOCFILTER_* overrides, then applies global
// flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	return cfg, nil
}

func newEnv(cfg *config.Config, logOut io.Writer) (*env, error) {
	if logOut == nil {
		logOut = os.Stderr
	}

	logger, err := logging.FromConfig(cfg.Telemetry.Logging, logOut)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	p := parser.NewParser().
		WithMaxDepth(cfg.Parser.MaxDepth).
		WithMaxSpecSize(cfg.Parser.MaxSpecSize)

	compiler := filter.NewCompiler(
		filter.WithParser(p),
		filter.WithLogger(logger.Slog()),
		filter.WithMetrics(collector),
	)

	return &env{
		cfg:      cfg,
		logger:   logger,
		metrics:  collector,
		compiler: compiler,
	}, nil
}

func (e *env) newScanner() (*collection.Scanner, error) {
	return collection.FromConfig(e.cfg.Scanner,
		collection.WithLogger(e.logger.Slog()),
		collection.WithMetrics(e.metrics),
	)
}

func (e *env) openSource() (source.Source, func() error, error) {
	src, closer, err := source.FromConfig(e.cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s source %q: %w", e.cfg.Source.Type, e.cfg.Source.Path, err)
	}
	return src, closer, nil
}
