package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/docfilter/pkg/cli"
	"mercator-hq/docfilter/pkg/collection"
	"mercator-hq/docfilter/pkg/config"
	"mercator-hq/docfilter/pkg/telemetry/health"
	"mercator-hq/docfilter/pkg/watch"
)

var watchFlags struct {
	filter      string
	source      sourceFlags
	format      string
	schedule    string
	debounce    time.Duration
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run a filter whenever it or its documents change",
	Long: `Compile a filter, print its matches, and keep them current.

The filter file is watched for changes; an edit recompiles it and rescans.
If the new version fails to compile, the error is logged and the previous
filter stays active. For directory sources the document directory is watched
too. An optional cron schedule rescans periodically, which is the only way
to pick up changes to a SQLite source.

With --metrics-addr (or telemetry.metrics.enabled) an HTTP server exposes
Prometheus metrics and /healthz, /readyz and /version.

Examples:
  docfilter watch --filter thomas.yaml --path people/
  docfilter watch --filter adults.json --source sqlite --path people.db \
    --schedule "*/5 * * * *" --metrics-addr :9090`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.filter, "filter", "f", "", "filter file (JSON or YAML)")
	watchFlags.source.register(watchCmd)
	watchCmd.Flags().StringVar(&watchFlags.format, "format", "jsonl", "output format: text, json, jsonl")
	_ = watchCmd.RegisterFlagCompletionFunc("format", completeValues("text", "json", "jsonl"))
	_ = watchCmd.RegisterFlagCompletionFunc("filter", completeFilterFiles)
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron schedule for periodic rescans, e.g. \"*/5 * * * *\"")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before reacting to file changes")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve metrics and health endpoints on this address")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFlags.filter == "" {
		return cli.NewConfigError("--filter", "a filter file is required")
	}
	format, err := cli.ParseFormat(watchFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchFlags.schedule != "" {
		cfg.Watch.Schedule = watchFlags.schedule
	}
	if watchFlags.debounce > 0 {
		cfg.Watch.Debounce = watchFlags.debounce
	}
	if watchFlags.metricsAddr != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.Address = watchFlags.metricsAddr
	}
	if err := watchFlags.source.apply(cfg); err != nil {
		return err
	}

	e, err := newEnv(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger := e.logger.Slog()

	src, closeSource, err := e.openSource()
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() { _ = closeSource() }()

	scanner, err := e.newScanner()
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() { _ = scanner.Close() }()

	out := cmd.OutOrStdout()
	formatter := cli.NewFormatter(format)
	var outMu sync.Mutex

	runner, err := watch.NewRunner(watch.RunnerConfig{
		FilterPath: watchFlags.filter,
		Compiler:   e.compiler,
		Scanner:    scanner,
		Source:     src,
		Logger:     logger,
		OnResult: func(r *collection.Result) {
			outMu.Lock()
			defer outMu.Unlock()
			if err := formatter.FormatTo(out, r); err != nil {
				logger.Error("failed to write result", "error", err)
			}
		},
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	paths := []string{watchFlags.filter}
	if cfg.Source.Type == "dir" {
		paths = append(paths, cfg.Source.Path)
	}
	fw, err := watch.NewFileWatcher(&watch.FileWatcherConfig{
		Paths:            paths,
		DebounceInterval: cfg.Watch.Debounce,
	}, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	var sched *watch.Scheduler
	if cfg.Watch.Schedule != "" {
		sched, err = watch.NewScheduler(cfg.Watch.Schedule, runner.RescanJob, logger)
		if err != nil {
			return cli.NewConfigError("watch.schedule", err.Error())
		}
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	if cfg.Telemetry.Metrics.Enabled {
		srv, err := startTelemetryServer(ctx, cfg, e, runner, sched)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry server shutdown failed", "error", err)
			}
		}()
	}

	if err := runner.Run(ctx, fw, sched); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// telemetryRateLimit bounds requests per second to the telemetry server.
const telemetryRateLimit = 20

// startTelemetryServer serves metrics and health probes until Shutdown.
func startTelemetryServer(ctx context.Context, cfg *config.Config, e *env, runner *watch.Runner, sched *watch.Scheduler) (*http.Server, error) {
	checker := health.New(2 * time.Second)
	checker.Register("filter", func(context.Context) error {
		if runner.Query() == nil {
			return watch.ErrNoFilter
		}
		return nil
	})
	checker.Register("scan", health.LastErrorCheck(runner.LastError))
	if sched != nil {
		checker.Register("freshness", health.FreshnessCheck(runner.LastRun, 2*sched.Interval()))
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Telemetry.Metrics.Path, e.metrics.Handler())
	health.Mount(mux, checker, health.NewVersionInfo(Version, GitCommit, BuildDate))

	ln, err := net.Listen("tcp", cfg.Telemetry.Metrics.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Telemetry.Metrics.Address, err)
	}

	srv := &http.Server{
		Handler:           health.RateLimited(mux, telemetryRateLimit, 2*telemetryRateLimit),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("telemetry server failed", "error", err)
		}
	}()

	e.logger.Info("telemetry server listening",
		"address", ln.Addr().String(),
		"metrics_path", cfg.Telemetry.Metrics.Path,
	)
	return srv, nil
}
