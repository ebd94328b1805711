package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"mercator-hq/docfilter/pkg/collection"
	"mercator-hq/docfilter/pkg/collection/source"
	"mercator-hq/docfilter/pkg/filter"
	"mercator-hq/docfilter/pkg/telemetry/logging"
)

// ErrNoFilter is returned by Rescan before a filter has compiled.
var ErrNoFilter = errors.New("no filter loaded")

// Runner keeps a compiled filter and re-evaluates it against a source.
// The filter is recompiled from FilterPath by Reload; a failed compile keeps
// the previous filter active. Runs are serialized.
type Runner struct {
	filterPath string
	compiler   *filter.Compiler
	scanner    *collection.Scanner
	source     source.Source
	onResult   func(*collection.Result)
	logger     *slog.Logger

	run sync.Mutex

	mu         sync.RWMutex
	query      *filter.Query
	lastRun    time.Time
	lastResult *collection.Result
	lastErr    error
}

// RunnerConfig wires a Runner.
type RunnerConfig struct {
	FilterPath string
	Compiler   *filter.Compiler
	Scanner    *collection.Scanner
	Source     source.Source

	// OnResult receives each successful scan result.
	OnResult func(*collection.Result)

	Logger *slog.Logger
}

// NewRunner creates a runner. No filter is loaded until Reload is called.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.FilterPath == "" {
		return nil, fmt.Errorf("filter path is required")
	}
	if cfg.Scanner == nil {
		return nil, fmt.Errorf("scanner is required")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("source is required")
	}
	if cfg.Compiler == nil {
		cfg.Compiler = filter.NewCompiler()
	}
	if cfg.OnResult == nil {
		cfg.OnResult = func(*collection.Result) {}
	}

	return &Runner{
		filterPath: cfg.FilterPath,
		compiler:   cfg.Compiler,
		scanner:    cfg.Scanner,
		source:     cfg.Source,
		onResult:   cfg.OnResult,
		logger:     logging.ContextLogger(cfg.Logger),
	}, nil
}

// Reload recompiles the filter file and rescans.
func (r *Runner) Reload(ctx context.Context) error {
	ctx = logging.WithFilter(ctx, r.filterPath)

	q, err := r.compiler.CompileFile(r.filterPath)
	if err != nil {
		r.logger.ErrorContext(ctx, "filter reload failed, keeping previous filter", "error", err)
		r.record(nil, err)
		return err
	}

	r.mu.Lock()
	r.query = q
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "filter loaded", "conditions", q.String())
	return r.Rescan(ctx)
}

// Rescan evaluates the current filter against the source.
func (r *Runner) Rescan(ctx context.Context) error {
	q := r.Query()
	if q == nil {
		return ErrNoFilter
	}

	r.run.Lock()
	defer r.run.Unlock()

	ctx = logging.WithFilter(ctx, r.filterPath)

	result, err := r.scanner.Scan(ctx, q, r.source)
	r.record(result, err)
	if err != nil {
		return err
	}

	r.onResult(result)
	return nil
}

// Query returns the active filter, or nil if none has compiled yet.
func (r *Runner) Query() *filter.Query {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.query
}

// LastResult returns the most recent successful scan result.
func (r *Runner) LastResult() *collection.Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastResult
}

// LastError returns the error of the most recent reload or scan, or nil if
// it succeeded.
func (r *Runner) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// LastRun returns when the most recent reload or scan finished.
func (r *Runner) LastRun() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastRun
}

func (r *Runner) record(result *collection.Result, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastRun = time.Now()
	r.lastErr = err
	if err == nil && result != nil {
		r.lastResult = result
	}
}

// HandleChange routes a burst of file events: if any of them touched the
// filter file it is reloaded, otherwise the documents are rescanned.
func (r *Runner) HandleChange(ctx context.Context) func([]Event) error {
	filterPath := filepath.Clean(r.filterPath)
	return func(events []Event) error {
		if len(events) == 0 {
			return nil
		}
		for _, ev := range events {
			if filepath.Clean(ev.Path) == filterPath {
				r.logger.Info("filter file changed", "path", ev.Path, "op", ev.Op, "events", len(events))
				return r.Reload(ctx)
			}
		}
		r.logger.Info("documents changed", "path", events[0].Path, "op", events[0].Op, "events", len(events))
		return r.Rescan(ctx)
	}
}

// Run loads the filter, then keeps it current until ctx is cancelled.
// The watcher and scheduler are both optional.
func (r *Runner) Run(ctx context.Context, fw *FileWatcher, sched *Scheduler) error {
	if err := r.Reload(ctx); err != nil && r.Query() == nil {
		return fmt.Errorf("initial filter load failed: %w", err)
	}

	if sched != nil {
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	if fw == nil {
		<-ctx.Done()
		return nil
	}

	defer fw.Stop()
	return fw.Watch(ctx, r.HandleChange(ctx))
}

// RescanJob adapts Rescan for the scheduler.
func (r *Runner) RescanJob(ctx context.Context) {
	if err := r.Rescan(ctx); err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Error("scheduled rescan failed", "error", err)
	}
}
