package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mercator-hq/docfilter/pkg/collection/source"
	"mercator-hq/docfilter/pkg/config"
	"mercator-hq/docfilter/pkg/document"
	"mercator-hq/docfilter/pkg/telemetry/logging"
	"mercator-hq/docfilter/pkg/telemetry/metrics"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

// releaseTimeout bounds how long Close waits for running evaluations.
const releaseTimeout = 3 * time.Second

// Matcher is the query interface the scanner needs; *filter.Query implements it.
type Matcher interface {
	Match(doc any) bool
}

// Result is the outcome of one scan.
type Result struct {
	ScanID    string            `json:"scan_id"`
	Source    string            `json:"source"`
	Matches   []document.Record `json:"matches"`
	Scanned   int               `json:"scanned"`
	Truncated bool              `json:"truncated"` // more matches existed beyond Limit
	Duration  time.Duration     `json:"duration_ns"`
}

// Scanner evaluates queries against sources on a bounded worker pool.
// It is safe for concurrent use; concurrent scans share the pool.
type Scanner struct {
	workers int
	limit   int
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Collector

	pool *ants.Pool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLimit keeps at most n matches (0 = unlimited).
func WithLimit(n int) Option {
	return func(s *Scanner) {
		if n >= 0 {
			s.limit = n
		}
	}
}

// WithTimeout bounds each scan (0 = no timeout).
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records scans on the collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Scanner) {
		s.metrics = collector
	}
}

// NewScanner creates a scanner and its worker pool. Close releases the pool.
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		workers: config.DefaultScannerWorkers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.ContextLogger(s.logger)

	pool, err := ants.NewPool(s.workers, ants.WithPanicHandler(func(v any) {
		s.logger.Error("document evaluation panic", "panic", v)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	s.pool = pool

	return s, nil
}

// FromConfig creates a scanner from the scanner configuration section.
// Additional options are applied after the configuration.
func FromConfig(cfg config.ScannerConfig, opts ...Option) (*Scanner, error) {
	base := []Option{
		WithWorkers(cfg.Workers),
		WithLimit(cfg.Limit),
		WithTimeout(cfg.Timeout),
	}
	return NewScanner(append(base, opts...)...)
}

// Close releases the worker pool, waiting briefly for running evaluations.
func (s *Scanner) Close() error {
	return s.pool.ReleaseTimeout(releaseTimeout)
}

// Scan evaluates q against every record of src and returns the matching
// records in source order.
func (s *Scanner) Scan(ctx context.Context, q Matcher, src source.Source) (*Result, error) {
	start := time.Now()
	scanID := uuid.New().String()
	ctx = logging.WithSource(logging.WithScanID(ctx, scanID), src.Name())

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	records, err := src.Records(ctx)
	if err != nil {
		s.metrics.RecordScanFailure(src.Name(), failureStatus(err))
		s.logger.ErrorContext(ctx, "failed to load documents", "error", err)
		return nil, fmt.Errorf("failed to load documents from %s: %w", src.Name(), err)
	}

	matched, err := s.evaluate(ctx, q, records)
	if err != nil {
		s.metrics.RecordScanFailure(src.Name(), failureStatus(err))
		s.logger.WarnContext(ctx, "scan aborted", "error", err, "documents", len(records))
		return nil, fmt.Errorf("scan %s aborted: %w", scanID, err)
	}

	res := &Result{
		ScanID:  scanID,
		Source:  src.Name(),
		Scanned: len(records),
		Matches: []document.Record{},
	}
	for i, ok := range matched {
		if !ok {
			continue
		}
		if s.limit > 0 && len(res.Matches) == s.limit {
			res.Truncated = true
			break
		}
		res.Matches = append(res.Matches, records[i])
	}
	res.Duration = time.Since(start)

	s.metrics.RecordScan(src.Name(), res.Scanned, len(res.Matches), res.Duration)
	s.logger.InfoContext(ctx, "scan completed",
		"scanned", res.Scanned,
		"matched", len(res.Matches),
		"truncated", res.Truncated,
		"duration", res.Duration,
	)

	return res, nil
}

// evaluate runs q over records on the pool. Each worker writes only its own
// slot, so the verdicts line up with the records.
func (s *Scanner) evaluate(ctx context.Context, q Matcher, records []document.Record) ([]bool, error) {
	matched := make([]bool, len(records))
	var wg sync.WaitGroup

	for i := range records {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		i := i
		if err := s.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			matched[i] = q.Match(records[i].Doc)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("failed to submit evaluation: %w", err)
		}
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return matched, nil
}

func failureStatus(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "cancelled"
	}
	return "error"
}
