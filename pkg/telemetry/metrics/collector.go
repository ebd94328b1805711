package metrics

import (
	"sync"
	"time"

	"mercator-hq/docfilter/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the entry point for all Prometheus metrics in docfilter.
// A nil *Collector is valid and records nothing, so components can take
// one as an optional dependency.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	filterMetrics *FilterMetrics
	scanMetrics   *ScanMetrics

	// Source names are user supplied; cap how many become label values.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "docfilter"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.ScanDurationBuckets) == 0 {
		cfg.ScanDurationBuckets = append([]float64(nil), config.DefaultScanDurationBuckets...)
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		filterMetrics:      NewFilterMetrics(cfg, registry),
		scanMetrics:        NewScanMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordCompile records a successful filter compilation.
func (c *Collector) RecordCompile(duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.filterMetrics.RecordCompile(duration)
}

// RecordParseError records a failed filter compilation.
//
// Parameters:
//   - kind: parse error kind (e.g., "unknown_operator", "invalid_or_shape")
//   - duration: time spent before the error was detected
func (c *Collector) RecordParseError(kind string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.filterMetrics.RecordParseError(kind, duration)
}

// RecordScan records a completed collection scan.
//
// Example:
//
//	collector.RecordScan("dir:/data/people", 1200, 37, 15*time.Millisecond)
func (c *Collector) RecordScan(source string, scanned, matched int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.scanMetrics.RecordScan(c.sourceLabel(source), scanned, matched, duration)
}

// RecordScanFailure records a scan that ended with an error.
// Status is "error" or "cancelled".
func (c *Collector) RecordScanFailure(source, status string) {
	if !c.enabled() {
		return
	}
	c.scanMetrics.RecordFailure(c.sourceLabel(source), status)
}

func (c *Collector) sourceLabel(source string) string {
	if !c.cardinalityLimiter.Allow(source) {
		return "other"
	}
	return source
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label value may be used. Values already seen are
// always allowed; new values are allowed until the limit is reached.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[label]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
