package metrics

import (
	"time"

	"mercator-hq/docfilter/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// FilterMetrics tracks filter compilation.
//
// Metrics:
//   - docfilter_filter_compilations_total: Compilations by result ("success", "error")
//   - docfilter_filter_parse_errors_total: Parse errors by error kind
//   - docfilter_filter_compile_duration_seconds: Compilation duration
type FilterMetrics struct {
	compilationsTotal *prometheus.CounterVec
	parseErrorsTotal  *prometheus.CounterVec
	compileDuration   prometheus.Histogram
}

// NewFilterMetrics creates and registers filter metrics with the provided registry.
func NewFilterMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *FilterMetrics {
	fm := &FilterMetrics{
		compilationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "filter",
				Name:      "compilations_total",
				Help:      "Total number of filter compilations",
			},
			[]string{"result"},
		),

		parseErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "filter",
				Name:      "parse_errors_total",
				Help:      "Total number of filter parse errors by kind",
			},
			[]string{"kind"},
		),

		compileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "filter",
				Name:      "compile_duration_seconds",
				Help:      "Duration of filter compilation in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
		),
	}

	registry.MustRegister(
		fm.compilationsTotal,
		fm.parseErrorsTotal,
		fm.compileDuration,
	)

	return fm
}

// RecordCompile records a successful compilation.
func (fm *FilterMetrics) RecordCompile(duration time.Duration) {
	fm.compilationsTotal.WithLabelValues("success").Inc()
	fm.compileDuration.Observe(duration.Seconds())
}

// RecordParseError records a failed compilation with the parse error kind
// (e.g. "unknown_operator").
func (fm *FilterMetrics) RecordParseError(kind string, duration time.Duration) {
	fm.compilationsTotal.WithLabelValues("error").Inc()
	fm.parseErrorsTotal.WithLabelValues(kind).Inc()
	fm.compileDuration.Observe(duration.Seconds())
}
