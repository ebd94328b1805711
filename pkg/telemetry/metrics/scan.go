package metrics

import (
	"time"

	"mercator-hq/docfilter/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ScanMetrics tracks collection scans.
//
// Metrics:
//   - docfilter_collection_scans_total: Scans by source and status
//   - docfilter_collection_documents_scanned_total: Documents evaluated by source
//   - docfilter_collection_documents_matched_total: Documents matched by source
//   - docfilter_collection_scan_duration_seconds: Scan duration by source
type ScanMetrics struct {
	scansTotal       *prometheus.CounterVec
	documentsScanned *prometheus.CounterVec
	documentsMatched *prometheus.CounterVec
	scanDuration     *prometheus.HistogramVec
}

// NewScanMetrics creates and registers scan metrics with the provided registry.
func NewScanMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ScanMetrics {
	sm := &ScanMetrics{
		scansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "collection",
				Name:      "scans_total",
				Help:      "Total number of collection scans",
			},
			[]string{"source", "status"},
		),

		documentsScanned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "collection",
				Name:      "documents_scanned_total",
				Help:      "Total number of documents evaluated",
			},
			[]string{"source"},
		),

		documentsMatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "collection",
				Name:      "documents_matched_total",
				Help:      "Total number of documents that matched the filter",
			},
			[]string{"source"},
		),

		scanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "collection",
				Name:      "scan_duration_seconds",
				Help:      "Duration of collection scans in seconds",
				Buckets:   cfg.ScanDurationBuckets,
			},
			[]string{"source"},
		),
	}

	registry.MustRegister(
		sm.scansTotal,
		sm.documentsScanned,
		sm.documentsMatched,
		sm.scanDuration,
	)

	return sm
}

// RecordScan records a completed scan.
func (sm *ScanMetrics) RecordScan(source string, scanned, matched int, duration time.Duration) {
	sm.scansTotal.WithLabelValues(source, "success").Inc()
	sm.documentsScanned.WithLabelValues(source).Add(float64(scanned))
	sm.documentsMatched.WithLabelValues(source).Add(float64(matched))
	sm.scanDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordFailure records a scan that failed or was cancelled.
func (sm *ScanMetrics) RecordFailure(source, status string) {
	sm.scansTotal.WithLabelValues(source, status).Inc()
}
