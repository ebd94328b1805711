// Package telemetry groups the observability packages used by docfilter.
//
//   - logging: structured logging on log/slog with scan and filter context
//   - metrics: Prometheus counters and histograms for compilation and scans
//   - health: liveness and readiness probes for the watch server
//
// Logs go to stderr so that query results on stdout stay machine-readable.
// Metrics are off unless telemetry.metrics.enabled is set; the watch command
// then serves them next to the health endpoints.
package telemetry
