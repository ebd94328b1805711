// Package metrics provides Prometheus metrics collection for docfilter.
//
// # Metrics
//
//   - Filter metrics: compilations by result, parse errors by kind and
//     compilation duration
//   - Collection metrics: scans by source and status, documents scanned and
//     matched, scan duration
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	q, err := filter.NewCompiler(filter.WithMetrics(collector)).CompileFile(path)
//	scanner := collection.NewScanner(collection.WithMetrics(collector))
//
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// A disabled or nil collector records nothing.
//
// # Cardinality
//
// Source names become label values. After 1000 distinct sources, further
// sources are aggregated under "other".
package metrics
