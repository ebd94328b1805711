// Package logging provides structured logging for docfilter.
//
// The package wraps log/slog with level and format parsing that follows the
// telemetry.logging configuration section, and with context helpers that
// attach scan identifiers to every record.
//
//	logger, err := logging.FromConfig(cfg.Telemetry.Logging, os.Stderr)
//
//	ctx = logging.WithScanID(ctx, scanID)
//	logger.InfoContext(ctx, "scan completed", "matched", 12)
//	// ... scan_id=4f6c... matched=12
//
// Components that accept a plain *slog.Logger receive logger.Slog().
package logging
