package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// ScanIDKey is the context key for collection scan IDs.
	ScanIDKey contextKey = "scan_id"

	// SourceKey is the context key for document source names.
	SourceKey contextKey = "source"

	// FilterKey is the context key for the filter file being run.
	FilterKey contextKey = "filter"
)

// WithScanID adds a scan ID to the context.
func WithScanID(ctx context.Context, scanID string) context.Context {
	return context.WithValue(ctx, ScanIDKey, scanID)
}

// GetScanID retrieves the scan ID from the context.
func GetScanID(ctx context.Context) string {
	if scanID, ok := ctx.Value(ScanIDKey).(string); ok {
		return scanID
	}
	return ""
}

// WithSource adds a document source name to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the document source name from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// WithFilter adds a filter file name to the context.
func WithFilter(ctx context.Context, filter string) context.Context {
	return context.WithValue(ctx, FilterKey, filter)
}

// GetFilter retrieves the filter file name from the context.
func GetFilter(ctx context.Context) string {
	if filter, ok := ctx.Value(FilterKey).(string); ok {
		return filter
	}
	return ""
}

// extractContextFields returns the context fields as key-value pairs
// suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if scanID := GetScanID(ctx); scanID != "" {
		fields = append(fields, "scan_id", scanID)
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, "source", source)
	}
	if filter := GetFilter(ctx); filter != "" {
		fields = append(fields, "filter", filter)
	}

	return fields
}

// ContextHandler adds the scan fields stored in a record's context to the
// record before passing it on.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler wraps h. Wrapping a ContextHandler returns it unchanged.
func NewContextHandler(h slog.Handler) *ContextHandler {
	if ch, ok := h.(*ContextHandler); ok {
		return ch
	}
	return &ContextHandler{Handler: h}
}

// Handle implements slog.Handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if fields := extractContextFields(ctx); len(fields) > 0 {
		r.Add(fields...)
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// ContextLogger returns a logger whose records carry the scan fields of the
// context they are logged with. A nil logger means slog.Default().
func ContextLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if _, ok := logger.Handler().(*ContextHandler); ok {
		return logger
	}
	return slog.New(NewContextHandler(logger.Handler()))
}
