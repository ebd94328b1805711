package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mercator-hq/docfilter/pkg/collection"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is a single JSON document.
	FormatJSON OutputFormat = "json"
	// FormatJSONLines is one JSON value per line.
	FormatJSONLines OutputFormat = "jsonl"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatJSONLines:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", NewConfigError("--format", fmt.Sprintf("unknown format %q (want text, json or jsonl)", s))
	}
}

// Formatter writes command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter writes human-readable output. Scan results are printed one
// match per line as "id<TAB>document".
type TextFormatter struct{}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case *collection.Result:
		for _, m := range v.Matches {
			doc, err := json.Marshal(m.Doc)
			if err != nil {
				return fmt.Errorf("failed to encode document %s: %w", m.ID, err)
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\n", m.ID, doc); err != nil {
				return err
			}
		}
		return nil
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, v.String())
		return err
	default:
		_, err := fmt.Fprintf(w, "%v\n", v)
		return err
	}
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// JSONLinesFormatter writes one compact JSON value per line: each match of a
// scan result, or data itself otherwise.
type JSONLinesFormatter struct{}

// FormatTo writes data to writer in JSON Lines format.
func (f *JSONLinesFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if r, ok := data.(*collection.Result); ok {
		for _, m := range r.Matches {
			if err := encoder.Encode(m); err != nil {
				return err
			}
		}
		return nil
	}
	return encoder.Encode(data)
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatJSONLines:
		return &JSONLinesFormatter{}
	default:
		return &TextFormatter{}
	}
}
