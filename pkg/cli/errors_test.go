package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	filtererrors "mercator-hq/docfilter/pkg/filter/errors"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("--source", "must be dir or sqlite")

	want := "config error in --source: must be dir or sqlite"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("open people.db: no such file")
	err := NewCommandError("query", inner)

	if !strings.Contains(err.Error(), "command query failed") {
		t.Errorf("Error() = %q, missing command name", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestExitCode(t *testing.T) {
	parseErr := filtererrors.New(filtererrors.KindUnknownOperator, "$regex", "name", "unknown operator")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("boom"), ExitFailure},
		{"config", NewConfigError("--limit", "must not be negative"), ExitInvalid},
		{"parse error", parseErr, ExitInvalid},
		{"wrapped parse error", NewCommandError("query", fmt.Errorf("compile filter: %w", parseErr)), ExitInvalid},
		{"wrapped runtime error", NewCommandError("query", errors.New("read source")), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
