package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(KindUnknownOperator, "$gtt", "age.$gtt", `unknown operator "$gtt"`)
	err.Suggestion = "Did you mean '$gt'?"

	got := err.Error()
	for _, want := range []string{
		`[unknown_operator] unknown operator "$gtt"`,
		"--> age.$gtt",
		"= suggestion: Did you mean '$gt'?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind     Kind
		sentinel error
	}{
		{KindUnknownOperator, ErrUnknownOperator},
		{KindInvalidOrShape, ErrInvalidOrShape},
		{KindInvalidNotShape, ErrInvalidNotShape},
		{KindInvalidAndShape, ErrInvalidAndShape},
		{KindInvalidSpec, ErrInvalidSpec},
		{KindMaxDepthExceeded, ErrMaxDepthExceeded},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			wrapped := fmt.Errorf("compile: %w", New(tt.kind, "", "", "boom"))
			if !stderrors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%s, sentinel) = false", tt.kind)
			}
			if stderrors.Is(wrapped, ErrUnknownOperator) != (tt.kind == KindUnknownOperator) {
				t.Errorf("errors.Is matched the wrong sentinel for %s", tt.kind)
			}
			kind, ok := KindOf(wrapped)
			if !ok || kind != tt.kind {
				t.Errorf("KindOf() = %q, %v, want %q", kind, ok, tt.kind)
			}
		})
	}
}

func TestError_UnwrapCause(t *testing.T) {
	cause := stderrors.New("yaml: line 1: did not find expected node content")
	err := &Error{Kind: KindInvalidSpec, Message: "failed to decode filter", Cause: cause}

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if !strings.Contains(err.Error(), cause.Error()) {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	if _, ok := KindOf(stderrors.New("other")); ok {
		t.Error("KindOf() recognized a foreign error")
	}
}

func TestSuggestOperator(t *testing.T) {
	valid := []string{"$eq", "$ne", "$gt", "$gte", "$lt", "$lte"}

	tests := []struct {
		unknown string
		want    string
	}{
		{unknown: "$gtt", want: "Did you mean '$gt'?"},
		{unknown: "$lten", want: "Did you mean '$lte'?"},
		{unknown: "$in", want: "Did you mean '$eq'?"},
		{unknown: "$elemMatch", want: "Valid operators: $eq, $ne, $gt, $gte, $lt, $lte"},
	}

	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			if got := SuggestOperator(tt.unknown, valid); got != tt.want {
				t.Errorf("SuggestOperator(%q) = %q, want %q", tt.unknown, got, tt.want)
			}
		})
	}

	if got := SuggestOperator("$x", nil); got != "" {
		t.Errorf("SuggestOperator() with no candidates = %q, want empty", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"$gt", "$gt", 0},
		{"$gt", "$gte", 1},
		{"kitten", "sitting", 3},
		{"", "abc", 3},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
