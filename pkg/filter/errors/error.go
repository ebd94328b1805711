package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind categorizes a parse error.
type Kind string

const (
	KindUnknownOperator  Kind = "unknown_operator"   // operator mapping has an unrecognized key
	KindInvalidOrShape   Kind = "invalid_or_shape"   // $or is not a non-empty list of non-empty mappings
	KindInvalidNotShape  Kind = "invalid_not_shape"  // $not is not a non-empty mapping of fields
	KindInvalidAndShape  Kind = "invalid_and_shape"  // $and is not a non-empty list of non-empty mappings
	KindInvalidSpec      Kind = "invalid_spec"       // the specification is not a mapping or cannot be decoded
	KindMaxDepthExceeded Kind = "max_depth_exceeded" // logic groups nest deeper than allowed
)

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrUnknownOperator  = stderrors.New("unknown operator")
	ErrInvalidOrShape   = stderrors.New("invalid $or shape")
	ErrInvalidNotShape  = stderrors.New("invalid $not shape")
	ErrInvalidAndShape  = stderrors.New("invalid $and shape")
	ErrInvalidSpec      = stderrors.New("invalid filter specification")
	ErrMaxDepthExceeded = stderrors.New("maximum nesting depth exceeded")
)

var sentinels = map[Kind]error{
	KindUnknownOperator:  ErrUnknownOperator,
	KindInvalidOrShape:   ErrInvalidOrShape,
	KindInvalidNotShape:  ErrInvalidNotShape,
	KindInvalidAndShape:  ErrInvalidAndShape,
	KindInvalidSpec:      ErrInvalidSpec,
	KindMaxDepthExceeded: ErrMaxDepthExceeded,
}

// Error is a filter specification parse error.
type Error struct {
	Kind       Kind   // Category of error
	Key        string // Offending key, if any
	Location   string // Path of the key inside the specification
	Message    string // Error message
	Suggestion string // Suggested fix (optional)
	Cause      error  // Underlying error (optional)
}

// New creates an error of the given kind.
func New(kind Kind, key, location, message string) *Error {
	return &Error{
		Kind:     kind,
		Key:      key,
		Location: location,
		Message:  message,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	if e.Location != "" {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel error of the error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}

// KindOf returns the kind of err if it is, or wraps, an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
