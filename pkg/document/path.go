package document

import (
	"reflect"
	"strconv"
	"strings"
)

// Path addresses a position inside a document, one segment per level.
type Path []string

// ParsePath splits a dotted field name into a Path.
// An empty string yields an empty path, which addresses the document itself.
func ParsePath(field string) Path {
	if field == "" {
		return Path{}
	}
	return Path(strings.Split(field, "."))
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Resolve returns the value at path inside doc.
// The boolean is false when the path does not exist: a missing object key,
// an array index that is not a non-negative integer or is out of range,
// or a scalar reached while segments remain.
func Resolve(doc any, path Path) (any, bool) {
	current := doc
	for _, segment := range path {
		switch v := current.(type) {
		case *Object, map[string]any:
			next, ok := field(v, segment)
			if !ok {
				return nil, false
			}
			current = next

		default:
			arr, ok := AsArray(v)
			if !ok {
				return nil, false
			}
			idx, ok := parseIndex(segment)
			if !ok || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// AsArray returns v as a []any. Typed Go slices and arrays such as []string
// or [3]int are copied element by element; []byte is not an array.
func AsArray(v any) ([]any, bool) {
	switch val := v.(type) {
	case nil, []byte:
		return nil, false
	case []any:
		return val, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Lookup resolves a dotted field name against doc.
func Lookup(doc any, field string) (any, bool) {
	return Resolve(doc, ParsePath(field))
}

// parseIndex parses an array index segment. Signs and whitespace are rejected.
func parseIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	for i := 0; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return idx, true
}
