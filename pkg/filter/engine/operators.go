package engine

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"mercator-hq/docfilter/pkg/document"
	"mercator-hq/docfilter/pkg/filter/ast"
)

// numericString matches decimal number literals, optionally surrounded by
// whitespace. Hex, infinities and NaN are not numeric strings.
var numericString = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// evaluateOperator applies op to the resolved value and the literal.
func evaluateOperator(op ast.Operator, actual, expected any) bool {
	switch op {
	case ast.OpEq:
		return looseEqual(actual, expected)

	case ast.OpNe:
		return !looseEqual(actual, expected)

	case ast.OpGt:
		c, ok := compareOrdered(actual, expected)
		return ok && c > 0

	case ast.OpGte:
		c, ok := compareOrdered(actual, expected)
		return ok && c >= 0

	case ast.OpLt:
		c, ok := compareOrdered(actual, expected)
		return ok && c < 0

	case ast.OpLte:
		c, ok := compareOrdered(actual, expected)
		return ok && c <= 0

	default:
		return false
	}
}

// looseEqual checks two document values for equality with numeric/string
// coercion.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if c, ok := compareIntegers(a, b); ok {
		return c == 0
	}

	// Numbers, and numbers against numeric strings
	an, aNum := convertToFloat64(a)
	bn, bNum := convertToFloat64(b)
	switch {
	case aNum && bNum:
		return an == bn
	case aNum:
		f, ok := parseNumericString(b)
		return ok && an == f
	case bNum:
		f, ok := parseNumericString(a)
		return ok && f == bn
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv

	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	if av, ok := document.AsArray(a); ok {
		bv, ok := document.AsArray(b)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !looseEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}

	if document.IsObject(a) && document.IsObject(b) {
		return objectsEqual(a, b)
	}

	return reflect.DeepEqual(a, b)
}

// objectsEqual compares two objects by key set and values; key order is
// irrelevant.
func objectsEqual(a, b any) bool {
	aEntries, _ := document.Entries(a)
	bEntries, _ := document.Entries(b)
	if len(aEntries) != len(bEntries) {
		return false
	}

	for _, e := range aEntries {
		other, ok := document.Resolve(b, document.Path{e.Key})
		if !ok || !looseEqual(e.Value, other) {
			return false
		}
	}
	return true
}

// compareOrdered orders two values. The boolean is false when the pair has
// no defined order.
func compareOrdered(a, b any) (int, bool) {
	if c, ok := compareIntegers(a, b); ok {
		return c, true
	}

	an, aNum := convertToFloat64(a)
	bn, bNum := convertToFloat64(b)

	switch {
	case aNum && bNum:
		return compareFloat(an, bn)
	case aNum:
		if f, ok := parseNumericString(b); ok {
			return compareFloat(an, f)
		}
		return 0, false
	case bNum:
		if f, ok := parseNumericString(a); ok {
			return compareFloat(f, bn)
		}
		return 0, false
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return strings.Compare(as, bs), true
	}

	return 0, false
}

func compareFloat(a, b float64) (int, bool) {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return 0, false
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

// integer holds any int64 or uint64 exactly. Values above MaxInt64 are kept
// in u with large set.
type integer struct {
	i     int64
	u     uint64
	large bool
}

func (x integer) cmp(y integer) int {
	switch {
	case x.large && y.large:
		return cmpUint(x.u, y.u)
	case x.large:
		return 1
	case y.large:
		return -1
	case x.i < y.i:
		return -1
	case x.i > y.i:
		return 1
	default:
		return 0
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func fromUint(u uint64) integer {
	if u > math.MaxInt64 {
		return integer{u: u, large: true}
	}
	return integer{i: int64(u)}
}

// compareIntegers compares a and b without going through float64 when both
// are integers. A numeric string counts only against a Go number, so two
// strings never take this path.
func compareIntegers(a, b any) (int, bool) {
	_, aStr := a.(string)
	_, bStr := b.(string)
	if aStr && bStr {
		return 0, false
	}

	ai, ok := toInteger(a)
	if !ok {
		return 0, false
	}
	bi, ok := toInteger(b)
	if !ok {
		return 0, false
	}
	return ai.cmp(bi), true
}

// toInteger converts Go integer kinds, integral json.Number values and
// integral numeric strings.
func toInteger(v any) (integer, bool) {
	switch val := v.(type) {
	case int:
		return integer{i: int64(val)}, true
	case int8:
		return integer{i: int64(val)}, true
	case int16:
		return integer{i: int64(val)}, true
	case int32:
		return integer{i: int64(val)}, true
	case int64:
		return integer{i: val}, true
	case uint:
		return fromUint(uint64(val)), true
	case uint8:
		return integer{i: int64(val)}, true
	case uint16:
		return integer{i: int64(val)}, true
	case uint32:
		return integer{i: int64(val)}, true
	case uint64:
		return fromUint(val), true
	case json.Number:
		return parseInteger(string(val))
	case string:
		if !numericString.MatchString(val) {
			return integer{}, false
		}
		return parseInteger(strings.TrimSpace(val))
	default:
		return integer{}, false
	}
}

func parseInteger(s string) (integer, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return integer{i: i}, true
	}
	if u, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64); err == nil {
		return fromUint(u), true
	}
	return integer{}, false
}

// parseNumericString converts a numeric string to float64.
func parseNumericString(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok || !numericString.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// convertToFloat64 converts a Go number to float64.
func convertToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
