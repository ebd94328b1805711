package parser

import (
	"strings"

	"mercator-hq/docfilter/pkg/filter/ast"
)

// keyKind tells field keys from logic keys.
type keyKind int

const (
	fieldKey keyKind = iota
	logicKey
)

// specKey is a classified mapping key.
type specKey struct {
	kind  keyKind
	logic ast.Logic // set for logic keys
	name  string    // the key as written
}

// logicPrefixes are matched as prefixes so that one mapping can hold several
// groups of the same kind, e.g. "$or_price" and "$or_stock".
var logicPrefixes = []ast.Logic{ast.LogicNot, ast.LogicAnd, ast.LogicOr}

// classifyKey classifies a key of a specification mapping.
func classifyKey(key string) specKey {
	for _, logic := range logicPrefixes {
		if strings.HasPrefix(key, string(logic)) {
			return specKey{kind: logicKey, logic: logic, name: key}
		}
	}
	return specKey{kind: fieldKey, name: key}
}
