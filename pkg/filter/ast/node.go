package ast

import "mercator-hq/docfilter/pkg/document"

// Operator is a comparison operator of a leaf condition.
type Operator string

const (
	OpEq  Operator = "$eq"
	OpNe  Operator = "$ne"
	OpGt  Operator = "$gt"
	OpGte Operator = "$gte"
	OpLt  Operator = "$lt"
	OpLte Operator = "$lte"
)

// Operators lists every recognized comparison operator.
var Operators = []Operator{OpEq, OpNe, OpGt, OpGte, OpLt, OpLte}

// IsValid reports whether op is a recognized comparison operator.
func (op Operator) IsValid() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte:
		return true
	default:
		return false
	}
}

// Logic is the combinator of a group condition.
type Logic string

const (
	LogicAnd Logic = "$and"
	LogicOr  Logic = "$or"
	LogicNot Logic = "$not" // negated conjunction of the children
)

// Node is a node of a condition tree. The only implementations are *Leaf and
// *Group.
type Node interface {
	node()
}

// Leaf compares the value found at Path against a literal.
type Leaf struct {
	Operator Operator
	Field    string        // dotted field name as written in the filter
	Path     document.Path // Field split into segments
	Value    any           // scalar or array literal
}

// Group combines its children with a logic operator.
// A group always has at least one child.
type Group struct {
	Logic    Logic
	Children []Node
}

func (*Leaf) node()  {}
func (*Group) node() {}

// NewLeaf creates a leaf condition on a dotted field name.
func NewLeaf(op Operator, field string, value any) *Leaf {
	return &Leaf{
		Operator: op,
		Field:    field,
		Path:     document.ParsePath(field),
		Value:    value,
	}
}

// NewGroup creates a group condition.
func NewGroup(logic Logic, children ...Node) *Group {
	return &Group{Logic: logic, Children: children}
}

// And wraps nodes as an implicit conjunction.
func And(nodes ...Node) *Group {
	return NewGroup(LogicAnd, nodes...)
}
