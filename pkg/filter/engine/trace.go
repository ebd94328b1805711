package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"mercator-hq/docfilter/pkg/filter/ast"
)

// Trace records the verdict of one evaluated node. Children that were not
// evaluated because of short-circuiting are absent.
type Trace struct {
	Node     ast.Node // nil for the implicit top-level AND
	Result   bool
	Actual   any  // resolved value, leaves only
	Present  bool // whether the leaf path exists
	Children []*Trace
}

// EvaluateTrace evaluates nodes as an implicit AND and records every
// evaluated node. Its Result always equals EvaluateAll(nodes, doc).
func EvaluateTrace(nodes []ast.Node, doc any) *Trace {
	root := &Trace{}
	root.Result = traceAnd(root, nodes, doc)
	return root
}

func traceNode(node ast.Node, doc any) *Trace {
	t := &Trace{Node: node}

	switch n := node.(type) {
	case *ast.Leaf:
		t.Actual, t.Present = resolve(n, doc)
		t.Result = evaluateOperator(n.Operator, t.Actual, n.Value)

	case *ast.Group:
		switch n.Logic {
		case ast.LogicAnd:
			t.Result = traceAnd(t, n.Children, doc)
		case ast.LogicOr:
			for _, child := range n.Children {
				ct := traceNode(child, doc)
				t.Children = append(t.Children, ct)
				if ct.Result {
					t.Result = true
					break
				}
			}
		case ast.LogicNot:
			t.Result = !traceAnd(t, n.Children, doc)
		}
	}

	return t
}

func traceAnd(parent *Trace, children []ast.Node, doc any) bool {
	for _, child := range children {
		ct := traceNode(child, doc)
		parent.Children = append(parent.Children, ct)
		if !ct.Result {
			return false
		}
	}
	return true
}

// String renders the trace as an indented tree.
func (t *Trace) String() string {
	var sb strings.Builder
	t.write(&sb, 0)
	return sb.String()
}

func (t *Trace) write(sb *strings.Builder, indent int) {
	pad := strings.Repeat("  ", indent)
	verdict := "false"
	if t.Result {
		verdict = "true"
	}

	switch n := t.Node.(type) {
	case nil:
		sb.WriteString(fmt.Sprintf("%sAND => %s\n", pad, verdict))
	case *ast.Leaf:
		actual := "<absent>"
		if t.Present {
			actual = formatValue(t.Actual)
		}
		sb.WriteString(fmt.Sprintf("%s%s (actual %s) => %s\n", pad, n.String(), actual, verdict))
	case *ast.Group:
		sb.WriteString(fmt.Sprintf("%s%s => %s\n", pad, n.Logic, verdict))
	}

	for _, c := range t.Children {
		c.write(sb, indent+1)
	}
}

func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
