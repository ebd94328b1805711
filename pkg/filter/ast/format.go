package ast

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format renders nodes as a compact, single-line expression.
// The top-level list is joined with AND.
func Format(nodes []Node) string {
	if len(nodes) == 0 {
		return "<match all>"
	}
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = formatNode(n)
	}
	return strings.Join(parts, " AND ")
}

// String returns the leaf as "field op literal".
func (l *Leaf) String() string {
	return fmt.Sprintf("%s %s %s", l.Field, l.Operator, formatLiteral(l.Value))
}

// String returns the group as "logic(child, ...)".
func (g *Group) String() string {
	parts := make([]string, len(g.Children))
	for i, c := range g.Children {
		parts[i] = formatNode(c)
	}
	return fmt.Sprintf("%s(%s)", g.Logic, strings.Join(parts, ", "))
}

func formatNode(n Node) string {
	switch v := n.(type) {
	case *Leaf:
		return v.String()
	case *Group:
		return v.String()
	default:
		return "<nil>"
	}
}

func formatLiteral(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
