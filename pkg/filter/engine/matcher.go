package engine

import (
	"context"
	"log/slog"

	"mercator-hq/docfilter/pkg/document"
	"mercator-hq/docfilter/pkg/filter/ast"
)

// Matcher evaluates condition trees against documents. The zero value is
// ready to use and does not log.
type Matcher struct {
	logger *slog.Logger
}

// NewMatcher creates a matcher that logs every leaf comparison at debug level.
func NewMatcher(logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger}
}

var defaultMatcher = &Matcher{}

// Evaluate reports whether doc satisfies node.
func Evaluate(node ast.Node, doc any) bool {
	return defaultMatcher.Match(node, doc)
}

// EvaluateAll reports whether doc satisfies every node. An empty list matches.
func EvaluateAll(nodes []ast.Node, doc any) bool {
	return defaultMatcher.MatchAll(nodes, doc)
}

// MatchAll evaluates nodes as an implicit AND group.
func (m *Matcher) MatchAll(nodes []ast.Node, doc any) bool {
	return m.matchAnd(nodes, doc)
}

// Match evaluates a single node.
func (m *Matcher) Match(node ast.Node, doc any) bool {
	switch n := node.(type) {
	case *ast.Leaf:
		return m.matchLeaf(n, doc)

	case *ast.Group:
		switch n.Logic {
		case ast.LogicAnd:
			return m.matchAnd(n.Children, doc)
		case ast.LogicOr:
			return m.matchOr(n.Children, doc)
		case ast.LogicNot:
			return !m.matchAnd(n.Children, doc)
		}
	}

	return false
}

// matchLeaf resolves the leaf path and applies its operator.
func (m *Matcher) matchLeaf(leaf *ast.Leaf, doc any) bool {
	actual, present := resolve(leaf, doc)
	matched := evaluateOperator(leaf.Operator, actual, leaf.Value)

	if m.logger != nil && m.logger.Enabled(context.Background(), slog.LevelDebug) {
		m.logger.Debug("leaf condition evaluated",
			"field", leaf.Field,
			"operator", leaf.Operator,
			"expected", leaf.Value,
			"actual", actual,
			"present", present,
			"matched", matched,
		)
	}

	return matched
}

// matchAnd is true unless a child is false; it stops at the first false.
func (m *Matcher) matchAnd(children []ast.Node, doc any) bool {
	for _, child := range children {
		if !m.Match(child, doc) {
			return false
		}
	}
	return true
}

// matchOr is true if any child is true; it stops at the first true.
func (m *Matcher) matchOr(children []ast.Node, doc any) bool {
	for _, child := range children {
		if m.Match(child, doc) {
			return true
		}
	}
	return false
}

// resolve returns the value addressed by the leaf, or nil when absent.
func resolve(leaf *ast.Leaf, doc any) (any, bool) {
	path := leaf.Path
	if path == nil {
		path = document.ParsePath(leaf.Field)
	}
	actual, ok := document.Resolve(doc, path)
	if !ok {
		return nil, false
	}
	return actual, true
}
