package parser

import (
	"fmt"

	"mercator-hq/docfilter/pkg/document"
	"mercator-hq/docfilter/pkg/filter/ast"
	filterErrors "mercator-hq/docfilter/pkg/filter/errors"
)

// validOperators is the suggestion candidate list for unknown operators.
var validOperators = func() []string {
	ops := make([]string, len(ast.Operators))
	for i, op := range ast.Operators {
		ops[i] = string(op)
	}
	return ops
}()

// parseMapping is the single recursive grammar rule. It is used for the
// top-level specification and for every element of a $or/$and list.
func (p *Parser) parseMapping(entries []document.Entry, loc string, depth int) ([]ast.Node, error) {
	nodes := make([]ast.Node, 0, len(entries))

	for _, entry := range entries {
		key := classifyKey(entry.Key)
		keyLoc := joinLocation(loc, entry.Key)

		if key.kind == fieldKey {
			leaves, err := parseField(entry.Key, entry.Value, keyLoc)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, leaves...)
			continue
		}

		if depth >= p.maxDepth {
			return nil, filterErrors.New(filterErrors.KindMaxDepthExceeded, entry.Key, keyLoc,
				fmt.Sprintf("logic groups nested deeper than %d levels", p.maxDepth))
		}

		var (
			group *ast.Group
			err   error
		)
		switch key.logic {
		case ast.LogicOr, ast.LogicAnd:
			group, err = p.parseLogicList(key, entry.Value, keyLoc, depth+1)
		case ast.LogicNot:
			group, err = parseNot(key, entry.Value, keyLoc)
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, group)
	}

	return nodes, nil
}

// parseField turns one field key into leaves. A mapping value is an operator
// mapping producing one leaf per operator; any other value is an implicit $eq.
func parseField(field string, value any, loc string) ([]ast.Node, error) {
	ops, ok := document.Entries(value)
	if !ok {
		return []ast.Node{ast.NewLeaf(ast.OpEq, field, value)}, nil
	}

	leaves := make([]ast.Node, 0, len(ops))
	for _, op := range ops {
		operator := ast.Operator(op.Key)
		if !operator.IsValid() {
			err := filterErrors.New(filterErrors.KindUnknownOperator, op.Key, joinLocation(loc, op.Key),
				fmt.Sprintf("unknown operator %q on field %q", op.Key, field))
			err.Suggestion = filterErrors.SuggestOperator(op.Key, validOperators)
			return nil, err
		}
		leaves = append(leaves, ast.NewLeaf(operator, field, op.Value))
	}

	return leaves, nil
}

// parseLogicList parses the list value of a $or or $and key. Each element is
// parsed recursively and wrapped as an implicit AND group.
func (p *Parser) parseLogicList(key specKey, value any, loc string, depth int) (*ast.Group, error) {
	kind := shapeKind(key.logic)

	items, ok := asList(value)
	if !ok {
		return nil, filterErrors.New(kind, key.name, loc,
			fmt.Sprintf("value of %s must be a list of mappings, got %s", key.name, describe(value)))
	}
	if len(items) == 0 {
		return nil, filterErrors.New(kind, key.name, loc,
			fmt.Sprintf("value of %s must not be an empty list", key.name))
	}

	children := make([]ast.Node, 0, len(items))
	for i, item := range items {
		itemLoc := fmt.Sprintf("%s[%d]", loc, i)

		entries, ok := document.Entries(item)
		if !ok {
			return nil, filterErrors.New(kind, key.name, itemLoc,
				fmt.Sprintf("element %d of %s must be a mapping, got %s", i, key.name, describe(item)))
		}

		sub, err := p.parseMapping(entries, itemLoc, depth)
		if err != nil {
			return nil, err
		}
		if len(sub) == 0 {
			return nil, filterErrors.New(kind, key.name, itemLoc,
				fmt.Sprintf("element %d of %s has no conditions", i, key.name))
		}

		children = append(children, ast.And(sub...))
	}

	return ast.NewGroup(key.logic, children...), nil
}

// parseNot parses the mapping value of a $not key. Only field keys are allowed.
func parseNot(key specKey, value any, loc string) (*ast.Group, error) {
	entries, ok := document.Entries(value)
	if !ok {
		return nil, filterErrors.New(filterErrors.KindInvalidNotShape, key.name, loc,
			fmt.Sprintf("value of %s must be a mapping, got %s", key.name, describe(value)))
	}

	var leaves []ast.Node
	for _, entry := range entries {
		entryLoc := joinLocation(loc, entry.Key)
		if classifyKey(entry.Key).kind == logicKey {
			return nil, filterErrors.New(filterErrors.KindInvalidNotShape, entry.Key, entryLoc,
				fmt.Sprintf("%s accepts field conditions only, found %q", key.name, entry.Key))
		}

		fieldLeaves, err := parseField(entry.Key, entry.Value, entryLoc)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, fieldLeaves...)
	}

	if len(leaves) == 0 {
		return nil, filterErrors.New(filterErrors.KindInvalidNotShape, key.name, loc,
			fmt.Sprintf("value of %s has no conditions", key.name))
	}

	return ast.NewGroup(ast.LogicNot, leaves...), nil
}

func shapeKind(logic ast.Logic) filterErrors.Kind {
	if logic == ast.LogicAnd {
		return filterErrors.KindInvalidAndShape
	}
	return filterErrors.KindInvalidOrShape
}

// asList accepts the list shapes produced by document.Decode and by Go
// callers, such as []map[string]any.
func asList(value any) ([]any, bool) {
	return document.AsArray(value)
}

func joinLocation(loc, key string) string {
	if loc == "" {
		return key
	}
	return loc + "." + key
}

// describe names the shape of a value for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		if document.IsObject(v) {
			return "mapping"
		}
		return fmt.Sprintf("%T", v)
	}
}
