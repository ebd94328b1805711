package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds alias expansion so that self-referencing YAML cannot
// recurse forever.
const maxAliasDepth = 64

// Record is a document together with the identifier its source knows it by.
type Record struct {
	ID  string `json:"id"`
	Doc any    `json:"doc"`
}

// Decode parses JSON or YAML text into a document.
// Objects decode to *Object so that key order is preserved.
// Empty input decodes to nil.
func Decode(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if node.Kind == 0 {
		return nil, nil
	}
	return fromNode(&node, 0)
}

// DecodeFile reads and decodes the document stored at path.
func DecodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %q: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// fromNode converts a YAML node tree into the document model.
func fromNode(node *yaml.Node, aliasDepth int) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0], aliasDepth)

	case yaml.MappingNode:
		obj := &Object{values: make(map[string]any, len(node.Content)/2)}
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: object keys must be scalars", keyNode.Line)
			}
			if _, dup := obj.values[keyNode.Value]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", keyNode.Line, keyNode.Value)
			}
			val, err := fromNode(node.Content[i+1], aliasDepth)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := fromNode(child, aliasDepth)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth || node.Alias == nil {
			return nil, fmt.Errorf("line %d: alias nesting too deep", node.Line)
		}
		return fromNode(node.Alias, aliasDepth+1)

	case yaml.ScalarNode:
		return fromScalar(node)

	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", node.Line, node.Kind)
	}
}

// fromScalar decodes a scalar node. Timestamps and binary blobs stay strings,
// since documents only carry JSON scalar types.
func fromScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!str", "!!timestamp", "!!binary":
		return node.Value, nil
	case "!!null":
		return nil, nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return v, nil
}
