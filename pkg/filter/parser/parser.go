package parser

import (
	"fmt"
	"os"

	"mercator-hq/docfilter/pkg/document"
	"mercator-hq/docfilter/pkg/filter/ast"
	filterErrors "mercator-hq/docfilter/pkg/filter/errors"
)

const (
	// DefaultMaxDepth is the default limit on nested logic groups.
	DefaultMaxDepth = 32

	// DefaultMaxSpecSize is the default size limit for specification files.
	DefaultMaxSpecSize = 1 << 20
)

// Parser parses filter specifications into condition trees.
// A Parser is immutable after configuration and safe for concurrent use.
type Parser struct {
	maxDepth    int   // Maximum logic group nesting depth
	maxSpecSize int64 // Maximum specification size in bytes for ParseBytes/ParseFile
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxDepth:    DefaultMaxDepth,
		maxSpecSize: DefaultMaxSpecSize,
	}
}

// WithMaxDepth sets the maximum logic group nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	if depth > 0 {
		p.maxDepth = depth
	}
	return p
}

// WithMaxSpecSize sets the maximum specification size in bytes.
func (p *Parser) WithMaxSpecSize(size int64) *Parser {
	if size > 0 {
		p.maxSpecSize = size
	}
	return p
}

// Parse parses a specification mapping (*document.Object or map[string]any)
// into an ordered list of nodes combined by AND. A nil specification is
// treated as an empty mapping.
func Parse(spec any) ([]ast.Node, error) {
	return NewParser().Parse(spec)
}

// Parse parses a specification mapping into an ordered list of nodes
// combined by AND.
func (p *Parser) Parse(spec any) ([]ast.Node, error) {
	if spec == nil {
		return []ast.Node{}, nil
	}

	entries, ok := document.Entries(spec)
	if !ok {
		return nil, filterErrors.New(filterErrors.KindInvalidSpec, "", "",
			fmt.Sprintf("filter specification must be a mapping, got %s", describe(spec)))
	}

	return p.parseMapping(entries, "", 0)
}

// ParseBytes decodes a JSON or YAML specification, preserving key order,
// and parses it.
func (p *Parser) ParseBytes(data []byte) ([]ast.Node, error) {
	if int64(len(data)) > p.maxSpecSize {
		return nil, filterErrors.New(filterErrors.KindInvalidSpec, "", "",
			fmt.Sprintf("specification size %d exceeds maximum %d bytes", len(data), p.maxSpecSize))
	}

	spec, err := document.Decode(data)
	if err != nil {
		return nil, &filterErrors.Error{
			Kind:       filterErrors.KindInvalidSpec,
			Message:    "failed to decode filter specification",
			Suggestion: "Check JSON/YAML syntax (braces, colons, quotes)",
			Cause:      err,
		}
	}

	return p.Parse(spec)
}

// ParseFile reads and parses the specification stored at path.
func (p *Parser) ParseFile(path string) ([]ast.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access filter file: %w", err)
	}
	if info.Size() > p.maxSpecSize {
		return nil, filterErrors.New(filterErrors.KindInvalidSpec, "", path,
			fmt.Sprintf("file size %d exceeds maximum %d bytes", info.Size(), p.maxSpecSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter file: %w", err)
	}

	return p.ParseBytes(data)
}
