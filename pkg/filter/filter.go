package filter

import (
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/docfilter/pkg/filter/ast"
	"mercator-hq/docfilter/pkg/filter/engine"
	filterErrors "mercator-hq/docfilter/pkg/filter/errors"
	"mercator-hq/docfilter/pkg/filter/parser"
	"mercator-hq/docfilter/pkg/telemetry/metrics"
)

// Query is a compiled filter. It is immutable and safe for concurrent use.
type Query struct {
	nodes   []ast.Node
	matcher *engine.Matcher
}

// Match reports whether doc satisfies every condition of the query.
func (q *Query) Match(doc any) bool {
	return q.matcher.MatchAll(q.nodes, doc)
}

// Explain evaluates doc and returns the verdict of every evaluated node.
func (q *Query) Explain(doc any) *engine.Trace {
	return engine.EvaluateTrace(q.nodes, doc)
}

// Conditions returns the top-level conditions, combined by AND.
// The returned slice is a copy; the nodes themselves must not be modified.
func (q *Query) Conditions() []ast.Node {
	return append([]ast.Node(nil), q.nodes...)
}

// String renders the query as a single-line expression.
func (q *Query) String() string {
	return ast.Format(q.nodes)
}

// Compiler turns specifications into queries.
type Compiler struct {
	parser  *parser.Parser
	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithParser sets the parser, for example one with custom limits.
func WithParser(p *parser.Parser) Option {
	return func(c *Compiler) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithLogger sets the logger. Compiled queries log each leaf comparison at
// debug level through it.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithMetrics records compilations and parse errors on the collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Compiler) {
		c.metrics = collector
	}
}

// NewCompiler creates a compiler with the default parser and no logging.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{parser: parser.NewParser()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles a specification mapping (*document.Object or map[string]any).
func (c *Compiler) Compile(spec any) (*Query, error) {
	return c.compile(func() ([]ast.Node, error) { return c.parser.Parse(spec) })
}

// CompileBytes compiles a JSON or YAML specification.
func (c *Compiler) CompileBytes(data []byte) (*Query, error) {
	return c.compile(func() ([]ast.Node, error) { return c.parser.ParseBytes(data) })
}

// CompileFile compiles the specification stored at path.
func (c *Compiler) CompileFile(path string) (*Query, error) {
	return c.compile(func() ([]ast.Node, error) { return c.parser.ParseFile(path) })
}

func (c *Compiler) compile(parse func() ([]ast.Node, error)) (*Query, error) {
	start := time.Now()
	nodes, err := parse()
	if err != nil {
		kind, ok := filterErrors.KindOf(err)
		if !ok {
			kind = "io"
		}
		c.metrics.RecordParseError(string(kind), time.Since(start))
		return nil, err
	}
	c.metrics.RecordCompile(time.Since(start))

	var m *engine.Matcher
	if c.logger != nil {
		m = engine.NewMatcher(c.logger)
	} else {
		m = &engine.Matcher{}
	}

	return &Query{nodes: nodes, matcher: m}, nil
}

var defaultCompiler = NewCompiler()

// Compile compiles a specification mapping with the default compiler.
func Compile(spec any) (*Query, error) {
	return defaultCompiler.Compile(spec)
}

// CompileBytes compiles a JSON or YAML specification with the default compiler.
func CompileBytes(data []byte) (*Query, error) {
	return defaultCompiler.CompileBytes(data)
}

// CompileFile compiles a specification file with the default compiler.
func CompileFile(path string) (*Query, error) {
	return defaultCompiler.CompileFile(path)
}

// MustCompile is like Compile but panics if the specification is invalid.
// It is intended for specifications known at build time.
func MustCompile(spec any) *Query {
	q, err := Compile(spec)
	if err != nil {
		panic(fmt.Sprintf("filter: Compile(%v): %v", spec, err))
	}
	return q
}

// IsParseError reports whether err is a specification error as opposed to
// an I/O failure.
func IsParseError(err error) bool {
	_, ok := filterErrors.KindOf(err)
	return ok
}
