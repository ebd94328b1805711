package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/docfilter/pkg/cli"
	"mercator-hq/docfilter/pkg/filter"
)

// filterFlags select the filter from a file or an inline expression.
type filterFlags struct {
	file string
	expr string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "filter", "f", "", "filter file (JSON or YAML)")
	cmd.Flags().StringVarP(&f.expr, "expr", "e", "", "inline filter, e.g. '{\"age\": {\"$gte\": 18}}'")
	_ = cmd.RegisterFlagCompletionFunc("filter", completeFilterFiles)
}

func (f *filterFlags) compile(c *filter.Compiler) (*filter.Query, error) {
	switch {
	case f.file != "" && f.expr != "":
		return nil, cli.NewConfigError("--filter", "--filter and --expr are mutually exclusive")
	case f.file != "":
		return c.CompileFile(f.file)
	case f.expr != "":
		return c.CompileBytes([]byte(f.expr))
	default:
		return nil, cli.NewConfigError("--filter", "either --filter or --expr must be specified")
	}
}

var queryFlags struct {
	filter filterFlags
	source sourceFlags
	format string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the documents that match a filter",
	Long: `Compile a filter and print every matching document of a collection, in
collection order.

Examples:
  # Documents from a directory of JSON/YAML files
  docfilter query --filter thomas.yaml --path people/

  # Inline filter against a SQLite table, first 10 matches as JSON Lines
  docfilter query -e '{"age": {"$gt": 30}}' --source sqlite --path people.db \
    --table people --limit 10 --format jsonl`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryFlags.filter.register(queryCmd)
	queryFlags.source.register(queryCmd)
	queryCmd.Flags().StringVar(&queryFlags.format, "format", "text", "output format: text, json, jsonl")
	_ = queryCmd.RegisterFlagCompletionFunc("format", completeValues("text", "json", "jsonl"))
}

func runQuery(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(queryFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := queryFlags.source.apply(cfg); err != nil {
		return err
	}

	e, err := newEnv(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	q, err := queryFlags.filter.compile(e.compiler)
	if err != nil {
		return cli.NewCommandError("query", fmt.Errorf("failed to compile filter: %w", err))
	}

	src, closeSource, err := e.openSource()
	if err != nil {
		return cli.NewCommandError("query", err)
	}
	defer func() { _ = closeSource() }()

	scanner, err := e.newScanner()
	if err != nil {
		return cli.NewCommandError("query", err)
	}
	defer func() { _ = scanner.Close() }()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	result, err := scanner.Scan(ctx, q, src)
	if err != nil {
		return cli.NewCommandError("query", err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)
}
