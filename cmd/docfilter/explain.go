package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/docfilter/pkg/cli"
	"mercator-hq/docfilter/pkg/document"
	"mercator-hq/docfilter/pkg/filter/ast"
)

var explainFlags struct {
	filter filterFlags
	doc    string
}

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show a compiled filter and how it evaluates",
	Long: `Print the condition tree a filter compiles to. With --doc, also evaluate it
against one document and print the verdict of every condition that was
evaluated.

Examples:
  docfilter explain --filter thomas.yaml
  docfilter explain -e '{"$or": [{"age": 20}, {"age": 40}]}' --doc people/1.json`,
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainFlags.filter.register(explainCmd)
	explainCmd.Flags().StringVar(&explainFlags.doc, "doc", "", "document file (JSON or YAML) to evaluate")
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	e, err := newEnv(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	q, err := explainFlags.filter.compile(e.compiler)
	if err != nil {
		return cli.NewCommandError("explain", fmt.Errorf("failed to compile filter: %w", err))
	}

	out := cmd.OutOrStdout()
	conditions := q.Conditions()
	fmt.Fprintf(out, "Filter: %s\n", q)
	fmt.Fprintf(out, "Conditions: %d (depth %d)\n", len(ast.Leaves(conditions)), ast.Depth(conditions))

	if explainFlags.doc == "" {
		return nil
	}

	doc, err := document.DecodeFile(explainFlags.doc)
	if err != nil {
		return cli.NewCommandError("explain", err)
	}

	trace := q.Explain(doc)
	fmt.Fprintf(out, "\n%s", trace)
	if trace.Result {
		fmt.Fprintln(out, "\nResult: match")
	} else {
		fmt.Fprintln(out, "\nResult: no match")
	}
	return nil
}
