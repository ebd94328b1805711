package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"mercator-hq/docfilter/pkg/cli"
	"mercator-hq/docfilter/pkg/filter"
	"mercator-hq/docfilter/pkg/filter/ast"
	filtererrors "mercator-hq/docfilter/pkg/filter/errors"
)

var validateFlags struct {
	file   string
	dir    string
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check filter files without running them",
	Long: `Parse filter files and report errors such as unknown operators or
malformed $and/$or/$not clauses. Nothing is evaluated.

Examples:
  # Validate a single file
  docfilter validate --file thomas.yaml

  # Validate every .json/.yaml/.yml file in a directory, JSON output for CI
  docfilter validate --dir filters/ --format json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "filter file to validate")
	validateCmd.Flags().StringVarP(&validateFlags.dir, "dir", "d", "", "directory of filter files")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	_ = validateCmd.RegisterFlagCompletionFunc("format", completeValues("text", "json"))
}

// ValidationResult is the outcome of validating one filter file.
type ValidationResult struct {
	File       string           `json:"file"`
	Valid      bool             `json:"valid"`
	Filter     string           `json:"filter,omitempty"`
	Conditions int              `json:"conditions,omitempty"`
	Error      *ValidationError `json:"error,omitempty"`

	err error
}

// ValidationError describes why a filter file is invalid.
type ValidationError struct {
	Kind       string `json:"kind,omitempty"`
	Key        string `json:"key,omitempty"`
	Location   string `json:"location,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(validateFlags.format)
	if err != nil {
		return err
	}

	files, err := filterFiles(validateFlags.file, validateFlags.dir)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	e, err := newEnv(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	results := make([]ValidationResult, 0, len(files))
	var firstErr error
	invalid := 0
	for _, file := range files {
		result := validateFilterFile(e.compiler, file)
		if !result.Valid {
			invalid++
			if firstErr == nil {
				firstErr = result.err
			}
		}
		results = append(results, result)
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatText {
		writeValidationText(out, results)
	} else if err := cli.NewFormatter(format).FormatTo(out, results); err != nil {
		return err
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d filter files invalid: %w", invalid, len(files), firstErr)
	}
	return nil
}

func filterFiles(file, dir string) ([]string, error) {
	if file == "" && dir == "" {
		return nil, cli.NewConfigError("--file", "either --file or --dir must be specified")
	}

	var files []string
	if file != "" {
		files = append(files, file)
	}

	if dir != "" {
		var found []string
		for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to list filter files: %w", err)
			}
			found = append(found, matches...)
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, cli.NewConfigError("--dir", fmt.Sprintf("no filter files found in %s", dir))
	}
	return files, nil
}

func validateFilterFile(c *filter.Compiler, path string) ValidationResult {
	q, err := c.CompileFile(path)
	if err != nil {
		result := ValidationResult{File: path, err: err}

		var ferr *filtererrors.Error
		if errors.As(err, &ferr) {
			result.Error = &ValidationError{
				Kind:       string(ferr.Kind),
				Key:        ferr.Key,
				Location:   ferr.Location,
				Message:    ferr.Message,
				Suggestion: ferr.Suggestion,
			}
		} else {
			result.Error = &ValidationError{Message: err.Error()}
		}
		return result
	}

	return ValidationResult{
		File:       path,
		Valid:      true,
		Filter:     q.String(),
		Conditions: len(ast.Leaves(q.Conditions())),
	}
}

func writeValidationText(w io.Writer, results []ValidationResult) {
	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
			fmt.Fprintf(w, "✓ %s: %s\n", r.File, r.Filter)
			continue
		}

		fmt.Fprintf(w, "✗ %s\n", r.File)
		if r.Error.Kind != "" {
			fmt.Fprintf(w, "  [%s] %s\n", r.Error.Kind, r.Error.Message)
		} else {
			fmt.Fprintf(w, "  %s\n", r.Error.Message)
		}
		if r.Error.Location != "" {
			fmt.Fprintf(w, "  --> %s\n", r.Error.Location)
		}
		if r.Error.Suggestion != "" {
			fmt.Fprintf(w, "  = suggestion: %s\n", r.Error.Suggestion)
		}
	}

	fmt.Fprintf(w, "\n%d of %d filter files valid\n", valid, len(results))
}
