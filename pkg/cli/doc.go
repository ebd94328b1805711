/*
Package cli provides output formatting, error classification and signal
handling for the docfilter command.

Scan results can be printed as text (one "id<TAB>document" line per match),
as a single JSON document, or as JSON Lines:

	format, err := cli.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(os.Stdout, result)

Commands return *ConfigError for bad flags and *CommandError for failures;
ExitCode turns either, or a filter parse error, into the process exit code.
*/
package cli
