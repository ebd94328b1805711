package cli

import (
	"errors"
	"fmt"

	filtererrors "mercator-hq/docfilter/pkg/filter/errors"
)

// Exit codes returned by the docfilter command.
const (
	ExitOK      = 0
	ExitFailure = 1 // runtime failure: unreadable source, I/O
	ExitInvalid = 2 // invalid filter or configuration
)

// ConfigError represents an error in configuration or flags.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitInvalid
	}
	if _, ok := filtererrors.KindOf(err); ok {
		return ExitInvalid
	}
	return ExitFailure
}
