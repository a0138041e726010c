package cli

import (
	"errors"
	"fmt"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneral indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitGeneral = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing arguments, invalid flag combinations, ambiguous run IDs.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Missing table or narrative files, stories or runs that were
	// never catalogued.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Files without a story table, malformed narrative front matter.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Lint runs that fail, invalid story numbers or configuration.
	ExitValidation = 5
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an exit code.
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return Classify(err).Exit
}
