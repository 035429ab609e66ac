// Package output provides structured output and error handling for the commitgate CLI.
package output

import (
	"errors"
	"fmt"
)

// Exit codes:
// 0 = Success (gate passed)
// 1 = Failure (gate rejected the commit, bad args)
// 2 = System error (git failed, unreadable config, I/O error)
// 3 = Conflict (hook exists, state mismatch)
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
	// Silent errors set the exit code without printing anything.
	Silent bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, unknown categories.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitFailure,
		Message: message,
	}
}

// NewGateError creates the silent exit-code-1 error returned when the gate
// detected problems. The problems themselves were already reported.
func NewGateError(problems int) *ExitError {
	return &ExitError{
		Code:    ExitFailure,
		Message: fmt.Sprintf("commit rejected: %d problem(s) found", problems),
		Silent:  true,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: git operation failures, I/O errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewConflictError creates an error for conflict situations (exit code 3).
// Use for: hook already installed by another tool.
func NewConflictError(message string) *ExitError {
	return &ExitError{
		Code:    ExitConflict,
		Message: message,
	}
}

// IsSilent reports whether err is an ExitError that must not be printed.
func IsSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Silent
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitFailure for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}
