package cmd

import (
	"errors"
	"fmt"

	"github.com/virtualboard/vaultsite/internal/mapper"
	"github.com/virtualboard/vaultsite/internal/mapping"
)

// Exit codes returned by the vaultsite binary.
const (
	ExitCodeSuccess        = 0
	ExitCodeUsage          = 1
	ExitCodeNotFound       = 2
	ExitCodeInvalidMapping = 3
	ExitCodeFilesystem     = 6
	ExitCodeUnknown        = 10
)

// CLIError allows returning rich errors with exit codes.
type CLIError struct {
	Code int
	Err  error
}

func (e *CLIError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError constructs a CLIError with a message and exit code.
func NewCLIError(code int, msg string) error {
	return &CLIError{Code: code, Err: fmt.Errorf("%s", msg)}
}

// WrapCLIError converts any error into a CLIError with the provided code.
func WrapCLIError(code int, err error) error {
	if err == nil {
		return nil
	}
	return &CLIError{Code: code, Err: err}
}

// ExitCode extracts an exit code from an error, returning ExitCodeUnknown if not specified.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Code != 0 {
		return cliErr.Code
	}
	return ExitCodeUnknown
}

// classify wraps an error from a pipeline stage with the matching exit code.
// Anything not recognised is treated as a filesystem failure.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mapping.ErrNotFound), errors.Is(err, mapper.ErrSourceNotFound):
		return WrapCLIError(ExitCodeNotFound, err)
	case errors.Is(err, mapping.ErrInvalid):
		return WrapCLIError(ExitCodeInvalidMapping, err)
	default:
		return WrapCLIError(ExitCodeFilesystem, err)
	}
}
