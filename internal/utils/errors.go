package utils

import (
	"errors"
	"fmt"
	"os"

	"github.com/jeeftor/wordgrid/internal/logging"
)

// ErrorExitCode represents different types of errors with their exit codes
type ErrorExitCode int

const (
	ExitCodeGeneral    ErrorExitCode = 1
	ExitCodeValidation ErrorExitCode = 1
	ExitCodeDecode     ErrorExitCode = 2
	ExitCodeFileSystem ErrorExitCode = 3
	ExitCodeNoWords    ErrorExitCode = 4
	ExitCodeTimeout    ErrorExitCode = 5
)

// exit is swapped out by tests
var exit = os.Exit

// CodedError carries the exit code a command wants the process to end with
type CodedError struct {
	Code ErrorExitCode
	Err  error
}

func (e *CodedError) Error() string { return e.Err.Error() }
func (e *CodedError) Unwrap() error { return e.Err }

// WithCode attaches an exit code to err. A nil err stays nil.
func WithCode(err error, code ErrorExitCode) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Err: err}
}

// ExitCode returns the exit code attached to err, or ExitCodeGeneral
func ExitCode(err error) ErrorExitCode {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ExitCodeGeneral
}

// FatalError handles fatal errors with consistent logging and exit behavior
func FatalError(err error, context string) {
	FatalErrorWithCode(err, context, ExitCode(err))
}

// FatalErrorWithCode handles fatal errors with specific exit codes
func FatalErrorWithCode(err error, context string, exitCode ErrorExitCode) {
	logging.UserErrorf("%s: %v", context, err)
	exit(int(exitCode))
}

// ValidationError handles argument validation errors with usage information
func ValidationError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exit(int(ExitCodeValidation))
}

// DecodeError handles images that could not be loaded
func DecodeError(path string, err error) {
	logging.UserErrorf("Failed to load image '%s': %v", path, err)
	exit(int(ExitCodeDecode))
}

// FileSystemError handles file operation errors
func FileSystemError(operation string, path string, err error) {
	logging.UserErrorf("Failed to %s '%s': %v", operation, path, err)
	exit(int(ExitCodeFileSystem))
}

// WarnOnError logs a warning for non-fatal errors
func WarnOnError(err error, context string) {
	if err != nil {
		logging.UserWarnf("Warning: %s: %v", context, err)
	}
}

// CheckError is a convenience function for common error checking patterns
func CheckError(err error, context string) {
	if err != nil {
		FatalError(err, context)
	}
}

// MultiError represents multiple errors that occurred
type MultiError struct {
	Errors  []error
	Context string
}

func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred: %v (and %d more)", len(m.Errors), m.Errors[0], len(m.Errors)-1)
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// NewMultiError creates a new MultiError
func NewMultiError(context string) *MultiError {
	return &MultiError{
		Context: context,
		Errors:  make([]error, 0),
	}
}

// Add adds an error to the MultiError
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (m *MultiError) HasErrors() bool {
	return len(m.Errors) > 0
}

// Warn logs every collected error as a warning
func (m *MultiError) Warn() {
	for _, err := range m.Errors {
		WarnOnError(err, m.Context)
	}
}
