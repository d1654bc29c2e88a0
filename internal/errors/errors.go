package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"

	// Workload definition errors (WORKLOAD-001 to WORKLOAD-099)
	ErrCodeWorkloadSetupShape ErrorCode = "WORKLOAD-001"

	// Build expansion errors (EXPANSION-001 to EXPANSION-099)
	ErrCodeExpansionUnknownKey ErrorCode = "EXPANSION-001"
	ErrCodeExpansionBadValue   ErrorCode = "EXPANSION-002"

	// Operation errors (OP-001 to OP-099)
	ErrCodeOpUnknownMode ErrorCode = "OP-001"

	// Version control errors (VCS-001 to VCS-099)
	ErrCodeVCSCommandFailed ErrorCode = "VCS-001"
)

// TaskgenError represents an enhanced error with code and suggestions
type TaskgenError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *TaskgenError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *TaskgenError) Unwrap() error {
	return e.Cause
}

// New creates a new TaskgenError
func New(code ErrorCode, message string) *TaskgenError {
	return &TaskgenError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new TaskgenError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *TaskgenError {
	return &TaskgenError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *TaskgenError) WithSuggestion(suggestion string) *TaskgenError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *TaskgenError) WithSuggestions(suggestions ...string) *TaskgenError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// CodeOf returns the error code of err if it is a TaskgenError, or "" otherwise
func CodeOf(err error) ErrorCode {
	if tgErr, ok := err.(*TaskgenError); ok {
		return tgErr.Code
	}
	return ""
}

// Common error constructors for frequently used errors

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *TaskgenError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file %s not found", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates a YAML parse error
func NewFileUnmarshalError(path string, cause error) *TaskgenError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse YAML file: %s", path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion("Ensure the file is valid YAML")
}

// NewSetupShapeError creates a malformed PrepareEnvironmentWith error
func NewSetupShapeError(path string) *TaskgenError {
	return New(ErrCodeWorkloadSetupShape,
		fmt.Sprintf("need exactly mongodb_setup: [list] in PrepareEnvironmentWith for file %s", path)).
		WithSuggestion("Use a single mongodb_setup key holding a list of setup names")
}

// NewUnknownExpansionError creates an unknown expansion key error
func NewUnknownExpansionError(key string, known []string) *TaskgenError {
	return New(ErrCodeExpansionUnknownKey,
		fmt.Sprintf("unknown expansion key %s, know about %s", key, strings.Join(known, ", "))).
		WithSuggestion("Check the Requires block of the workload for typos").
		WithSuggestion("Verify the expansions file provides the key")
}

// NewUnknownModeError creates an unsupported operation mode error
func NewUnknownModeError(mode string) *TaskgenError {
	return New(ErrCodeOpUnknownMode, fmt.Sprintf("invalid operation mode: %s", mode)).
		WithSuggestion("Use one of: all_tasks, variant_tasks, patch_tasks")
}

// NewVCSCommandError creates a version-control invocation error
func NewVCSCommandError(command string, cause error) *TaskgenError {
	return Wrap(ErrCodeVCSCommandFailed, fmt.Sprintf("git command failed: %s", command), cause).
		WithSuggestion("Run the command manually inside the repository to inspect the failure").
		WithSuggestion("Make sure the repository has an origin/master reference")
}
