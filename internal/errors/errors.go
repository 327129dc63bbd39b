// Package errors provides a lightweight structured error type (DocPipeError)
// for category-based classification and exit code mapping in the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a DocPipe error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External collaborator errors
	CategoryResolve ErrorCategory = "resolve"
	CategoryGit     ErrorCategory = "git"
	CategoryNotify  ErrorCategory = "notify"

	// Generation and processing errors
	CategoryGenerate   ErrorCategory = "generate"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryHistory    ErrorCategory = "history"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DocPipeError is a structured error with category, retryability, and context
type DocPipeError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocPipeError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocPipeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocPipeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocPipeError) WithContext(key string, value any) *DocPipeError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocPipeError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocPipeError {
	return &DocPipeError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocPipeError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocPipeError {
	return &DocPipeError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapRetryable creates a new retryable DocPipeError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocPipeError {
	return &DocPipeError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// As finds the first DocPipeError in err's chain.
func As(err error) (*DocPipeError, bool) {
	var dpe *DocPipeError
	if stderrors.As(err, &dpe) {
		return dpe, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dpe, ok := As(err); ok {
		return dpe.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if dpe, ok := As(err); ok {
		return dpe.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocPipeError
func GetCategory(err error) ErrorCategory {
	if dpe, ok := As(err); ok {
		return dpe.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error
func ValidationError(message string) *DocPipeError {
	return &DocPipeError{
		Category: CategoryValidation,
		Severity: SeverityFatal,
		Message:  message,
	}
}
