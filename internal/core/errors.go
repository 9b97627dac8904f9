package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatValidation ErrorCategory = "validation" // Missing or invalid user input
	ErrCatTransport  ErrorCategory = "transport"  // Agent service reported a failure
	ErrCatCoercion   ErrorCategory = "coercion"   // Agent payload unusable after coercion
	ErrCatConflict   ErrorCategory = "conflict"   // Workflow or agent already busy
	ErrCatNotFound   ErrorCategory = "not_found"  // Resource not found
	ErrCatInternal   ErrorCategory = "internal"   // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Retryable bool
	Cause     error
	Details   map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ErrValidation creates a validation error. The message is shown to the
// operator as-is.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatValidation,
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// ErrTransport creates an error for a failure reported by the agent service.
func ErrTransport(message string) *DomainError {
	return &DomainError{
		Category:  ErrCatTransport,
		Code:      CodeAgentFailed,
		Message:   message,
		Retryable: true,
	}
}

// ErrCoercion creates an error for a payload that could not be used at all.
func ErrCoercion(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatCoercion,
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// ErrConflict creates a conflict error.
func ErrConflict(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatConflict,
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) *DomainError {
	return &DomainError{
		Category:  ErrCatNotFound,
		Code:      "NOT_FOUND",
		Message:   fmt.Sprintf("%s not found: %s", resource, id),
		Retryable: false,
	}
}

// ErrInternal creates an internal error.
func ErrInternal(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatInternal,
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Retryable
	}
	return false
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// UserMessage returns the operator-facing message of a domain error, or
// fallback for anything else.
func UserMessage(err error, fallback string) string {
	var domErr *DomainError
	if errors.As(err, &domErr) && domErr.Message != "" {
		return domErr.Message
	}
	return fallback
}

// Predefined error codes
const (
	// Validation error codes
	CodeMissingRepository   = "MISSING_REPOSITORY"
	CodeMissingRecipient    = "MISSING_RECIPIENT"
	CodeMissingCampaignName = "MISSING_CAMPAIGN_NAME"
	CodeInvalidKind         = "INVALID_KIND"
	CodeInvalidView         = "INVALID_VIEW"
	CodeInvalidInput        = "INVALID_INPUT"

	// Conflict error codes
	CodeWorkflowBusy = "WORKFLOW_BUSY"
	CodeAgentBusy    = "AGENT_BUSY"

	// Execution error codes
	CodeAgentFailed = "AGENT_FAILED"
	CodeEmptyResult = "EMPTY_RESULT"
	CodePanic       = "PANIC"
	CodeNoAgent     = "NO_AGENT"
)
