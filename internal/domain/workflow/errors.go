package workflow

import (
	"errors"
	"fmt"
)

// ErrorCode identifies well-known error categories raised by the workflow
// domain and the engine built on top of it.
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeDuplicate  ErrorCode = "DUPLICATE_ID"
	ErrCodeMissing    ErrorCode = "MISSING_REQUIRED"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeState      ErrorCode = "INVALID_STATE"
	ErrCodeExecution  ErrorCode = "EXECUTION_ERROR"
	ErrCodeTimeout    ErrorCode = "TIMEOUT"
	ErrCodeCancelled  ErrorCode = "CANCELLED"
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// Engine state errors. They are returned before any step runs and leave the
// engine untouched.
var (
	ErrAlreadyRunning = &DomainError{Code: ErrCodeState, Message: "workflow already running"}
	ErrNoSteps        = &DomainError{Code: ErrCodeState, Message: "workflow steps not defined"}
)

// DomainError represents a typed error enriched with contextual data.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons against other DomainError values.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) {
		return false
	}
	return e.Code == domainErr.Code && e.Message == domainErr.Message
}

// WithContext clones the error with additional contextual metadata.
func (e *DomainError) WithContext(ctx map[string]interface{}) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: merged,
	}
}

// IsEngineStateError reports whether err was raised because the engine was in
// the wrong lifecycle state for the requested operation.
func IsEngineStateError(err error) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == ErrCodeState
}

// NewDomainError constructs a DomainError with the supplied fields.
func NewDomainError(code ErrorCode, message string, cause error, context map[string]interface{}) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

func newValidationError(message string, context map[string]interface{}) *DomainError {
	return NewDomainError(ErrCodeValidation, message, nil, context)
}

func newDuplicateError(identifier string) *DomainError {
	return NewDomainError(ErrCodeDuplicate, "duplicate identifier", nil, map[string]interface{}{
		"id": identifier,
	})
}

func newMissingFieldError(field string, index int) *DomainError {
	return NewDomainError(ErrCodeMissing, "missing required field", nil, map[string]interface{}{
		"field": field,
		"index": index,
	})
}
