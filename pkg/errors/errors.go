// Package errors defines the typed failures raised while loading workflow
// files and building or running step handlers.
package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents a runtime failure inside a step handler.
type ExecutionError struct {
	StepID string
	Err    error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(stepID string, err error) error {
	return &ExecutionError{StepID: stepID, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.StepID != "" {
		return fmt.Sprintf("execution error on step %s: %v", e.StepID, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// HandlerError reports a step type that could not be turned into a runnable
// handler, either because it is unknown or because its builder rejected the
// configuration.
type HandlerError struct {
	StepType string
	StepID   string
	Message  string
	Err      error
}

// NewHandlerError constructs a HandlerError for the given step.
func NewHandlerError(stepType, stepID string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &HandlerError{StepType: stepType, StepID: stepID, Message: message, Err: err}
}

func (e *HandlerError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.StepType != "" && e.StepID != "":
		return fmt.Sprintf("handler error [%s] on step %s: %s", e.StepType, e.StepID, e.Message)
	case e.StepType != "":
		return fmt.Sprintf("handler error [%s]: %s", e.StepType, e.Message)
	default:
		return fmt.Sprintf("handler error: %s", e.Message)
	}
}

// Unwrap exposes the underlying error.
func (e *HandlerError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
