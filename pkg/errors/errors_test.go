package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("config.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "config.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "config.yaml")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("steps[1].id", "duplicate step id \"fetch\"", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "steps[1].id", validationErr.Field)
	require.Contains(t, validationErr.Message, "duplicate step id")
}

func TestExecutionErrorIncludesStepContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("command failed")
	err := NewExecutionError("render_digest", underlying)

	var executionErr *ExecutionError
	require.ErrorAs(t, err, &executionErr)
	require.Equal(t, "render_digest", executionErr.StepID)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestHandlerErrorIncludesStepType(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("not supported")
	err := NewHandlerError("webhook", "notify", underlying)

	var handlerErr *HandlerError
	require.ErrorAs(t, err, &handlerErr)
	require.Equal(t, "webhook", handlerErr.StepType)
	require.Equal(t, "notify", handlerErr.StepID)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "handler error [webhook] on step notify: not supported", err.Error())
}

func TestHandlerErrorWithoutStep(t *testing.T) {
	t.Parallel()

	err := NewHandlerError("webhook", "", stdErrors.New("unknown"))
	require.Equal(t, "handler error [webhook]: unknown", err.Error())
}
