// Package valuehandler emits literal values or copies values between context
// paths.
package valuehandler

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sam4587/Workspace-sub000/internal/config"
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	apperrors "github.com/Sam4587/Workspace-sub000/pkg/errors"
)

// Build adapts New to the registry builder signature.
func Build(step config.Step) (workflow.Handler, error) {
	return New(step.Value)
}

// New returns a handler producing cfg.Value, or the value found at cfg.From
// in the run context. A missing path fails the step.
func New(cfg *config.ValueStep) (workflow.Handler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("value configuration missing")
	}
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		literal := cfg.Value
		return func(context.Context, workflow.Context, *workflow.Step) (any, error) {
			return literal, nil
		}, nil
	}

	return func(_ context.Context, wc workflow.Context, step *workflow.Step) (any, error) {
		value, ok := wc.Lookup(from)
		if !ok {
			return nil, apperrors.NewExecutionError(step.ID, fmt.Errorf("context path %q not found", from))
		}
		return value, nil
	}, nil
}
