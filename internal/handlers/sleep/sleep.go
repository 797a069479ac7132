// Package sleephandler pauses a run for a fixed duration.
package sleephandler

import (
	"context"
	"fmt"
	"time"

	"github.com/Sam4587/Workspace-sub000/internal/config"
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
)

// Build adapts New to the registry builder signature.
func Build(step config.Step) (workflow.Handler, error) {
	if step.Sleep == nil {
		return nil, fmt.Errorf("sleep configuration missing")
	}
	d, err := time.ParseDuration(step.Sleep.Duration)
	if err != nil {
		return nil, fmt.Errorf("parse duration: %w", err)
	}
	return New(d)
}

// New returns a handler that waits for d or until ctx is done. The result is
// the slept duration in its string form.
func New(d time.Duration) (workflow.Handler, error) {
	if d < 0 {
		return nil, fmt.Errorf("duration must not be negative")
	}
	return func(ctx context.Context, _ workflow.Context, _ *workflow.Step) (any, error) {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return d.String(), nil
		}
	}, nil
}
