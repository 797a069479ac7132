package engine

import (
	"context"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// RetryFailedSteps re-runs every failed step once, in declaration order,
// regardless of its required or skippable policy. Pending steps are never
// resumed. The returned context is a copy of wc with the results of steps
// that now succeed.
func (e *Engine) RetryFailedSteps(ctx context.Context, wc workflow.Context) (workflow.Context, error) {
	return e.retry(ctx, wc, nil)
}

// RetryRetryableSteps is RetryFailedSteps restricted to the steps reported by
// RetryableFailedSteps.
func (e *Engine) RetryRetryableSteps(ctx context.Context, wc workflow.Context) (workflow.Context, error) {
	return e.retry(ctx, wc, retryable)
}

func retryable(step *workflow.Step) bool {
	return step.Retryable && step.RetryCount < step.MaxRetries
}

func (e *Engine) retry(ctx context.Context, wc workflow.Context, eligible func(*workflow.Step) bool) (workflow.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	out := wc.Clone()

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return out, workflow.ErrAlreadyRunning
	}
	var failed []int
	for i, step := range e.steps {
		if step.Status == workflow.StatusFailed && (eligible == nil || eligible(step)) {
			failed = append(failed, i)
		}
	}
	if len(failed) == 0 {
		e.mu.Unlock()
		if e.notifier != nil {
			e.notifier.ShowInfo(ctx, "No failed steps to retry", ports.NotifyOptions{AutoCloseDelay: e.settings.NotificationDuration})
		}
		return out, nil
	}
	e.running = true
	steps := e.steps
	e.mu.Unlock()
	defer e.finish()

	e.logger.Info(ctx, "retrying failed steps", "count", len(failed))
	for _, idx := range failed {
		step := steps[idx]
		e.setCurrent(idx)
		e.update(func() {
			step.RetryCount++
		})
		e.publish(ctx, ports.EventStepRetried, map[string]interface{}{
			"workflow":    e.name,
			"step_id":     step.ID,
			"retry_count": step.RetryCount,
			"max_retries": step.MaxRetries,
		})

		outcome := e.executeStep(ctx, step, out)
		if outcome.err == nil {
			out[step.ID] = outcome.result
		}
	}
	return out, nil
}

// RetryableFailedSteps returns the failed steps a caller may still retry:
// those marked retryable whose retry count is below their advisory maximum.
func (e *Engine) RetryableFailedSteps() []workflow.StepSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []workflow.StepSnapshot
	for _, step := range e.steps {
		if step.Status == workflow.StatusFailed && retryable(step) {
			out = append(out, step.Snapshot())
		}
	}
	return out
}
