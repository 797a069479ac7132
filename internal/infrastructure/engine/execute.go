package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

const (
	startNoticeDelay = 2 * time.Second
	skipNoticeDelay  = 3 * time.Second
	errorNoticeDelay = 5 * time.Second
)

// Execute runs every defined step in order, seeding the context with a copy of
// initial. A failed required step aborts the run and is returned as a
// *workflow.WorkflowError. Engine state errors are returned before any step
// runs.
func (e *Engine) Execute(ctx context.Context, initial workflow.Context) (*workflow.WorkflowResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.finish()

	var steps []*workflow.Step
	e.update(func() {
		e.result = nil
		e.failure = nil
		steps = e.steps
	})

	wc := initial.Clone()
	start := time.Now()

	e.logger.Info(ctx, "workflow started", "steps", len(steps))
	e.notify(ctx, noticeInfo, fmt.Sprintf("Starting workflow: %s", e.name), startNoticeDelay)
	e.publish(ctx, ports.EventWorkflowStarted, map[string]interface{}{
		"workflow":  e.name,
		"steps":     len(steps),
		"timestamp": start.UTC(),
	})

	for i, step := range steps {
		e.setCurrent(i)

		if err := ctx.Err(); err != nil {
			cause := workflow.NewDomainError(workflow.ErrCodeCancelled, "execution cancelled", err, map[string]interface{}{"step_id": step.ID})
			return nil, e.abort(ctx, wc, start, step, cause, fmt.Sprintf("workflow cancelled before step %q", step.Name))
		}

		outcome := e.executeStep(ctx, step, wc)
		if outcome.err == nil {
			wc[step.ID] = outcome.result
			continue
		}

		if step.Required {
			return nil, e.abort(ctx, wc, start, step, outcome.err, workflow.RequiredStepMessage(step.Name, outcome.err))
		}
		if step.Skippable {
			e.skip(ctx, step)
			continue
		}
		// Neither required nor skippable: the step stays failed and the run
		// carries on.
		e.logger.Warn(ctx, "optional step failed, continuing", "step_id", step.ID, "error", outcome.err)
	}

	return e.complete(ctx, wc, start), nil
}

func (e *Engine) complete(ctx context.Context, wc workflow.Context, start time.Time) *workflow.WorkflowResult {
	var result *workflow.WorkflowResult
	e.update(func() {
		result = &workflow.WorkflowResult{
			Success:       true,
			Context:       wc,
			Steps:         snapshotSteps(e.steps),
			TotalDuration: time.Since(start),
			CompletedAt:   time.Now().UTC(),
		}
		e.result = result
		e.current = -1
	})

	e.logger.Info(ctx, "workflow completed", "duration_ms", result.TotalDuration.Milliseconds())
	if e.settings.AutoClose {
		e.notify(ctx, noticeSuccess, fmt.Sprintf("Workflow %q completed", e.name), e.settings.NotificationDuration)
	}
	e.publish(ctx, ports.EventWorkflowCompleted, map[string]interface{}{
		"workflow": e.name,
		"duration": result.TotalDuration.Milliseconds(),
	})

	if e.callbacks.OnComplete != nil {
		e.callbacks.OnComplete(ctx, result)
	}
	return result
}

func (e *Engine) abort(ctx context.Context, wc workflow.Context, start time.Time, step *workflow.Step, cause error, message string) *workflow.WorkflowError {
	code := workflow.ErrCodeExecution
	var de *workflow.DomainError
	if errors.As(cause, &de) && de.Code == workflow.ErrCodeCancelled {
		code = workflow.ErrCodeCancelled
	}
	err := workflow.NewDomainError(code, message, cause, map[string]interface{}{"step_id": step.ID})

	var failure *workflow.WorkflowError
	e.update(func() {
		failure = &workflow.WorkflowError{
			Success:       false,
			Message:       message,
			StepID:        step.ID,
			Err:           err,
			Context:       wc,
			Steps:         snapshotSteps(e.steps),
			TotalDuration: time.Since(start),
			FailedAt:      time.Now().UTC(),
		}
		e.failure = failure
		e.current = -1
	})

	e.logger.Error(ctx, "workflow failed", "step_id", step.ID, "error", cause)
	e.notify(ctx, noticeError, fmt.Sprintf("Workflow %q failed: %s", e.name, message), errorNoticeDelay)
	e.publish(ctx, ports.EventWorkflowFailed, map[string]interface{}{
		"workflow": e.name,
		"step_id":  step.ID,
		"error":    message,
		"duration": failure.TotalDuration.Milliseconds(),
	})

	if e.callbacks.OnError != nil {
		e.callbacks.OnError(ctx, err, failure)
	}
	return failure
}

func (e *Engine) skip(ctx context.Context, step *workflow.Step) {
	e.update(func() {
		step.Status = workflow.StatusSkipped
	})
	e.logger.Info(ctx, "step skipped", "step_id", step.ID)
	e.notify(ctx, noticeWarning, fmt.Sprintf("Skipped step: %s", step.Name), skipNoticeDelay)
	e.publish(ctx, ports.EventStepSkipped, map[string]interface{}{
		"workflow": e.name,
		"step_id":  step.ID,
		"error":    step.Error,
	})
}
