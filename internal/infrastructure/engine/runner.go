package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

type stepOutcome struct {
	result any
	err    error
}

// executeStep runs one step and records its outcome on the step. It never
// decides whether a failure aborts the run.
func (e *Engine) executeStep(ctx context.Context, step *workflow.Step, wc workflow.Context) stepOutcome {
	start := time.Now()
	e.update(func() {
		step.Status = workflow.StatusRunning
		step.StartTime = start
		step.EndTime = time.Time{}
		step.Duration = 0
		step.Result = nil
		step.Error = ""
	})

	logger := e.logger.With("step_id", step.ID)
	logger.Debug(ctx, "executing step")
	e.notify(ctx, noticeInfo, fmt.Sprintf("Started: %s", step.Name), startNoticeDelay)
	e.publish(ctx, ports.EventStepStarted, map[string]interface{}{
		"workflow":  e.name,
		"step_id":   step.ID,
		"step_name": step.Name,
		"attempt":   step.RetryCount + 1,
		"timestamp": start.UTC(),
	})

	result, err := e.invoke(ctx, step, wc)
	end := time.Now()

	if err != nil {
		e.update(func() {
			step.Status = workflow.StatusFailed
			step.Error = err.Error()
			step.EndTime = end
			step.Duration = end.Sub(start)
		})
		logger.Error(ctx, "step failed", "error", err, "duration_ms", end.Sub(start).Milliseconds())
		e.notify(ctx, noticeError, fmt.Sprintf("%s failed: %s", step.Name, err.Error()), errorNoticeDelay)
		e.publish(ctx, ports.EventStepFailed, map[string]interface{}{
			"workflow": e.name,
			"step_id":  step.ID,
			"error":    err.Error(),
			"duration": end.Sub(start).Milliseconds(),
		})
		if step.OnError != nil {
			step.OnError(ctx, err, wc.Clone(), step.Clone())
		}
		return stepOutcome{err: err}
	}

	e.update(func() {
		step.Status = workflow.StatusCompleted
		step.Result = result
		step.EndTime = end
		step.Duration = end.Sub(start)
	})
	logger.Info(ctx, "step completed", "duration_ms", end.Sub(start).Milliseconds())
	if e.settings.AutoClose {
		e.notify(ctx, noticeSuccess, fmt.Sprintf("%s completed", step.Name), e.settings.NotificationDuration)
	}
	e.publish(ctx, ports.EventStepCompleted, map[string]interface{}{
		"workflow": e.name,
		"step_id":  step.ID,
		"duration": end.Sub(start).Milliseconds(),
	})
	if step.OnSuccess != nil {
		step.OnSuccess(ctx, result, wc.Clone(), step.Clone())
	}
	if e.callbacks.OnStepComplete != nil {
		e.callbacks.OnStepComplete(ctx, step.Clone(), result, wc.Clone())
	}
	return stepOutcome{result: result}
}

// invoke calls the handler with the step deadline applied and converts panics
// and deadline expiry into domain errors.
func (e *Engine) invoke(ctx context.Context, step *workflow.Step, wc workflow.Context) (result any, err error) {
	stepCtx := ctx
	if step.Timeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, step.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = workflow.NewDomainError(workflow.ErrCodeInternal, fmt.Sprintf("handler panicked: %v", r), nil, map[string]interface{}{
				"step_id": step.ID,
				"stack":   string(debug.Stack()),
			})
		}
	}()

	result, err = step.Handler(stepCtx, wc.Clone(), step.Clone())
	if err == nil {
		return result, nil
	}
	if isNilError(err) {
		return nil, workflow.NewDomainError(workflow.ErrCodeExecution, fmt.Sprintf("handler returned a nil %T error", err), nil, map[string]interface{}{"step_id": step.ID})
	}
	if step.Timeout > 0 && ctx.Err() == nil && errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
		return nil, workflow.NewDomainError(workflow.ErrCodeTimeout, fmt.Sprintf("step timed out after %s", step.Timeout), err, map[string]interface{}{"step_id": step.ID})
	}
	return nil, err
}

// isNilError reports a non-nil error interface wrapping a nil pointer, map,
// slice, func or channel, whose Error method may not be callable.
func isNilError(err error) bool {
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarning
	noticeError
)

func (e *Engine) notify(ctx context.Context, kind noticeKind, msg string, delay time.Duration) {
	if e.notifier == nil || !e.settings.ShowNotifications {
		return
	}
	opts := ports.NotifyOptions{AutoCloseDelay: delay}
	switch kind {
	case noticeSuccess:
		e.notifier.ShowSuccess(ctx, msg, opts)
	case noticeWarning:
		e.notifier.ShowWarning(ctx, msg, opts)
	case noticeError:
		e.notifier.ShowError(ctx, msg, opts)
	default:
		e.notifier.ShowInfo(ctx, msg, opts)
	}
}

type engineEvent struct {
	eventType string
	payload   interface{}
}

func (e engineEvent) EventType() string    { return e.eventType }
func (e engineEvent) Payload() interface{} { return e.payload }

func (e *Engine) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if e.events == nil {
		return
	}
	event := engineEvent{eventType: eventType, payload: payload}
	if err := e.events.Publish(ctx, event); err != nil {
		e.logger.Warn(ctx, "failed to publish engine event", "event_type", eventType, "error", err)
	}
}
