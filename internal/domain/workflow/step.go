package workflow

import (
	"context"
	"fmt"
	"time"
)

// StepStatus enumerates the lifecycle states of a step.
type StepStatus string

const (
	StatusPending   StepStatus = "pending"
	StatusRunning   StepStatus = "running"
	StatusCompleted StepStatus = "completed"
	StatusFailed    StepStatus = "failed"
	StatusSkipped   StepStatus = "skipped"
)

// DefaultMaxRetries is applied when a definition leaves MaxRetries unset.
const DefaultMaxRetries = 3

// Handler performs the work of a step. The returned value is stored in the
// workflow Context under the step id when the step completes.
type Handler func(ctx context.Context, wc Context, step *Step) (any, error)

// SuccessHook runs after a step completes.
type SuccessHook func(ctx context.Context, result any, wc Context, step *Step)

// ErrorHook runs after a step fails.
type ErrorHook func(ctx context.Context, err error, wc Context, step *Step)

// StepDefinition declares a step. Only Handler is mandatory; nil policy
// pointers take the documented defaults.
type StepDefinition struct {
	ID          string
	Name        string
	Description string
	Handler     Handler

	// Required defaults to true.
	Required *bool
	// Skippable defaults to false.
	Skippable *bool
	// Retryable defaults to true.
	Retryable *bool
	// MaxRetries defaults to DefaultMaxRetries when zero.
	MaxRetries int
	Timeout    time.Duration

	OnSuccess SuccessHook
	OnError   ErrorHook
}

// Step is the stateful record the engine mutates while running a workflow.
type Step struct {
	ID          string
	Name        string
	Description string
	Handler     Handler
	Required    bool
	Skippable   bool
	Retryable   bool
	MaxRetries  int
	Timeout     time.Duration
	OnSuccess   SuccessHook
	OnError     ErrorHook

	Status     StepStatus
	Result     any
	Error      string
	RetryCount int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// Bool returns a pointer to v, for use in StepDefinition policy fields.
func Bool(v bool) *bool {
	return &v
}

// NewStep normalises a definition located at index into a pending Step.
func NewStep(def StepDefinition, index int) (*Step, error) {
	if def.Handler == nil {
		return nil, newMissingFieldError("handler", index)
	}
	if def.Timeout < 0 {
		return nil, newValidationError("step timeout must be non-negative", map[string]interface{}{"index": index})
	}
	if def.MaxRetries < 0 {
		return nil, newValidationError("max retries must be non-negative", map[string]interface{}{"index": index})
	}

	step := &Step{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Handler:     def.Handler,
		Required:    boolOr(def.Required, true),
		Skippable:   boolOr(def.Skippable, false),
		Retryable:   boolOr(def.Retryable, true),
		MaxRetries:  def.MaxRetries,
		Timeout:     def.Timeout,
		OnSuccess:   def.OnSuccess,
		OnError:     def.OnError,
		Status:      StatusPending,
	}
	if step.ID == "" {
		step.ID = fmt.Sprintf("step-%d", index)
	}
	if step.Name == "" {
		step.Name = fmt.Sprintf("Step %d", index+1)
	}
	if step.MaxRetries == 0 {
		step.MaxRetries = DefaultMaxRetries
	}
	return step, nil
}

// NewSteps normalises an ordered list of definitions, rejecting duplicate ids.
func NewSteps(defs []StepDefinition) ([]*Step, error) {
	steps := make([]*Step, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		step, err := NewStep(def, i)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[step.ID]; ok {
			return nil, newDuplicateError(step.ID)
		}
		seen[step.ID] = struct{}{}
		steps = append(steps, step)
	}
	return steps, nil
}

// Reset returns the step to pending and clears every execution field.
func (s *Step) Reset() {
	s.Status = StatusPending
	s.Result = nil
	s.Error = ""
	s.RetryCount = 0
	s.StartTime = time.Time{}
	s.EndTime = time.Time{}
	s.Duration = 0
}

// Clone returns a shallow copy so callers cannot mutate engine-owned state.
func (s *Step) Clone() *Step {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Snapshot captures the observable state of the step.
func (s *Step) Snapshot() StepSnapshot {
	return StepSnapshot{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Status:      s.Status,
		Required:    s.Required,
		Skippable:   s.Skippable,
		Retryable:   s.Retryable,
		MaxRetries:  s.MaxRetries,
		Result:      s.Result,
		Error:       s.Error,
		RetryCount:  s.RetryCount,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Duration:    s.Duration,
	}
}

// IsDone reports whether the step contributes to progress.
func (s StepStatus) IsDone() bool {
	return s == StatusCompleted || s == StatusSkipped
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
