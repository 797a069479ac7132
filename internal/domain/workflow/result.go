package workflow

import (
	"fmt"
	"time"
)

// StepSnapshot is a read-only copy of a step's state.
type StepSnapshot struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      StepStatus    `json:"status"`
	Required    bool          `json:"required"`
	Skippable   bool          `json:"skippable"`
	Retryable   bool          `json:"retryable"`
	MaxRetries  int           `json:"max_retries"`
	Result      any           `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
	RetryCount  int           `json:"retry_count"`
	StartTime   time.Time     `json:"start_time,omitzero"`
	EndTime     time.Time     `json:"end_time,omitzero"`
	Duration    time.Duration `json:"duration"`
}

// WorkflowResult describes a run that reached the end of its steps.
type WorkflowResult struct {
	Success       bool           `json:"success"`
	Context       Context        `json:"context"`
	Steps         []StepSnapshot `json:"steps"`
	TotalDuration time.Duration  `json:"total_duration"`
	CompletedAt   time.Time      `json:"completed_at"`
}

// WorkflowError describes a run aborted by a required step failure or by
// cancellation. It is returned as the error from Engine.Execute.
type WorkflowError struct {
	Success       bool           `json:"success"`
	Message       string         `json:"error"`
	StepID        string         `json:"step_id,omitempty"`
	Err           error          `json:"-"`
	Context       Context        `json:"context"`
	Steps         []StepSnapshot `json:"steps"`
	TotalDuration time.Duration  `json:"total_duration"`
	FailedAt      time.Time      `json:"failed_at"`
}

// Error implements the error interface.
func (e *WorkflowError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Unwrap exposes the error that aborted the run.
func (e *WorkflowError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RequiredStepMessage formats the abort message for a failed required step.
func RequiredStepMessage(stepName string, err error) string {
	return fmt.Sprintf("required step %q failed: %v", stepName, err)
}

// CountByStatus tallies snapshots per status.
func CountByStatus(steps []StepSnapshot) map[StepStatus]int {
	counts := make(map[StepStatus]int, 5)
	for _, s := range steps {
		counts[s.Status]++
	}
	return counts
}
