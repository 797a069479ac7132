package ports

import (
	"context"
	"time"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
)

// RunRecord is the persisted summary of a finished run.
type RunRecord struct {
	ID            string                  `json:"id"`
	Workflow      string                  `json:"workflow"`
	Success       bool                    `json:"success"`
	Error         string                  `json:"error,omitempty"`
	FailedStep    string                  `json:"failed_step,omitempty"`
	Context       workflow.Context        `json:"context"`
	Steps         []workflow.StepSnapshot `json:"steps"`
	TotalDuration time.Duration           `json:"total_duration"`
	FinishedAt    time.Time               `json:"finished_at"`
}

// RunStore persists run records. Implementations must be safe for concurrent
// use and return records from List newest first.
type RunStore interface {
	Save(ctx context.Context, record RunRecord) error
	Get(ctx context.Context, id string) (*RunRecord, error)
	List(ctx context.Context, workflowName string, limit int) ([]RunRecord, error)
}
