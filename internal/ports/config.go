package ports

import (
	"context"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
)

// WorkflowLoader loads workflow definitions from an external source. It must
// respect context cancellation and translate failures into domain error codes:
//   - io/fs.ErrNotExist → ErrCodeNotFound
//   - YAML or schema failures → ErrCodeValidation
//   - unknown step types → ErrCodeValidation with the offending step id
//   - cancellation → ErrCodeCancelled
type WorkflowLoader interface {
	// Load returns a definition whose steps carry ready-to-run handlers.
	Load(ctx context.Context, path string) (*workflow.Definition, error)

	// Validate checks the source without keeping the result.
	Validate(ctx context.Context, path string) error
}
