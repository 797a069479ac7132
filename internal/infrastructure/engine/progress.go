package engine

import (
	"math"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
)

// Progress returns the rounded percentage of completed or skipped steps, or 0
// when no steps are defined.
func (e *Engine) Progress() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return progressOf(e.steps)
}

// CurrentStep returns the active step, if a run is in progress.
func (e *Engine) CurrentStep() (workflow.StepSnapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.current < 0 || e.current >= len(e.steps) {
		return workflow.StepSnapshot{}, false
	}
	return e.steps[e.current].Snapshot(), true
}

func progressOf(steps []*workflow.Step) int {
	if len(steps) == 0 {
		return 0
	}
	done := 0
	for _, step := range steps {
		if step.Status.IsDone() {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(steps))))
}
