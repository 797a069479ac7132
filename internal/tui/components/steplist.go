package components

import (
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
)

// StepEntry represents a single step for rendering.
type StepEntry struct {
	ID   string
	Step workflow.StepSnapshot
}

// StepList renders a list of steps with their current status.
type StepList struct {
	entries []StepEntry
}

// NewStepList constructs a step list component. Ids missing from steps are
// rendered as pending.
func NewStepList(order []string, steps map[string]workflow.StepSnapshot) StepList {
	entries := make([]StepEntry, 0, len(order))
	for _, id := range order {
		step, ok := steps[id]
		if !ok {
			step = workflow.StepSnapshot{ID: id, Name: id, Status: workflow.StatusPending}
		}
		entries = append(entries, StepEntry{ID: id, Step: step})
	}
	return StepList{entries: entries}
}

// Entries returns the ordered step entries.
func (s StepList) Entries() []StepEntry {
	clone := make([]StepEntry, len(s.entries))
	copy(clone, s.entries)
	return clone
}
