package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
)

func TestNewStepList(t *testing.T) {
	t.Parallel()

	t.Run("creates empty step list", func(t *testing.T) {
		t.Parallel()
		sl := NewStepList([]string{}, map[string]workflow.StepSnapshot{})
		require.Empty(t, sl.entries)
	})

	t.Run("respects provided order", func(t *testing.T) {
		t.Parallel()
		order := []string{"step3", "step1", "step2"}
		steps := map[string]workflow.StepSnapshot{
			"step1": {ID: "step1", Status: workflow.StatusCompleted},
			"step2": {ID: "step2", Status: workflow.StatusRunning},
			"step3": {ID: "step3", Status: workflow.StatusFailed},
		}

		sl := NewStepList(order, steps)
		require.Len(t, sl.entries, 3)
		require.Equal(t, "step3", sl.entries[0].ID)
		require.Equal(t, workflow.StatusFailed, sl.entries[0].Step.Status)
		require.Equal(t, "step1", sl.entries[1].ID)
		require.Equal(t, workflow.StatusCompleted, sl.entries[1].Step.Status)
		require.Equal(t, "step2", sl.entries[2].ID)
	})

	t.Run("unknown ids render as pending", func(t *testing.T) {
		t.Parallel()
		sl := NewStepList([]string{"ghost"}, map[string]workflow.StepSnapshot{})
		require.Len(t, sl.entries, 1)
		require.Equal(t, workflow.StatusPending, sl.entries[0].Step.Status)
		require.Equal(t, "ghost", sl.entries[0].Step.Name)
	})
}

func TestStepListEntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	sl := NewStepList([]string{"a"}, map[string]workflow.StepSnapshot{"a": {ID: "a", Status: workflow.StatusPending}})
	entries := sl.Entries()
	entries[0].ID = "mutated"

	require.Equal(t, "a", sl.Entries()[0].ID)
}
