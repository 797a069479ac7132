package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/notify"
)

func declared(ids ...string) []workflow.StepSnapshot {
	out := make([]workflow.StepSnapshot, len(ids))
	for i, id := range ids {
		out[i] = workflow.StepSnapshot{ID: id, Name: id, Status: workflow.StatusPending}
	}
	return out
}

func TestNewModelInitialisesState(t *testing.T) {
	m := NewModel("Test", declared("a", "b"), nil)

	require.Equal(t, "Test", m.name)
	require.Equal(t, []string{"a", "b"}, m.order)
	require.Equal(t, 2, m.TotalSteps())
	require.Zero(t, m.SettledSteps())
	require.False(t, m.IsFinished())
}

func TestModelInitReturnsTickCommand(t *testing.T) {
	m := NewModel("", nil, nil)
	require.NotNil(t, m.Init())
}

func TestSettledCountsCompletedAndSkipped(t *testing.T) {
	m := NewModel("demo", declared("a", "b", "c"), nil)
	m.steps["a"] = workflow.StepSnapshot{ID: "a", Status: workflow.StatusCompleted}
	m.steps["b"] = workflow.StepSnapshot{ID: "b", Status: workflow.StatusSkipped}
	m.steps["c"] = workflow.StepSnapshot{ID: "c", Status: workflow.StatusFailed}

	require.Equal(t, 2, m.SettledSteps())
}

func TestNoticesAreBounded(t *testing.T) {
	m := NewModel("demo", nil, nil)
	for i := 0; i < maxNotices+3; i++ {
		m.pushNotice(notify.Notice{Level: notify.LevelInfo, Message: string(rune('a' + i))})
	}

	require.Len(t, m.notices, maxNotices)
	require.Equal(t, "d", m.notices[0].Message)
}
