package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/engine"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/events"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/notify"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func TestBridgeForwardsEngineEvents(t *testing.T) {
	publisher := events.NewLoggingPublisher(logging.NewNoOpLogger())
	sender := &recordingSender{}
	sub, err := Bridge(publisher, sender)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	eng := engine.New(engine.WithEvents(publisher), engine.WithNotifier(Notifier(sender)))
	_, err = eng.DefineSteps([]workflow.StepDefinition{
		{ID: "ok", Handler: func(context.Context, workflow.Context, *workflow.Step) (any, error) { return 1, nil }},
		{ID: "opt", Skippable: workflow.Bool(true), Required: workflow.Bool(false), Handler: func(context.Context, workflow.Context, *workflow.Step) (any, error) {
			return nil, context.DeadlineExceeded
		}},
	})
	require.NoError(t, err)
	_, err = eng.Execute(context.Background(), nil)
	require.NoError(t, err)

	m := NewModel("demo", eng.Steps(), nil)
	var notices int
	for _, msg := range sender.msgs {
		if _, ok := msg.(NoticeMsg); ok {
			notices++
		}
		m, _ = apply(t, m, msg)
	}

	require.Positive(t, notices)
	require.Equal(t, workflow.StatusCompleted, m.steps["ok"].Status)
	require.Equal(t, workflow.StatusSkipped, m.steps["opt"].Status)
	require.Equal(t, 2, m.SettledSteps())
}

func TestMessageForRetryScheduled(t *testing.T) {
	msg := messageFor(testEvent{eventType: "run.retry_scheduled", payload: map[string]interface{}{
		"pass": 2, "steps": 1, "delay_ms": int64(1500),
	}})
	require.Equal(t, RetryMsg{Pass: 2, Steps: 1, Delay: 1500 * time.Millisecond}, msg)
}

func TestMessageForIgnoresWorkflowEvents(t *testing.T) {
	require.Nil(t, messageFor(testEvent{eventType: "workflow.completed"}))
}

func TestNotifierSendsNotice(t *testing.T) {
	sender := &recordingSender{}
	Notifier(sender).ShowWarning(context.Background(), "careful", ports.NotifyOptions{AutoCloseDelay: 3 * time.Second})

	require.Len(t, sender.msgs, 1)
	notice := sender.msgs[0].(NoticeMsg).Notice
	require.Equal(t, notify.LevelWarning, notice.Level)
	require.Equal(t, "careful", notice.Message)
	require.Equal(t, 3*time.Second, notice.AutoClose)
}

type testEvent struct {
	eventType string
	payload   interface{}
}

func (e testEvent) EventType() string    { return e.eventType }
func (e testEvent) Payload() interface{} { return e.payload }
