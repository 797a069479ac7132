package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/events"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/notify"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards engine events to the program as model messages.
func Bridge(publisher ports.EventPublisher, sender Sender) (ports.Subscription, error) {
	return publisher.Subscribe(events.AllEvents, func(_ context.Context, event ports.DomainEvent) error {
		if msg := messageFor(event); msg != nil {
			sender.Send(msg)
		}
		return nil
	})
}

// Notifier returns a notification sink that forwards notices to the program.
func Notifier(sender Sender) notify.Func {
	return func(_ context.Context, n notify.Notice) {
		sender.Send(NoticeMsg{Notice: n})
	}
}

func messageFor(event ports.DomainEvent) tea.Msg {
	payload, _ := event.Payload().(map[string]interface{})
	id := stringField(payload, "step_id")

	switch event.EventType() {
	case ports.EventStepStarted:
		at, _ := payload["timestamp"].(time.Time)
		return StepStartMsg{
			ID:      id,
			Name:    stringField(payload, "step_name"),
			Attempt: intField(payload, "attempt"),
			Time:    at,
		}
	case ports.EventStepCompleted:
		return StepDoneMsg{ID: id, Status: workflow.StatusCompleted, Duration: millis(payload)}
	case ports.EventStepFailed:
		return StepDoneMsg{ID: id, Status: workflow.StatusFailed, Error: stringField(payload, "error"), Duration: millis(payload)}
	case ports.EventStepSkipped:
		return StepDoneMsg{ID: id, Status: workflow.StatusSkipped, Error: stringField(payload, "error")}
	case ports.EventRetryScheduled:
		return RetryMsg{
			Pass:  intField(payload, "pass"),
			Steps: intField(payload, "steps"),
			Delay: time.Duration(intField(payload, "delay_ms")) * time.Millisecond,
		}
	}
	return nil
}

func stringField(payload map[string]interface{}, key string) string {
	s, _ := payload[key].(string)
	return s
}

func intField(payload map[string]interface{}, key string) int {
	switch v := payload[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func millis(payload map[string]interface{}) time.Duration {
	return time.Duration(intField(payload, "duration")) * time.Millisecond
}
