// Package notify provides ports.Notifier sinks: a styled console writer, a
// structured-log sink, a forwarding sink for interactive front ends, and a
// fan-out combinator.
package notify

import (
	"context"
	"time"

	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a single notification as delivered to a sink.
type Notice struct {
	Level     Level
	Message   string
	AutoClose time.Duration
	At        time.Time
}

// Func adapts a function into a ports.Notifier. Every call is converted into a
// Notice and handed to the function synchronously.
type Func func(ctx context.Context, notice Notice)

func (f Func) ShowInfo(ctx context.Context, msg string, opts ports.NotifyOptions) {
	f.deliver(ctx, LevelInfo, msg, opts)
}

func (f Func) ShowSuccess(ctx context.Context, msg string, opts ports.NotifyOptions) {
	f.deliver(ctx, LevelSuccess, msg, opts)
}

func (f Func) ShowWarning(ctx context.Context, msg string, opts ports.NotifyOptions) {
	f.deliver(ctx, LevelWarning, msg, opts)
}

func (f Func) ShowError(ctx context.Context, msg string, opts ports.NotifyOptions) {
	f.deliver(ctx, LevelError, msg, opts)
}

func (f Func) deliver(ctx context.Context, level Level, msg string, opts ports.NotifyOptions) {
	if f == nil {
		return
	}
	f(ctx, Notice{Level: level, Message: msg, AutoClose: opts.AutoCloseDelay, At: time.Now()})
}

// Multi fans every notification out to each non-nil notifier in order.
type Multi []ports.Notifier

// NewMulti drops nil entries so callers can pass optional sinks directly.
func NewMulti(notifiers ...ports.Notifier) Multi {
	out := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m Multi) ShowInfo(ctx context.Context, msg string, opts ports.NotifyOptions) {
	for _, n := range m {
		n.ShowInfo(ctx, msg, opts)
	}
}

func (m Multi) ShowSuccess(ctx context.Context, msg string, opts ports.NotifyOptions) {
	for _, n := range m {
		n.ShowSuccess(ctx, msg, opts)
	}
}

func (m Multi) ShowWarning(ctx context.Context, msg string, opts ports.NotifyOptions) {
	for _, n := range m {
		n.ShowWarning(ctx, msg, opts)
	}
}

func (m Multi) ShowError(ctx context.Context, msg string, opts ports.NotifyOptions) {
	for _, n := range m {
		n.ShowError(ctx, msg, opts)
	}
}

var (
	_ ports.Notifier = Func(nil)
	_ ports.Notifier = Multi(nil)
)
