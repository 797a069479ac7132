package notify

import (
	"context"

	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// Logging records notifications as structured log entries, mapping success
// and info to Info, warnings to Warn and errors to Error.
type Logging struct {
	logger ports.Logger
}

// NewLogging wraps logger. A nil logger produces a silent notifier.
func NewLogging(logger ports.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) ShowInfo(ctx context.Context, msg string, opts ports.NotifyOptions) {
	if l.logger != nil {
		l.logger.Info(ctx, msg, l.fields(LevelInfo, opts)...)
	}
}

func (l *Logging) ShowSuccess(ctx context.Context, msg string, opts ports.NotifyOptions) {
	if l.logger != nil {
		l.logger.Info(ctx, msg, l.fields(LevelSuccess, opts)...)
	}
}

func (l *Logging) ShowWarning(ctx context.Context, msg string, opts ports.NotifyOptions) {
	if l.logger != nil {
		l.logger.Warn(ctx, msg, l.fields(LevelWarning, opts)...)
	}
}

func (l *Logging) ShowError(ctx context.Context, msg string, opts ports.NotifyOptions) {
	if l.logger != nil {
		l.logger.Error(ctx, msg, l.fields(LevelError, opts)...)
	}
}

func (l *Logging) fields(level Level, opts ports.NotifyOptions) []interface{} {
	fields := []interface{}{"notice", string(level)}
	if opts.AutoCloseDelay > 0 {
		fields = append(fields, "auto_close_ms", opts.AutoCloseDelay.Milliseconds())
	}
	return fields
}

var _ ports.Notifier = (*Logging)(nil)
