// Package logger provides the process-level zerolog logger used by the CLI
// and the scheduler.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger wraps zerolog with key/value helpers.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: logger}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	withPairs(l.base.Info(), keysAndValues).Msg(msg)
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	withPairs(l.base.Debug(), keysAndValues).Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	withPairs(l.base.Warn(), keysAndValues).Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	withPairs(event, keysAndValues).Msg(msg)
}

// Cron adapts the logger to the cron.Logger interface. Scheduler bookkeeping
// chatter is demoted to debug; errors keep their level.
func (l *Logger) Cron() cron.Logger {
	return cronLogger{l: l}
}

type cronLogger struct {
	l *Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(err, "cron: "+msg, keysAndValues...)
}

func withPairs(event *zerolog.Event, keysAndValues []any) *zerolog.Event {
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 >= len(keysAndValues) {
			event = event.Interface(key, "(MISSING)")
			break
		}
		switch value := keysAndValues[i+1].(type) {
		case error:
			event = event.AnErr(key, value)
		case time.Time:
			event = event.Time(key, value)
		case time.Duration:
			event = event.Dur(key, value)
		default:
			event = event.Interface(key, value)
		}
	}
	return event
}
