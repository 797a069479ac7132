package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

var (
	badgeBase = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	badgeStyles = map[Level]lipgloss.Style{
		LevelInfo:    badgeBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2563EB")),
		LevelSuccess: badgeBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#16A34A")),
		LevelWarning: badgeBase.Foreground(lipgloss.Color("#1F2937")).Background(lipgloss.Color("#FACC15")),
		LevelError:   badgeBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#DC2626")),
	}

	messageStyles = map[Level]lipgloss.Style{
		LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD")),
		LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#86EFAC")),
		LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE68A")),
		LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FCA5A5")).Bold(true),
	}

	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
)

// Console prints one styled line per notification. Auto-close delays have no
// meaning on a scrolling terminal and are ignored.
type Console struct {
	mu         sync.Mutex
	out        io.Writer
	timestamps bool
	now        func() time.Time
}

// ConsoleOption configures a Console notifier.
type ConsoleOption func(*Console)

// WithTimestamps prefixes each line with the wall-clock time.
func WithTimestamps() ConsoleOption {
	return func(c *Console) {
		c.timestamps = true
	}
}

// NewConsole returns a console notifier writing to out, or stdout when nil.
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	if out == nil {
		out = os.Stdout
	}
	c := &Console{out: out, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) ShowInfo(_ context.Context, msg string, _ ports.NotifyOptions) {
	c.write(LevelInfo, msg)
}

func (c *Console) ShowSuccess(_ context.Context, msg string, _ ports.NotifyOptions) {
	c.write(LevelSuccess, msg)
}

func (c *Console) ShowWarning(_ context.Context, msg string, _ ports.NotifyOptions) {
	c.write(LevelWarning, msg)
}

func (c *Console) ShowError(_ context.Context, msg string, _ ports.NotifyOptions) {
	c.write(LevelError, msg)
}

func (c *Console) write(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := Render(level, msg)
	if c.timestamps {
		line = timestampStyle.Render(c.now().Format("15:04:05")) + " " + line
	}
	fmt.Fprintln(c.out, line)
}

// Render formats a notice as a badge followed by the styled message.
func Render(level Level, msg string) string {
	badge, ok := badgeStyles[level]
	if !ok {
		badge = badgeStyles[LevelInfo]
	}
	text, ok := messageStyles[level]
	if !ok {
		text = messageStyles[LevelInfo]
	}
	return badge.Render(badgeLabel(level)) + " " + text.Render(msg)
}

func badgeLabel(level Level) string {
	switch level {
	case LevelSuccess:
		return "OK"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "FAIL"
	default:
		return "INFO"
	}
}

var _ ports.Notifier = (*Console)(nil)
