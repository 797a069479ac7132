package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logginginfra "github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

func TestFuncConvertsCallsToNotices(t *testing.T) {
	var got []Notice
	n := Func(func(_ context.Context, notice Notice) {
		got = append(got, notice)
	})

	ctx := context.Background()
	n.ShowInfo(ctx, "started", ports.NotifyOptions{AutoCloseDelay: 2 * time.Second})
	n.ShowSuccess(ctx, "done", ports.NotifyOptions{})
	n.ShowWarning(ctx, "skipped", ports.NotifyOptions{AutoCloseDelay: 3 * time.Second})
	n.ShowError(ctx, "boom", ports.NotifyOptions{AutoCloseDelay: 5 * time.Second})

	require.Len(t, got, 4)
	assert.Equal(t, LevelInfo, got[0].Level)
	assert.Equal(t, 2*time.Second, got[0].AutoClose)
	assert.Equal(t, LevelSuccess, got[1].Level)
	assert.Equal(t, LevelWarning, got[2].Level)
	assert.Equal(t, LevelError, got[3].Level)
	assert.Equal(t, "boom", got[3].Message)
	assert.False(t, got[3].At.IsZero())
}

func TestNilFuncIsSilent(t *testing.T) {
	var n Func
	require.NotPanics(t, func() {
		n.ShowError(context.Background(), "ignored", ports.NotifyOptions{})
	})
}

func TestMultiFansOutAndSkipsNil(t *testing.T) {
	var first, second []string
	multi := NewMulti(
		Func(func(_ context.Context, n Notice) { first = append(first, n.Message) }),
		nil,
		Func(func(_ context.Context, n Notice) { second = append(second, n.Message) }),
	)
	require.Len(t, multi, 2)

	multi.ShowWarning(context.Background(), "careful", ports.NotifyOptions{})
	require.Equal(t, []string{"careful"}, first)
	require.Equal(t, []string{"careful"}, second)
}

func TestConsoleWritesOneLinePerNotice(t *testing.T) {
	buf := &bytes.Buffer{}
	console := NewConsole(buf)

	console.ShowInfo(context.Background(), "Started: Fetch", ports.NotifyOptions{})
	console.ShowError(context.Background(), "Fetch failed: timeout", ports.NotifyOptions{})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "INFO")
	require.Contains(t, lines[0], "Started: Fetch")
	require.Contains(t, lines[1], "FAIL")
	require.Contains(t, lines[1], "Fetch failed: timeout")
}

func TestConsoleTimestamps(t *testing.T) {
	buf := &bytes.Buffer{}
	console := NewConsole(buf, WithTimestamps())
	console.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC) }

	console.ShowSuccess(context.Background(), "done", ports.NotifyOptions{})
	require.Contains(t, buf.String(), "09:30:15")
	require.Contains(t, buf.String(), "OK")
}

func TestLoggingMapsLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logginginfra.New(logginginfra.Options{Writer: buf, Level: "debug", Format: logginginfra.FormatJSON})
	require.NoError(t, err)

	n := NewLogging(logger)
	n.ShowWarning(context.Background(), "Fetch skipped", ports.NotifyOptions{AutoCloseDelay: 3 * time.Second})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Fetch skipped", entry["msg"])
	assert.Equal(t, "warning", entry["notice"])
	assert.EqualValues(t, 3000, entry["auto_close_ms"])
}

func TestLoggingWithoutLoggerIsSilent(t *testing.T) {
	n := NewLogging(nil)
	require.NotPanics(t, func() {
		n.ShowInfo(context.Background(), "ignored", ports.NotifyOptions{})
	})
}
