package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

type every time.Duration

func (e every) Next(t time.Time) time.Time { return t.Add(time.Duration(e)) }

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"*/5 * * * *", "@daily", "@every 1h30m"} {
		_, err := ParseSchedule(spec)
		require.NoError(t, err, spec)
	}
	_, err := ParseSchedule("every tuesday")
	require.Error(t, err)
}

func TestAddRejectsInvalidSpec(t *testing.T) {
	t.Parallel()

	s := New(logging.NewNoOpLogger(), nil)
	_, err := s.Add("nope", "digest", func(context.Context) error { return nil })
	require.Error(t, err)
	require.Empty(t, s.Entries())
}

func TestEntriesAndRemove(t *testing.T) {
	t.Parallel()

	s := New(nil, nil)
	first, err := s.Add("@hourly", "digest", func(context.Context) error { return nil })
	require.NoError(t, err)
	second, err := s.Add("0 9 * * 1", "report", func(context.Context) error { return nil })
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, first, entries[0].ID)
	require.Equal(t, "digest", entries[0].Workflow)
	require.Equal(t, "@hourly", entries[0].Spec)
	require.Equal(t, second, entries[1].ID)

	s.Remove(first)
	entries = s.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "report", entries[0].Workflow)
}

func TestSchedulerFiresJobsWithCorrelationID(t *testing.T) {
	t.Parallel()

	s := New(logging.NewNoOpLogger(), nil)
	var fired atomic.Int32
	ids := make(chan string, 8)
	s.AddSchedule(every(10*time.Millisecond), "@every 10ms", "digest", func(ctx context.Context) error {
		fired.Add(1)
		select {
		case ids <- ports.GetCorrelationID(ctx):
		default:
		}
		return errors.New("job errors are logged, not fatal")
	})

	s.Start()
	require.Eventually(t, func() bool { return fired.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	first, second := <-ids, <-ids
	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)
}

func TestStopCancelsRunningJob(t *testing.T) {
	t.Parallel()

	s := New(logging.NewNoOpLogger(), nil)
	started := make(chan struct{}, 1)
	var cancelled atomic.Bool
	s.AddSchedule(every(5*time.Millisecond), "@every 5ms", "slow", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})

	s.Start()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.True(t, cancelled.Load())
}

func TestRecoversPanickingJob(t *testing.T) {
	t.Parallel()

	s := New(logging.NewNoOpLogger(), nil)
	var fired atomic.Int32
	s.AddSchedule(every(10*time.Millisecond), "@every 10ms", "panics", func(context.Context) error {
		fired.Add(1)
		panic("boom")
	})

	s.Start()
	require.Eventually(t, func() bool { return fired.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}
