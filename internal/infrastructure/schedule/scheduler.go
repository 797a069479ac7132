// Package schedule fires workflow runs on cron expressions.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	cronlib "github.com/robfig/cron/v3"

	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// cronParser supports standard 5-field cron and descriptors like "@every 30s".
var cronParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// ParseSchedule parses a cron expression.
func ParseSchedule(expr string) (cronlib.Schedule, error) {
	return cronParser.Parse(expr)
}

// Job is one scheduled unit of work. The context is cancelled when the
// scheduler stops.
type Job func(ctx context.Context) error

// Entry describes a registered job.
type Entry struct {
	ID       int
	Workflow string
	Spec     string
	Next     time.Time
	Prev     time.Time
}

type entryMeta struct {
	workflow string
	spec     string
}

// Scheduler wraps a robfig cron instance. Overlapping fires of the same entry
// are skipped and panics inside jobs are recovered.
type Scheduler struct {
	cron   *cronlib.Cron
	logger ports.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	entries map[cronlib.EntryID]entryMeta
}

// New creates a stopped scheduler. cronLogger receives the cron library's own
// bookkeeping and may be nil.
func New(logger ports.Logger, cronLogger cronlib.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	if cronLogger == nil {
		cronLogger = cronlib.DiscardLogger
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cronlib.New(
			cronlib.WithParser(cronParser),
			cronlib.WithLogger(cronLogger),
			cronlib.WithChain(cronlib.SkipIfStillRunning(cronLogger), cronlib.Recover(cronLogger)),
		),
		logger:  logger.With("component", "scheduler"),
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[cronlib.EntryID]entryMeta),
	}
}

// Add registers job under a cron expression.
func (s *Scheduler) Add(spec, workflowName string, job Job) (int, error) {
	schedule, err := ParseSchedule(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s.AddSchedule(schedule, spec, workflowName, job), nil
}

// AddSchedule registers job under an already parsed schedule. spec is only
// used for reporting.
func (s *Scheduler) AddSchedule(schedule cronlib.Schedule, spec, workflowName string, job Job) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.cron.Schedule(schedule, cronlib.FuncJob(func() { s.fire(workflowName, job) }))
	s.entries[id] = entryMeta{workflow: workflowName, spec: spec}
	s.logger.Info(s.ctx, "workflow scheduled", "workflow", workflowName, "schedule", spec, "entry_id", int(id))
	return int(id)
}

// Remove unregisters an entry. Unknown ids are ignored.
func (s *Scheduler) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cron.Remove(cronlib.EntryID(id))
	delete(s.entries, cronlib.EntryID(id))
}

func (s *Scheduler) fire(workflowName string, job Job) {
	ctx, correlationID := logging.EnsureCorrelationID(s.ctx)
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	s.logger.Info(ctx, "scheduled run starting", "workflow", workflowName, "correlation_id", correlationID)
	if err := job(ctx); err != nil {
		s.logger.Error(ctx, "scheduled run failed", "workflow", workflowName, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	s.logger.Info(ctx, "scheduled run finished", "workflow", workflowName, "duration_ms", time.Since(start).Milliseconds())
}

// Start begins firing entries in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info(s.ctx, "scheduler started", "entries", len(s.Entries()))
}

// Stop cancels running jobs and waits for them to return, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info(ctx, "scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entries lists registered entries ordered by id.
func (s *Scheduler) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.cron.Entries() {
		meta, ok := s.entries[e.ID]
		if !ok {
			continue
		}
		out = append(out, Entry{
			ID:       int(e.ID),
			Workflow: meta.workflow,
			Spec:     meta.spec,
			Next:     e.Next,
			Prev:     e.Prev,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
