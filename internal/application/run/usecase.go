// Package run coordinates a single workflow run: loading the definition,
// executing it on a fresh engine, retrying failed steps with backoff and
// recording the outcome.
package run

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/engine"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// Request describes one run.
type Request struct {
	Path string
	// Inputs are merged over the definition's inputs.
	Inputs workflow.Context
	// RetryFailed re-runs failed retryable steps after a completed run until
	// none remain eligible.
	RetryFailed bool
}

// Outcome is the result of Execute. Exactly one of Result and Failure is set
// once the workflow has been loaded.
type Outcome struct {
	RunID       string
	Workflow    string
	Result      *workflow.WorkflowResult
	Failure     *workflow.WorkflowError
	Context     workflow.Context
	Steps       []workflow.StepSnapshot
	RetryPasses int
	Record      ports.RunRecord
}

// Success reports whether the run reached its last step with no step left
// failed.
func (o *Outcome) Success() bool {
	if o == nil || o.Result == nil {
		return false
	}
	return workflow.CountByStatus(o.Steps)[workflow.StatusFailed] == 0
}

// UseCase runs workflows loaded through a WorkflowLoader.
type UseCase struct {
	loader    ports.WorkflowLoader
	store     ports.RunStore
	logger    ports.Logger
	base      ports.Logger
	events    ports.EventPublisher
	notifier  ports.Notifier
	callbacks engine.Callbacks
	backoff   Backoff
	onLoaded  func(ctx context.Context, name string, steps []workflow.StepSnapshot)
	newID     func() string
	now       func() time.Time
}

// Option configures a UseCase.
type Option func(*UseCase)

// WithNotifier sets the notification sink handed to each engine.
func WithNotifier(n ports.Notifier) Option {
	return func(u *UseCase) { u.notifier = n }
}

// WithCallbacks sets run-level hooks handed to each engine.
func WithCallbacks(c engine.Callbacks) Option {
	return func(u *UseCase) { u.callbacks = c }
}

// WithBackoff replaces the retry delay strategy.
func WithBackoff(b Backoff) Option {
	return func(u *UseCase) {
		if b != nil {
			u.backoff = b
		}
	}
}

// WithLoadedHook registers fn to observe the declared steps of each run
// before the first step executes.
func WithLoadedHook(fn func(ctx context.Context, name string, steps []workflow.StepSnapshot)) Option {
	return func(u *UseCase) { u.onLoaded = fn }
}

// WithIDGenerator replaces the run id generator.
func WithIDGenerator(fn func() string) Option {
	return func(u *UseCase) {
		if fn != nil {
			u.newID = fn
		}
	}
}

// NewUseCase constructs a UseCase. store and events may be nil.
func NewUseCase(loader ports.WorkflowLoader, store ports.RunStore, logger ports.Logger, events ports.EventPublisher, opts ...Option) *UseCase {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	u := &UseCase{
		loader:  loader,
		store:   store,
		logger:  logger.With("component", "run"),
		base:    logger,
		events:  events,
		backoff: NewExponentialBackoff(),
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Execute loads and runs the workflow at req.Path. A workflow aborted by a
// required step is reported through Outcome.Failure and returned as the
// error; load errors return a nil Outcome.
func (u *UseCase) Execute(ctx context.Context, req Request) (*Outcome, error) {
	runID := u.newID()
	if ports.GetCorrelationID(ctx) == "" {
		ctx = logging.WithCorrelationID(ctx, runID)
	}
	u.logger.Info(ctx, "starting run", "run_id", runID, "path", req.Path, "retry_failed", req.RetryFailed)

	def, err := u.loader.Load(ctx, req.Path)
	if err != nil {
		u.logger.Error(ctx, "failed to load workflow", "path", req.Path, "error", err)
		publishEvent(ctx, u.events, u.logger, ports.EventWorkflowFailed, map[string]interface{}{
			"path":   req.Path,
			"phase":  "load",
			"run_id": runID,
			"error":  err.Error(),
		})
		return nil, err
	}

	eng, err := engine.NewFromDefinition(def,
		engine.WithLogger(u.base),
		engine.WithEvents(u.events),
		engine.WithNotifier(u.notifier),
		engine.WithCallbacks(u.callbacks),
	)
	if err != nil {
		return nil, err
	}

	if u.onLoaded != nil {
		u.onLoaded(ctx, def.Name, eng.Steps())
	}

	initial := def.Inputs.Clone()
	for k, v := range req.Inputs {
		initial[k] = v
	}

	outcome := &Outcome{RunID: runID, Workflow: def.Name}
	result, execErr := eng.Execute(ctx, initial)

	var failure *workflow.WorkflowError
	switch {
	case execErr == nil:
		outcome.Result = result
		outcome.Context = result.Context
	case errors.As(execErr, &failure):
		outcome.Failure = failure
		outcome.Context = failure.Context
	default:
		return nil, execErr
	}

	if outcome.Result != nil && req.RetryFailed {
		outcome.Context, outcome.RetryPasses = u.retryWithBackoff(ctx, eng, outcome.Context)
		outcome.Result.Context = outcome.Context
	}
	outcome.Steps = eng.Steps()
	if outcome.Result != nil {
		outcome.Result.Steps = outcome.Steps
	}

	outcome.Record = u.record(outcome)
	u.save(ctx, outcome.Record)

	if outcome.Failure != nil {
		return outcome, execErr
	}
	return outcome, nil
}

func (u *UseCase) retryWithBackoff(ctx context.Context, eng *engine.Engine, wc workflow.Context) (workflow.Context, int) {
	passes := 0
	for {
		pending := eng.RetryableFailedSteps()
		if len(pending) == 0 {
			return wc, passes
		}

		delay := u.backoff.Delay(passes + 1)
		u.logger.Info(ctx, "retry scheduled", "pass", passes+1, "steps", len(pending), "delay", delay)
		publishEvent(ctx, u.events, u.logger, ports.EventRetryScheduled, map[string]interface{}{
			"workflow": eng.Name(),
			"pass":     passes + 1,
			"steps":    len(pending),
			"delay_ms": delay.Milliseconds(),
		})
		if err := sleep(ctx, delay); err != nil {
			u.logger.Warn(ctx, "retry loop cancelled", "pass", passes+1, "error", err)
			return wc, passes
		}

		next, err := eng.RetryRetryableSteps(ctx, wc)
		if err != nil {
			u.logger.Warn(ctx, "retry pass rejected", "pass", passes+1, "error", err)
			return wc, passes
		}
		wc = next
		passes++
	}
}

func (u *UseCase) record(o *Outcome) ports.RunRecord {
	rec := ports.RunRecord{
		ID:         o.RunID,
		Workflow:   o.Workflow,
		Success:    o.Success(),
		Context:    o.Context,
		Steps:      o.Steps,
		FinishedAt: u.now().UTC(),
	}
	switch {
	case o.Failure != nil:
		rec.Error = o.Failure.Message
		rec.FailedStep = o.Failure.StepID
		rec.TotalDuration = o.Failure.TotalDuration
	case o.Result != nil:
		rec.TotalDuration = o.Result.TotalDuration
		for _, step := range o.Steps {
			if step.Status == workflow.StatusFailed {
				rec.FailedStep = step.ID
				rec.Error = step.Error
				break
			}
		}
	}
	return rec
}

func (u *UseCase) save(ctx context.Context, rec ports.RunRecord) {
	if u.store == nil {
		return
	}
	// Recording must survive a cancelled run context.
	saveCtx := context.WithoutCancel(ctx)
	if err := u.store.Save(saveCtx, rec); err != nil {
		u.logger.Error(ctx, "failed to record run", "run_id", rec.ID, "error", err)
		return
	}
	u.logger.Debug(ctx, "run recorded", "run_id", rec.ID, "success", rec.Success)
	publishEvent(ctx, u.events, u.logger, ports.EventRunRecorded, map[string]interface{}{
		"workflow": rec.Workflow,
		"run_id":   rec.ID,
		"success":  rec.Success,
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
