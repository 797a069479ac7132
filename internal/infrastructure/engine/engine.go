package engine

import (
	"context"
	"sync"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// Callbacks are optional run-level hooks invoked after the matching event.
type Callbacks struct {
	OnComplete     func(ctx context.Context, result *workflow.WorkflowResult)
	OnError        func(ctx context.Context, err error, result *workflow.WorkflowError)
	OnStepComplete func(ctx context.Context, step *workflow.Step, result any, wc workflow.Context)
}

// Engine runs a defined sequence of steps against an accumulating context.
// Only one run may be in progress at a time.
type Engine struct {
	name      string
	settings  workflow.Settings
	callbacks Callbacks
	notifier  ports.Notifier
	logger    ports.Logger
	events    ports.EventPublisher

	mu      sync.RWMutex
	steps   []*workflow.Step
	current int
	running bool
	result  *workflow.WorkflowResult
	failure *workflow.WorkflowError
}

// Option configures an engine instance.
type Option func(*Engine)

// WithName sets the workflow name used in notifications and events.
func WithName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.name = name
		}
	}
}

// WithSettings overrides notification settings.
func WithSettings(settings workflow.Settings) Option {
	return func(e *Engine) {
		e.settings = settings.ApplyDefaults()
	}
}

// WithCallbacks installs run-level hooks.
func WithCallbacks(callbacks Callbacks) Option {
	return func(e *Engine) {
		e.callbacks = callbacks
	}
}

// WithNotifier injects the notification sink.
func WithNotifier(notifier ports.Notifier) Option {
	return func(e *Engine) {
		e.notifier = notifier
	}
}

// WithLogger injects a logger.
func WithLogger(logger ports.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEvents injects an event publisher.
func WithEvents(events ports.EventPublisher) Option {
	return func(e *Engine) {
		e.events = events
	}
}

// New constructs an engine with no steps defined.
func New(opts ...Option) *Engine {
	e := &Engine{
		name:     workflow.DefaultWorkflowName,
		settings: workflow.DefaultSettings(),
		logger:   logging.NewNoOpLogger(),
		current:  -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "engine", "workflow", e.name)
	return e
}

// NewFromDefinition constructs an engine configured and populated from a
// loaded definition.
func NewFromDefinition(def *workflow.Definition, opts ...Option) (*Engine, error) {
	base := []Option{WithName(def.Name), WithSettings(def.Settings)}
	e := New(append(base, opts...)...)
	if _, err := e.DefineSteps(def.Steps); err != nil {
		return nil, err
	}
	return e, nil
}

// Name returns the workflow name.
func (e *Engine) Name() string {
	return e.name
}

// DefineSteps replaces the step list. Previous outcomes are discarded and no
// handler is invoked.
func (e *Engine) DefineSteps(defs []workflow.StepDefinition) ([]workflow.StepSnapshot, error) {
	steps, err := workflow.NewSteps(defs)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil, workflow.ErrAlreadyRunning
	}
	e.steps = steps
	e.current = -1
	e.result = nil
	e.failure = nil
	return snapshotSteps(steps), nil
}

// Reset returns every step to pending and clears run outcomes. It is
// idempotent.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return workflow.ErrAlreadyRunning
	}
	for _, step := range e.steps {
		step.Reset()
	}
	e.current = -1
	e.result = nil
	e.failure = nil
	return nil
}

// Steps returns a snapshot of every step in declaration order.
func (e *Engine) Steps() []workflow.StepSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshotSteps(e.steps)
}

// CurrentStepIndex returns the index of the active step, or -1.
func (e *Engine) CurrentStepIndex() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// IsRunning reports whether a run or retry pass is in progress.
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// WorkflowResult returns the outcome of the last successful run, if any.
func (e *Engine) WorkflowResult() *workflow.WorkflowResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.result
}

// WorkflowError returns the outcome of the last aborted run, if any.
func (e *Engine) WorkflowError() *workflow.WorkflowError {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.failure
}

func (e *Engine) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.steps) == 0 {
		return workflow.ErrNoSteps
	}
	if e.running {
		return workflow.ErrAlreadyRunning
	}
	e.running = true
	return nil
}

func (e *Engine) finish() {
	e.mu.Lock()
	e.running = false
	e.current = -1
	e.mu.Unlock()
}

func (e *Engine) setCurrent(index int) {
	e.mu.Lock()
	e.current = index
	e.mu.Unlock()
}

// update applies a mutation to engine-owned state under the write lock.
func (e *Engine) update(fn func()) {
	e.mu.Lock()
	fn()
	e.mu.Unlock()
}

func snapshotSteps(steps []*workflow.Step) []workflow.StepSnapshot {
	out := make([]workflow.StepSnapshot, len(steps))
	for i, step := range steps {
		out[i] = step.Snapshot()
	}
	return out
}
