package ports

import "context"

const (
	// EventWorkflowStarted is emitted when a run begins.
	EventWorkflowStarted = "workflow.started"
	// EventWorkflowCompleted is emitted after a run reaches its last step.
	EventWorkflowCompleted = "workflow.completed"
	// EventWorkflowFailed is emitted when a run is aborted.
	EventWorkflowFailed = "workflow.failed"
	// EventStepStarted is emitted before a step handler runs.
	EventStepStarted = "step.started"
	// EventStepCompleted is emitted when a step handler succeeds.
	EventStepCompleted = "step.completed"
	// EventStepFailed is emitted when a step handler fails.
	EventStepFailed = "step.failed"
	// EventStepSkipped is emitted when a failed optional step is absorbed.
	EventStepSkipped = "step.skipped"
	// EventStepRetried is emitted before a failed step is re-run.
	EventStepRetried = "step.retried"
	// EventRetryScheduled is emitted before the run use case waits out a
	// backoff delay ahead of a retry pass.
	EventRetryScheduled = "run.retry_scheduled"
	// EventRunRecorded is emitted after a run record is persisted.
	EventRunRecorded = "run.recorded"
)

// DomainEvent represents a significant occurrence within the engine. Events
// carry structured payloads that subscribers use for logging or UI updates.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures should be
// returned so publishers can log them and keep delivering.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}
