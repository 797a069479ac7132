package events

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

// LoggingPublisher writes every event as a structured log entry and then
// delivers it to subscribers, synchronously and in subscription order.
type LoggingPublisher struct {
	logger ports.Logger
	mu     sync.RWMutex
	subs   map[string][]subscriptionEntry
	nextID int
}

// NewLoggingPublisher creates an event publisher backed by logger. A nil
// logger disables the log output but keeps subscriber delivery.
func NewLoggingPublisher(logger ports.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger: logger,
		subs:   make(map[string][]subscriptionEntry),
	}
}

// Publish logs the event and invokes matching handlers. Handler failures are
// logged and never stop delivery.
func (p *LoggingPublisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	if p == nil || event == nil {
		return nil
	}

	p.mu.RLock()
	handlers := append([]subscriptionEntry(nil), p.subs[event.EventType()]...)
	handlers = append(handlers, p.subs[AllEvents]...)
	p.mu.RUnlock()
	sort.Slice(handlers, func(i, j int) bool { return handlers[i].id < handlers[j].id })

	if p.logger != nil {
		fields := append([]interface{}{"event_type", event.EventType()}, payloadFields(event.Payload())...)
		if strings.HasSuffix(event.EventType(), ".failed") {
			p.logger.Warn(ctx, "engine event", fields...)
		} else {
			p.logger.Debug(ctx, "engine event", fields...)
		}
	}

	for _, entry := range handlers {
		if err := entry.handler(ctx, event); err != nil && p.logger != nil {
			p.logger.Warn(ctx, "event handler failed", "event_type", event.EventType(), "error", err)
		}
	}
	return nil
}

// Subscribe registers a handler for eventType, or for every event when
// eventType is AllEvents.
func (p *LoggingPublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	if p == nil || handler == nil {
		return noopSubscription{}, nil
	}
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[eventType] = append(p.subs[eventType], subscriptionEntry{id: id, handler: handler})
	p.mu.Unlock()

	return subscription{
		cancel: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			handlers := p.subs[eventType]
			for i, entry := range handlers {
				if entry.id == id {
					p.subs[eventType] = append(handlers[:i:i], handlers[i+1:]...)
					break
				}
			}
		},
	}, nil
}

func payloadFields(payload interface{}) []interface{} {
	switch typed := payload.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fields := make([]interface{}, 0, len(keys)*2)
		for _, key := range keys {
			fields = append(fields, key, typed[key])
		}
		return fields
	default:
		return []interface{}{"payload", typed}
	}
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id      int
	handler ports.EventHandler
}

var _ ports.EventPublisher = (*LoggingPublisher)(nil)
