package logging

import (
	"context"
	"sync"

	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

const defaultDeferredLimit = 1000

type deferredLevel int

const (
	deferredDebug deferredLevel = iota
	deferredInfo
	deferredWarn
	deferredError
)

type deferredEntry struct {
	ctx    context.Context
	level  deferredLevel
	msg    string
	fields []interface{}
}

// Backlog holds log entries while the terminal is owned by the interactive
// view. The oldest entries are dropped once the limit is reached.
type Backlog struct {
	mu      sync.Mutex
	limit   int
	entries []deferredEntry
	dropped int
}

// NewBacklog creates a backlog with the provided capacity (defaults to 1000).
func NewBacklog(limit int) *Backlog {
	if limit <= 0 {
		limit = defaultDeferredLimit
	}
	return &Backlog{limit: limit, entries: make([]deferredEntry, 0, 16)}
}

func (b *Backlog) add(entry deferredEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == b.limit {
		copy(b.entries, b.entries[1:])
		b.entries[len(b.entries)-1] = entry
		b.dropped++
		return
	}
	b.entries = append(b.entries, entry)
}

// Len returns the number of pending entries.
func (b *Backlog) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Dropped returns how many entries were discarded because of the limit.
func (b *Backlog) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Flush replays pending entries into delegate in order and empties the backlog.
func (b *Backlog) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	entries := b.entries
	b.entries = make([]deferredEntry, 0, 16)
	dropped := b.dropped
	b.dropped = 0
	b.mu.Unlock()

	if dropped > 0 {
		delegate.Warn(context.Background(), "log backlog overflowed", "dropped", dropped)
	}
	for _, entry := range entries {
		switch entry.level {
		case deferredDebug:
			delegate.Debug(entry.ctx, entry.msg, entry.fields...)
		case deferredWarn:
			delegate.Warn(entry.ctx, entry.msg, entry.fields...)
		case deferredError:
			delegate.Error(entry.ctx, entry.msg, entry.fields...)
		default:
			delegate.Info(entry.ctx, entry.msg, entry.fields...)
		}
	}
}

// DeferredLogger implements ports.Logger by queueing entries in a Backlog.
type DeferredLogger struct {
	backlog *Backlog
	fields  []interface{}
}

// NewDeferredLogger returns a logger that writes into backlog.
func NewDeferredLogger(backlog *Backlog) *DeferredLogger {
	return &DeferredLogger{backlog: backlog}
}

// Debug implements ports.Logger.
func (l *DeferredLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, deferredDebug, msg, fields)
}

// Info implements ports.Logger.
func (l *DeferredLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, deferredInfo, msg, fields)
}

// Warn implements ports.Logger.
func (l *DeferredLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, deferredWarn, msg, fields)
}

// Error implements ports.Logger.
func (l *DeferredLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, deferredError, msg, fields)
}

// With implements ports.Logger.
func (l *DeferredLogger) With(fields ...interface{}) ports.Logger {
	next := append(append([]interface{}{}, l.fields...), fields...)
	return &DeferredLogger{backlog: l.backlog, fields: next}
}

func (l *DeferredLogger) log(ctx context.Context, level deferredLevel, msg string, fields []interface{}) {
	if l == nil || l.backlog == nil {
		return
	}
	l.backlog.add(deferredEntry{
		ctx:    ctx,
		level:  level,
		msg:    msg,
		fields: append(append([]interface{}{}, l.fields...), fields...),
	})
}

var _ ports.Logger = (*DeferredLogger)(nil)
