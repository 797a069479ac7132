// Package registry maps workflow step types to the builders that turn a
// decoded step into a runnable handler.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Sam4587/Workspace-sub000/internal/config"
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	apperrors "github.com/Sam4587/Workspace-sub000/pkg/errors"
)

// Builder converts a decoded step into a handler. Builders validate the
// type-specific block and fail early instead of at run time.
type Builder func(step config.Step) (workflow.Handler, error)

// Metadata describes a registered step type.
type Metadata struct {
	Type        string
	Description string
}

// Registry holds builders keyed by step type. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
	metadata map[string]Metadata
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
		metadata: make(map[string]Metadata),
	}
}

// Register stores a builder for meta.Type.
func (r *Registry) Register(meta Metadata, builder Builder) error {
	if meta.Type == "" {
		return fmt.Errorf("step type is required")
	}
	if builder == nil {
		return fmt.Errorf("builder is nil for type %q", meta.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[meta.Type]; exists {
		return fmt.Errorf("builder for type %q already registered", meta.Type)
	}
	r.builders[meta.Type] = builder
	r.metadata[meta.Type] = meta
	return nil
}

// MustRegister is Register for static wiring; it panics on error.
func (r *Registry) MustRegister(meta Metadata, builder Builder) {
	if err := r.Register(meta, builder); err != nil {
		panic(err)
	}
}

// Build resolves the builder for step.Type and constructs its handler.
func (r *Registry) Build(step config.Step) (workflow.Handler, error) {
	r.mu.RLock()
	builder, ok := r.builders[step.Type]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.NewHandlerError(step.Type, step.ID, fmt.Errorf("no handler registered for step type %q", step.Type))
	}

	handler, err := builder(step)
	if err != nil {
		return nil, apperrors.NewHandlerError(step.Type, step.ID, err)
	}
	if handler == nil {
		return nil, apperrors.NewHandlerError(step.Type, step.ID, fmt.Errorf("builder returned nil handler"))
	}
	return handler, nil
}

// Has reports whether a builder is registered for stepType.
func (r *Registry) Has(stepType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[stepType]
	return ok
}

// List returns metadata for every registered type, sorted by type.
func (r *Registry) List() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metadata, 0, len(r.metadata))
	for _, meta := range r.metadata {
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
