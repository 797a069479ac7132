// Package builtin registers the handlers shipped with contentflow.
package builtin

import (
	"io"

	"github.com/Sam4587/Workspace-sub000/internal/config"
	commandhandler "github.com/Sam4587/Workspace-sub000/internal/handlers/command"
	sleephandler "github.com/Sam4587/Workspace-sub000/internal/handlers/sleep"
	templatehandler "github.com/Sam4587/Workspace-sub000/internal/handlers/template"
	valuehandler "github.com/Sam4587/Workspace-sub000/internal/handlers/value"
	"github.com/Sam4587/Workspace-sub000/internal/registry"
)

// Options configures the built-in handler set.
type Options struct {
	// CommandEcho receives live command output; nil keeps it captured only.
	CommandEcho io.Writer
}

// Register adds every built-in step type to reg.
func Register(reg *registry.Registry, opts Options) error {
	entries := []struct {
		meta    registry.Metadata
		builder registry.Builder
	}{
		{
			meta:    registry.Metadata{Type: config.TypeCommand, Description: "Runs a shell command and captures its output."},
			builder: commandhandler.Build(commandhandler.Options{Echo: opts.CommandEcho}),
		},
		{
			meta:    registry.Metadata{Type: config.TypeTemplate, Description: "Renders a text template against the run context."},
			builder: templatehandler.Build,
		},
		{
			meta:    registry.Metadata{Type: config.TypeValue, Description: "Emits a literal or a value copied from the run context."},
			builder: valuehandler.Build,
		},
		{
			meta:    registry.Metadata{Type: config.TypeSleep, Description: "Pauses the run for a fixed duration."},
			builder: sleephandler.Build,
		},
	}

	for _, entry := range entries {
		if err := reg.Register(entry.meta, entry.builder); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in handlers.
func NewRegistry(opts Options) *registry.Registry {
	reg := registry.New()
	if err := Register(reg, opts); err != nil {
		panic(err)
	}
	return reg
}
