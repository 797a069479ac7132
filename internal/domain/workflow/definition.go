package workflow

import "time"

// Default notification settings.
const (
	DefaultWorkflowName         = "Untitled workflow"
	DefaultNotificationDuration = 3 * time.Second
)

// Settings controls the user-facing behaviour of a run.
type Settings struct {
	ShowNotifications    bool
	AutoClose            bool
	NotificationDuration time.Duration
}

// DefaultSettings returns the settings used when a workflow does not override them.
func DefaultSettings() Settings {
	return Settings{
		ShowNotifications:    true,
		AutoClose:            true,
		NotificationDuration: DefaultNotificationDuration,
	}
}

// ApplyDefaults fills zero durations with defaults.
func (s Settings) ApplyDefaults() Settings {
	if s.NotificationDuration <= 0 {
		s.NotificationDuration = DefaultNotificationDuration
	}
	return s
}

// Definition is a named, loadable workflow.
type Definition struct {
	Version     string
	Name        string
	Description string
	Settings    Settings
	// Inputs seed the run context before the first step.
	Inputs Context
	// Schedule is an optional cron expression for recurring runs.
	Schedule string
	Steps    []StepDefinition
}

// Validate ensures the definition can be handed to an engine.
func (d Definition) Validate() error {
	if d.Name == "" {
		return newMissingFieldError("name", -1)
	}
	if len(d.Steps) == 0 {
		return newValidationError("workflow requires at least one step", map[string]interface{}{"workflow": d.Name})
	}
	_, err := NewSteps(d.Steps)
	return err
}
