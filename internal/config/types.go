package config

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Step types understood by the built-in handler set.
const (
	TypeCommand  = "command"
	TypeTemplate = "template"
	TypeValue    = "value"
	TypeSleep    = "sleep"
)

// Config represents a workflow document.
type Config struct {
	Version     string         `yaml:"version" validate:"required,semver"`
	Name        string         `yaml:"name" validate:"required,min=1,max=100"`
	Description string         `yaml:"description,omitempty"`
	Schedule    string         `yaml:"schedule,omitempty" validate:"omitempty,schedule"`
	Settings    Settings       `yaml:"settings,omitempty"`
	Inputs      map[string]any `yaml:"inputs,omitempty"`
	Steps       []Step         `yaml:"steps" validate:"required,min=1,dive"`
}

// Settings controls notification behaviour for a run.
type Settings struct {
	ShowNotifications    *bool  `yaml:"show_notifications,omitempty"`
	AutoClose            *bool  `yaml:"auto_close,omitempty"`
	NotificationDuration string `yaml:"notification_duration,omitempty" validate:"omitempty,duration"`
}

// Step describes one unit of work. Exactly one of the type-specific blocks is
// populated after decoding, selected by Type.
type Step struct {
	ID          string `yaml:"id,omitempty" validate:"omitempty,step_id"`
	Name        string `yaml:"name,omitempty" validate:"omitempty,max=100"`
	Description string `yaml:"description,omitempty"`
	Type        string `yaml:"type" validate:"required,oneof=command template value sleep"`
	Required    *bool  `yaml:"required,omitempty"`
	Skippable   *bool  `yaml:"skippable,omitempty"`
	Retryable   *bool  `yaml:"retryable,omitempty"`
	MaxRetries  *int   `yaml:"max_retries,omitempty" validate:"omitempty,min=0,max=100"`
	Timeout     string `yaml:"timeout,omitempty" validate:"omitempty,duration"`

	Command  *CommandStep  `yaml:",inline,omitempty"`
	Template *TemplateStep `yaml:",inline,omitempty"`
	Value    *ValueStep    `yaml:",inline,omitempty"`
	Sleep    *SleepStep    `yaml:",inline,omitempty"`
}

// UnmarshalYAML populates the type-specific block matching the step type.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	type baseStep struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Type        string `yaml:"type"`
		Required    *bool  `yaml:"required"`
		Skippable   *bool  `yaml:"skippable"`
		Retryable   *bool  `yaml:"retryable"`
		MaxRetries  *int   `yaml:"max_retries"`
		Timeout     string `yaml:"timeout"`
	}

	var base baseStep
	if err := value.Decode(&base); err != nil {
		return err
	}

	*s = Step{
		ID:          base.ID,
		Name:        base.Name,
		Description: base.Description,
		Type:        base.Type,
		Required:    base.Required,
		Skippable:   base.Skippable,
		Retryable:   base.Retryable,
		MaxRetries:  base.MaxRetries,
		Timeout:     base.Timeout,
	}

	switch base.Type {
	case TypeCommand:
		var cmd CommandStep
		if err := value.Decode(&cmd); err != nil {
			return err
		}
		s.Command = &cmd
	case TypeTemplate:
		var tpl TemplateStep
		if err := value.Decode(&tpl); err != nil {
			return err
		}
		s.Template = &tpl
	case TypeValue:
		var val ValueStep
		if err := value.Decode(&val); err != nil {
			return err
		}
		val.ValueSet = hasYAMLKey(value, "value")
		s.Value = &val
	case TypeSleep:
		var sleep SleepStep
		if err := value.Decode(&sleep); err != nil {
			return err
		}
		s.Sleep = &sleep
	}

	return nil
}

// TimeoutDuration returns the parsed step timeout, zero when unset.
func (s Step) TimeoutDuration() time.Duration {
	return parseDuration(s.Timeout)
}

// CommandStep runs a shell command.
type CommandStep struct {
	Command string            `yaml:"command" validate:"required,min=1"`
	Shell   string            `yaml:"shell,omitempty"`
	WorkDir string            `yaml:"workdir,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Output  string            `yaml:"output,omitempty" validate:"omitempty,oneof=text json lines"`
}

// TemplateStep renders a text/template against the run context.
type TemplateStep struct {
	Template string `yaml:"template" validate:"required"`
	Strict   bool   `yaml:"strict,omitempty"`
}

// ValueStep emits a literal or a value copied from the run context.
type ValueStep struct {
	Value    any    `yaml:"value,omitempty"`
	From     string `yaml:"from,omitempty"`
	ValueSet bool   `yaml:"-"`
}

// SleepStep pauses the run.
type SleepStep struct {
	Duration string `yaml:"duration" validate:"required,duration"`
}

// NotificationDurationValue returns the parsed notification duration, zero when
// unset.
func (s Settings) NotificationDurationValue() time.Duration {
	return parseDuration(s.NotificationDuration)
}

// StepIDs returns the declared ids in order, including empty ones.
func StepIDs(steps []Step) []string {
	out := make([]string, len(steps))
	for i, step := range steps {
		out[i] = step.ID
	}
	return out
}

func parseDuration(raw string) time.Duration {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func hasYAMLKey(node *yaml.Node, key string) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(node.Content); i += 2 {
		k := node.Content[i]
		if strings.EqualFold(k.Value, key) {
			return true
		}
	}
	return false
}
