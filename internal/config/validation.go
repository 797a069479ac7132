package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/Sam4587/Workspace-sub000/pkg/errors"
)

// ValidateConfig performs structural and cross-field validation on an entire workflow.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return apperrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(cfg.Steps))
	for i, step := range cfg.Steps {
		if err := ValidateStep(step, i); err != nil {
			return err
		}

		id := effectiveID(step, i)
		if prev, exists := seen[id]; exists {
			return apperrors.NewValidationError(fieldForStep(i, "id"), fmt.Sprintf("duplicate step id %q (first declared at steps[%d])", id, prev), nil)
		}
		seen[id] = i
	}

	return nil
}

// ValidateStep inspects a single step for structural correctness independent of other steps.
func ValidateStep(step Step, index int) error {
	v := validatorInstance()
	if err := v.Struct(step); err != nil {
		return convertValidationError(err)
	}

	switch step.Type {
	case TypeCommand:
		if step.Command == nil {
			return apperrors.NewValidationError(fieldForStep(index, "command"), "command configuration is required", nil)
		}
		if err := v.Struct(step.Command); err != nil {
			return convertValidationError(err)
		}
	case TypeTemplate:
		if step.Template == nil {
			return apperrors.NewValidationError(fieldForStep(index, "template"), "template configuration is required", nil)
		}
		if err := v.Struct(step.Template); err != nil {
			return convertValidationError(err)
		}
	case TypeValue:
		if step.Value == nil {
			return apperrors.NewValidationError(fieldForStep(index, "value"), "value configuration is required", nil)
		}
		hasFrom := strings.TrimSpace(step.Value.From) != ""
		if step.Value.ValueSet == hasFrom {
			return apperrors.NewValidationError(fieldForStep(index, "value"), "exactly one of value or from must be set", nil)
		}
	case TypeSleep:
		if step.Sleep == nil {
			return apperrors.NewValidationError(fieldForStep(index, "duration"), "sleep configuration is required", nil)
		}
		if err := v.Struct(step.Sleep); err != nil {
			return convertValidationError(err)
		}
	default:
		return apperrors.NewValidationError(fieldForStep(index, "type"), fmt.Sprintf("unknown step type %q", step.Type), nil)
	}

	return nil
}

// convertValidationError normalizes validator errors into validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return apperrors.NewValidationError(field, msg, err)
	}

	return apperrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForStep(index int, field string) string {
	return fmt.Sprintf("steps[%d].%s", index, field)
}

// effectiveID mirrors the engine default so duplicate detection sees the ids
// that will actually run.
func effectiveID(step Step, index int) string {
	if step.ID != "" {
		return step.ID
	}
	return fmt.Sprintf("step-%d", index)
}
