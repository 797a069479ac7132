package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	cfgpkg "github.com/Sam4587/Workspace-sub000/internal/config"
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
	"github.com/Sam4587/Workspace-sub000/internal/registry"
	apperrors "github.com/Sam4587/Workspace-sub000/pkg/errors"
)

// YAMLLoader implements the WorkflowLoader port by reading YAML files from
// disk and binding each step to a handler from the registry.
type YAMLLoader struct {
	handlers *registry.Registry
	logger   ports.Logger
}

func NewYAMLLoader(handlers *registry.Registry, logger ports.Logger) *YAMLLoader {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &YAMLLoader{
		handlers: handlers,
		logger:   logger.With("component", "loader"),
	}
}

func (l *YAMLLoader) Load(ctx context.Context, path string) (*workflow.Definition, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	l.logger.Debug(ctx, "loading workflow definition", "path", path)

	cfg, err := cfgpkg.ParseConfig(path)
	if err != nil {
		l.logger.Error(ctx, "failed to parse workflow", "path", path, "error", err)
		return nil, convertError(err, path)
	}

	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	def, err := l.mapToDomain(cfg)
	if err != nil {
		l.logger.Error(ctx, "failed to bind step handlers", "path", path, "error", err)
		return nil, convertError(err, path)
	}
	if err := def.Validate(); err != nil {
		l.logger.Error(ctx, "workflow failed domain validation", "path", path, "error", err)
		return nil, err
	}

	l.logger.Info(ctx, "workflow definition loaded", "path", path, "workflow", def.Name, "steps", len(def.Steps))
	return def, nil
}

func (l *YAMLLoader) Validate(ctx context.Context, path string) error {
	if err := contextCheck(ctx); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		l.logger.Error(ctx, "workflow path stat failed", "path", path, "error", err)
		return convertError(err, path)
	}
	if info.IsDir() {
		return domainError(workflow.ErrCodeValidation, "workflow path is a directory", nil, map[string]interface{}{"path": path})
	}

	ext := filepath.Ext(path)
	switch ext {
	case ".yaml", ".yml":
		l.logger.Debug(ctx, "validating workflow definition", "path", path)
		_, err = l.Load(ctx, path)
	default:
		err = domainError(workflow.ErrCodeValidation, "unsupported workflow file extension", nil, map[string]interface{}{"path": path, "extension": ext})
	}

	return err
}

var _ ports.WorkflowLoader = (*YAMLLoader)(nil)

func (l *YAMLLoader) mapToDomain(cfg *cfgpkg.Config) (*workflow.Definition, error) {
	settings := workflow.DefaultSettings()
	if cfg.Settings.ShowNotifications != nil {
		settings.ShowNotifications = *cfg.Settings.ShowNotifications
	}
	if cfg.Settings.AutoClose != nil {
		settings.AutoClose = *cfg.Settings.AutoClose
	}
	if d := cfg.Settings.NotificationDurationValue(); d > 0 {
		settings.NotificationDuration = d
	}

	steps := make([]workflow.StepDefinition, len(cfg.Steps))
	for i, step := range cfg.Steps {
		if l.handlers == nil {
			return nil, apperrors.NewHandlerError(step.Type, step.ID, errors.New("no handler registry configured"))
		}
		handler, err := l.handlers.Build(step)
		if err != nil {
			return nil, err
		}
		def := workflow.StepDefinition{
			ID:          step.ID,
			Name:        step.Name,
			Description: step.Description,
			Handler:     handler,
			Required:    step.Required,
			Skippable:   step.Skippable,
			Retryable:   step.Retryable,
			Timeout:     step.TimeoutDuration(),
		}
		if step.MaxRetries != nil {
			def.MaxRetries = *step.MaxRetries
		}
		steps[i] = def
	}

	return &workflow.Definition{
		Version:     cfg.Version,
		Name:        cfg.Name,
		Description: cfg.Description,
		Settings:    settings,
		Inputs:      workflow.Context(cloneMap(cfg.Inputs)),
		Schedule:    cfg.Schedule,
		Steps:       steps,
	}, nil
}

func convertError(err error, path string) error {
	if err == nil {
		return nil
	}
	var parseErr *apperrors.ParseError
	if errors.As(err, &parseErr) {
		if errors.Is(parseErr.Err, os.ErrNotExist) {
			return domainError(workflow.ErrCodeNotFound, "workflow not found", parseErr.Err, map[string]interface{}{"path": path})
		}
		return domainError(workflow.ErrCodeValidation, "invalid workflow syntax", err, map[string]interface{}{"path": parseErr.Path, "line": parseErr.Line})
	}
	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		context := map[string]interface{}{"path": path}
		if valErr.Field != "" {
			context["field"] = valErr.Field
		}
		code := workflow.ErrCodeValidation
		if strings.Contains(strings.ToLower(valErr.Message), "duplicate") {
			code = workflow.ErrCodeDuplicate
		}
		return domainError(code, valErr.Message, valErr.Err, context)
	}
	var handlerErr *apperrors.HandlerError
	if errors.As(err, &handlerErr) {
		return domainError(workflow.ErrCodeValidation, "step handler unavailable", err, map[string]interface{}{
			"path":      path,
			"step_id":   handlerErr.StepID,
			"step_type": handlerErr.StepType,
		})
	}
	if os.IsNotExist(err) {
		return domainError(workflow.ErrCodeNotFound, "workflow not found", err, map[string]interface{}{"path": path})
	}
	return domainError(workflow.ErrCodeInternal, "workflow load failed", err, map[string]interface{}{"path": path})
}

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return domainError(workflow.ErrCodeCancelled, "operation cancelled", err, nil)
	}
	return nil
}

func domainError(code workflow.ErrorCode, message string, cause error, ctx map[string]interface{}) *workflow.DomainError {
	return workflow.NewDomainError(code, message, cause, ctx)
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	clone := make(map[string]any, len(src))
	for k, v := range src {
		clone[k] = v
	}
	return clone
}
