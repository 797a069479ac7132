// Package templatehandler renders text templates against the run context.
package templatehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"github.com/Sam4587/Workspace-sub000/internal/config"
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	apperrors "github.com/Sam4587/Workspace-sub000/pkg/errors"
)

// Build adapts New to the registry builder signature.
func Build(step config.Step) (workflow.Handler, error) {
	return New(step.Template)
}

// New parses cfg.Template once and returns a handler that executes it with the
// run context as data. Besides direct field access ({{ .fetch.stdout }}) the
// template may call:
//
//	ref "fetch.data.items.0.title"   resolve a context path
//	json .value                      encode a value as JSON
//	default "x" .value               fall back when a value is empty
//	join ", " .list                  join a list of values
//
// In strict mode missing map keys and unresolved ref paths fail the step.
func New(cfg *config.TemplateStep) (workflow.Handler, error) {
	if cfg == nil || cfg.Template == "" {
		return nil, fmt.Errorf("template configuration missing")
	}
	strict := cfg.Strict

	// Parse with placeholder funcs so syntax errors surface at load time; the
	// real ref is bound per execution.
	tpl := template.New("step").Funcs(funcs(nil, strict))
	if strict {
		tpl = tpl.Option("missingkey=error")
	}
	tpl, err := tpl.Parse(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	return func(_ context.Context, wc workflow.Context, step *workflow.Step) (any, error) {
		bound, err := tpl.Clone()
		if err != nil {
			return nil, apperrors.NewExecutionError(step.ID, err)
		}
		bound.Funcs(funcs(wc, strict))

		var buf bytes.Buffer
		if err := bound.Execute(&buf, map[string]any(wc)); err != nil {
			return nil, apperrors.NewExecutionError(step.ID, fmt.Errorf("render template: %w", err))
		}
		return buf.String(), nil
	}, nil
}

func funcs(wc workflow.Context, strict bool) template.FuncMap {
	return template.FuncMap{
		"ref": func(path string) (any, error) {
			value, ok := wc.Lookup(path)
			if !ok {
				if strict {
					return nil, fmt.Errorf("context path %q not found", path)
				}
				return "", nil
			}
			return value, nil
		},
		"json": func(v any) (string, error) {
			raw, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
		"default": func(fallback, v any) any {
			if isEmpty(v) {
				return fallback
			}
			return v
		},
		"join": join,
	}
}

// join accepts any slice or array, so both decoded YAML lists and command
// line output can be joined.
func join(sep string, items any) (string, error) {
	switch typed := items.(type) {
	case nil:
		return "", nil
	case []string:
		return strings.Join(typed, sep), nil
	case string:
		return typed, nil
	}

	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", fmt.Errorf("join: expected a list, got %T", items)
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return strings.Join(parts, sep), nil
}

func isEmpty(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	default:
		return false
	}
}
