package templatehandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sam4587/Workspace-sub000/internal/config"
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
)

func render(t *testing.T, cfg config.TemplateStep, wc workflow.Context) (any, error) {
	t.Helper()
	handler, err := New(&cfg)
	require.NoError(t, err)
	return handler(context.Background(), wc, &workflow.Step{ID: "render"})
}

func TestTemplateRendersContextFields(t *testing.T) {
	wc := workflow.Context{
		"topic": "golang",
		"fetch": map[string]any{"items": []any{map[string]any{"title": "Generics"}}},
	}

	out, err := render(t, config.TemplateStep{Template: `{{ .topic }}: {{ ref "fetch.items.0.title" }}`}, wc)
	require.NoError(t, err)
	require.Equal(t, "golang: Generics", out)
}

func TestTemplateHelpers(t *testing.T) {
	wc := workflow.Context{
		"tags":  []any{"a", "b"},
		"empty": "",
		"meta":  map[string]any{"n": 1},
	}

	out, err := render(t, config.TemplateStep{Template: `{{ join "," .tags }}|{{ default "none" .empty }}|{{ json .meta }}`}, wc)
	require.NoError(t, err)
	require.Equal(t, `a,b|none|{"n":1}`, out)
}

func TestTemplateLenientMissingRef(t *testing.T) {
	out, err := render(t, config.TemplateStep{Template: `[{{ ref "missing.path" }}]`}, workflow.Context{})
	require.NoError(t, err)
	require.Equal(t, "[]", out)
}

func TestTemplateStrictMissingRefFails(t *testing.T) {
	_, err := render(t, config.TemplateStep{Template: `{{ ref "missing.path" }}`, Strict: true}, workflow.Context{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing.path")

	_, err = render(t, config.TemplateStep{Template: `{{ .absent }}`, Strict: true}, workflow.Context{})
	require.Error(t, err)
}

func TestTemplateSyntaxErrorAtBuild(t *testing.T) {
	_, err := New(&config.TemplateStep{Template: "{{ .unclosed "})
	require.Error(t, err)

	_, err = Build(config.Step{Type: config.TypeTemplate})
	require.Error(t, err)
}

func TestTemplateHandlerIsReusable(t *testing.T) {
	handler, err := New(&config.TemplateStep{Template: `{{ ref "n" }}`})
	require.NoError(t, err)

	first, err := handler(context.Background(), workflow.Context{"n": 1}, &workflow.Step{})
	require.NoError(t, err)
	second, err := handler(context.Background(), workflow.Context{"n": 2}, &workflow.Step{})
	require.NoError(t, err)
	require.Equal(t, "1", first)
	require.Equal(t, "2", second)
}

func TestTemplateJoinAcceptsTypedSlices(t *testing.T) {
	wc := workflow.Context{
		"fetch":  map[string]any{"lines": []string{"a", "b"}},
		"counts": []int{1, 2, 3},
	}

	out, err := render(t, config.TemplateStep{Template: `{{ join ", " .fetch.lines }}|{{ join "-" .counts }}`}, wc)
	require.NoError(t, err)
	require.Equal(t, "a, b|1-2-3", out)

	_, err = render(t, config.TemplateStep{Template: `{{ join ", " .n }}`}, workflow.Context{"n": 5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected a list")
}
