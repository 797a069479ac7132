// Package commandhandler runs shell commands as workflow steps.
package commandhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/Sam4587/Workspace-sub000/internal/config"
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/handlers/internalexec"
	apperrors "github.com/Sam4587/Workspace-sub000/pkg/errors"
)

// Result keys exposed in the run context.
const (
	KeyStdout   = "stdout"
	KeyStderr   = "stderr"
	KeyExitCode = "exit_code"
	KeyData     = "data"
	KeyLines    = "lines"
)

// waitDelay bounds how long a cancelled command may hold its output pipes.
const waitDelay = 500 * time.Millisecond

// Options tunes every handler built by Build.
type Options struct {
	// Echo receives a live copy of command output; nil captures silently.
	Echo io.Writer
}

// Build returns a builder-compatible constructor bound to opts.
func Build(opts Options) func(step config.Step) (workflow.Handler, error) {
	return func(step config.Step) (workflow.Handler, error) {
		return New(step.Command, opts)
	}
}

// New creates a handler that runs cfg.Command through a shell. The handler
// result is a map with stdout, stderr and exit_code, plus data (output: json)
// or lines (output: lines). A non-zero exit fails the step.
func New(cfg *config.CommandStep, opts Options) (workflow.Handler, error) {
	if cfg == nil || strings.TrimSpace(cfg.Command) == "" {
		return nil, fmt.Errorf("command configuration missing")
	}
	spec := *cfg

	return func(ctx context.Context, _ workflow.Context, step *workflow.Step) (any, error) {
		shell, shellArgs, err := determineShell(spec.Shell)
		if err != nil {
			return nil, apperrors.NewExecutionError(step.ID, err)
		}

		args := append(shellArgs, spec.Command)
		cmd := exec.CommandContext(ctx, shell, args...)
		cmd.Env = buildEnv(spec.Env)
		if spec.WorkDir != "" {
			cmd.Dir = spec.WorkDir
		}
		cmd.WaitDelay = waitDelay

		res, err := internalexec.Run(cmd, opts.Echo)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if out := internalexec.PrimaryOutput(res); out != "" {
				err = fmt.Errorf("%w: %s", err, out)
			}
			return nil, apperrors.NewExecutionError(step.ID, err)
		}

		result := map[string]any{
			KeyStdout:   res.Stdout,
			KeyStderr:   res.Stderr,
			KeyExitCode: res.ExitCode,
		}
		switch spec.Output {
		case "json":
			var data any
			if err := json.Unmarshal([]byte(res.Stdout), &data); err != nil {
				return nil, apperrors.NewExecutionError(step.ID, fmt.Errorf("decode json output: %w", err))
			}
			result[KeyData] = data
		case "lines":
			lines := []string{}
			if res.Stdout != "" {
				lines = strings.Split(res.Stdout, "\n")
			}
			result[KeyLines] = lines
		}
		return result, nil
	}, nil
}

func determineShell(explicit string) (string, []string, error) {
	if explicit != "" {
		return explicit, []string{"-c"}, nil
	}

	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}, nil
	}

	if path, err := exec.LookPath("bash"); err == nil {
		return path, []string{"-c"}, nil
	}

	if path, err := exec.LookPath("sh"); err == nil {
		return path, []string{"-c"}, nil
	}

	return "", nil, fmt.Errorf("no suitable shell found")
}

func buildEnv(custom map[string]string) []string {
	env := os.Environ()
	for k, v := range custom {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
