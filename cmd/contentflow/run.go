package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Sam4587/Workspace-sub000/internal/application/run"
	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/notify"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
	"github.com/Sam4587/Workspace-sub000/internal/tui"
)

type runOptions struct {
	ConfigPath  string
	Sets        []string
	RetryFailed bool
	NoTUI       bool
	Echo        bool
}

var isTerminal = func(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}
			return runWorkflow(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to workflow file")
	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "Set a run input (key=value, repeatable)")
	cmd.Flags().BoolVar(&opts.RetryFailed, "retry-failed", false, "Retry failed retryable steps with backoff after the run")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Disable the interactive view even on a terminal")
	cmd.Flags().BoolVar(&opts.Echo, "echo", false, "Stream command step output to stderr (non-interactive only)")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runWorkflow(cmd *cobra.Command, root *rootFlags, opts runOptions) error {
	inputs, err := parseInputs(opts.Sets)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = withCorrelation(ctx, root)

	base, err := newLogger(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(ctx, root)
	if err != nil {
		return err
	}
	defer closeStore()

	req := run.Request{Path: opts.ConfigPath, Inputs: inputs, RetryFailed: opts.RetryFailed}
	if !opts.NoTUI && isTerminal(cmd.OutOrStdout()) {
		return runInteractive(ctx, cmd, base, store, req)
	}

	var echo io.Writer
	if opts.Echo {
		echo = cmd.ErrOrStderr()
	}
	return runPlain(ctx, cmd, base, store, req, echo)
}

// modelSender drives a tui.Model without a terminal so the final view can be
// printed once the run ends.
type modelSender struct {
	mu    sync.Mutex
	model tui.Model
}

func (s *modelSender) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated, _ := s.model.Update(msg)
	if m, ok := updated.(tui.Model); ok {
		s.model = m
	}
}

func (s *modelSender) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.View()
}

func runPlain(ctx context.Context, cmd *cobra.Command, logger ports.Logger, store ports.RunStore, req run.Request, echo io.Writer) error {
	app := newAppContext(logger, echo)
	state := &modelSender{model: tui.NewModel("", nil, nil)}

	sub, err := tui.Bridge(app.Events, state)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	uc := run.NewUseCase(app.Loader, store, app.Logger, app.Events,
		run.WithNotifier(notify.NewConsole(cmd.OutOrStdout())),
		run.WithLoadedHook(func(_ context.Context, name string, steps []workflow.StepSnapshot) {
			state.Send(tui.LoadedMsg{Name: name, Steps: steps})
		}),
	)

	outcome, err := uc.Execute(ctx, req)
	if outcome == nil {
		return err
	}
	state.Send(finishedMsg(outcome, err))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, state.View())
	fmt.Fprintf(out, "run id: %s\n", outcome.RunID)
	return err
}

func runInteractive(ctx context.Context, cmd *cobra.Command, base ports.Logger, store ports.RunStore, req run.Request) error {
	// The view owns the terminal; logs are replayed once it exits.
	backlog := logging.NewBacklog(0)
	app := newAppContext(logging.NewDeferredLogger(backlog), nil)
	defer backlog.Flush(base)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewModel("", nil, cancel), tea.WithOutput(cmd.OutOrStdout()))
	sub, err := tui.Bridge(app.Events, program)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	uc := run.NewUseCase(app.Loader, store, app.Logger, app.Events,
		run.WithNotifier(tui.Notifier(program)),
		run.WithLoadedHook(func(_ context.Context, name string, steps []workflow.StepSnapshot) {
			program.Send(tui.LoadedMsg{Name: name, Steps: steps})
		}),
	)

	type result struct {
		outcome *run.Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := uc.Execute(ctx, req)
		program.Send(finishedMsg(outcome, err))
		done <- result{outcome: outcome, err: err}
	}()

	_, progErr := program.Run()
	cancel()
	res := <-done
	if progErr != nil {
		return progErr
	}
	if res.outcome != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "run id: %s\n", res.outcome.RunID)
	}
	return res.err
}

func finishedMsg(outcome *run.Outcome, err error) tui.RunFinishedMsg {
	msg := tui.RunFinishedMsg{}
	if outcome == nil {
		if err != nil {
			msg.Message = err.Error()
		}
		return msg
	}
	msg.Success = outcome.Success()
	msg.Steps = outcome.Steps
	msg.RetryPasses = outcome.RetryPasses
	if outcome.Failure != nil {
		msg.Message = outcome.Failure.Message
	}
	return msg
}
