package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sam4587/Workspace-sub000/internal/application/run"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/notify"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/schedule"
	"github.com/Sam4587/Workspace-sub000/internal/logger"
)

const scheduleShutdownTimeout = 30 * time.Second

type scheduleOptions struct {
	ConfigPath  string
	Cron        string
	Sets        []string
	RetryFailed bool
}

func newScheduleCmd(root *rootFlags) *cobra.Command {
	opts := scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run a workflow on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}
			return runSchedule(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to workflow file")
	cmd.Flags().StringVar(&opts.Cron, "cron", "", "Cron expression; defaults to the workflow's schedule")
	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "Set a run input (key=value, repeatable)")
	cmd.Flags().BoolVar(&opts.RetryFailed, "retry-failed", false, "Retry failed retryable steps with backoff after each run")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runSchedule(cmd *cobra.Command, root *rootFlags, opts scheduleOptions) error {
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
	app := newAppContext(base, nil)

	def, err := app.Loader.Load(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}
	spec := opts.Cron
	if spec == "" {
		spec = def.Schedule
	}
	if spec == "" {
		return fmt.Errorf("workflow %q has no schedule: set one in the file or pass --cron", def.Name)
	}

	store, closeStore, err := openStore(ctx, root)
	if err != nil {
		return err
	}
	defer closeStore()

	cronLog, err := logger.New(logger.Options{
		Level:         root.level(),
		HumanReadable: root.logFormat == "" || root.logFormat == "text",
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	uc := run.NewUseCase(app.Loader, store, app.Logger, app.Events,
		run.WithNotifier(notify.NewMulti(
			notify.NewLogging(app.Logger),
			notify.NewConsole(cmd.OutOrStdout(), notify.WithTimestamps()),
		)),
	)
	scheduler := schedule.New(app.Logger, cronLog.Cron())
	req := run.Request{Path: opts.ConfigPath, Inputs: inputs, RetryFailed: opts.RetryFailed}
	if _, err := scheduler.Add(spec, def.Name, func(ctx context.Context) error {
		_, err := uc.Execute(ctx, req)
		return err
	}); err != nil {
		return err
	}

	scheduler.Start()
	fmt.Fprintf(cmd.OutOrStdout(), "scheduled %s (%s); interrupt to stop\n", def.Name, spec)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), scheduleShutdownTimeout)
	defer cancel()
	return scheduler.Stop(shutdownCtx)
}
