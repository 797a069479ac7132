package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose       bool
	logLevel      string
	logFormat     string
	correlationID string
	historyDir    string
	redisAddr     string
	redisPrefix   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "contentflow",
		Short:         "contentflow runs declarative multi-step content workflows",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "Log format (text, json, logfmt)")
	cmd.PersistentFlags().StringVar(&flags.correlationID, "correlation-id", "", "Correlation id attached to every log entry and event")
	cmd.PersistentFlags().StringVar(&flags.historyDir, "history-dir", "", "Directory for run history (defaults to the user cache directory)")
	cmd.PersistentFlags().StringVar(&flags.redisAddr, "redis", "", "Redis address for run history; overrides --history-dir")
	cmd.PersistentFlags().StringVar(&flags.redisPrefix, "redis-prefix", "contentflow", "Key prefix for Redis run history")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newHandlersCmd())
	cmd.AddCommand(newHistoryCmd(flags))
	cmd.AddCommand(newScheduleCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
