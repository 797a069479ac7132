package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

type historyListOptions struct {
	workflow   string
	limit      int
	jsonOutput bool
}

func newHistoryCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded workflow runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newHistoryListCmd(root))
	cmd.AddCommand(newHistoryShowCmd(root))
	return cmd
}

func newHistoryListCmd(root *rootFlags) *cobra.Command {
	opts := &historyListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer closeStore()

			records, err := store.List(cmd.Context(), opts.workflow, opts.limit)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd, records)
			}
			return renderHistoryTable(cmd, records)
		},
	}
	cmd.Flags().StringVarP(&opts.workflow, "workflow", "w", "", "Only show runs of this workflow")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Maximum number of runs (0 for all)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func newHistoryShowCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer closeStore()

			record, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, record)
		},
	}
}

func renderHistoryTable(cmd *cobra.Command, records []ports.RunRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tWORKFLOW\tRESULT\tSTEPS\tDURATION\tFINISHED")
	for _, r := range records {
		counts := workflow.CountByStatus(r.Steps)
		result := "ok"
		if !r.Success {
			result = "failed"
			if r.FailedStep != "" {
				result = "failed@" + r.FailedStep
			}
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			r.ID,
			r.Workflow,
			result,
			counts[workflow.StatusCompleted]+counts[workflow.StatusSkipped],
			len(r.Steps),
			r.TotalDuration.Truncate(time.Millisecond),
			r.FinishedAt.Local().Format(time.DateTime),
		)
	}
	return writer.Flush()
}

func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
