package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Sam4587/Workspace-sub000/internal/handlers/builtin"
)

func newHandlersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handlers",
		Short: "List the step types workflows can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "TYPE\tDESCRIPTION")
			for _, meta := range builtin.NewRegistry(builtin.Options{}).List() {
				fmt.Fprintf(writer, "%s\t%s\n", meta.Type, meta.Description)
			}
			return writer.Flush()
		},
	}
}
