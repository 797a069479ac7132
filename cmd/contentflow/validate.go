package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <workflow.yaml>...",
		Short: "Check workflow files without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, root, args)
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, root *rootFlags, paths []string) error {
	logger, err := newLogger(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	app := newAppContext(logger, nil)
	ctx := withCorrelation(cmd.Context(), root)

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range paths {
		if err := app.Loader.Validate(ctx, path); err != nil {
			failed++
			fmt.Fprintf(out, "invalid  %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "valid    %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d workflow files failed validation", failed, len(paths))
	}
	return nil
}
