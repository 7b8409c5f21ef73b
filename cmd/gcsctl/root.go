package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticeforge/gcs/pkg/gcs"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gcsctl",
		Short:         "Drive the gcs constraint solver against built-in demonstration scenarios",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newSolveCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the solver and proof-format versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), gcs.String())
			return nil
		},
	}
}
