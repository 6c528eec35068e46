package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "novoice",
		Short:         "Novoice developer console",
		Long:          "Drives the in-process simulated Novoice backend through the session, feed, and player state machines.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newFeedCommand())
	rootCmd.AddCommand(newDemoCommand())
	rootCmd.AddCommand(newConsoleCommand())

	return rootCmd
}
