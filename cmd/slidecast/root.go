package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "slidecast",
		Short:         "Convert slide decks into narrated videos",
		Long:          "slidecast turns a deck's speaker notes into synthesized narration and renders each noted slide into a clip, concatenated into one video.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newListVoicesCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}
