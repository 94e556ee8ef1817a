// Package main starts the DragBox server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// main is the entrypoint for the DragBox server.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		logFatal(err)
	}
}

// newRootCommand builds the CLI. With no subcommand it serves.
func newRootCommand() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "dragbox",
		Short:         "Drag and resize a box over a websocket control channel",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(debug)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable verbose debug logging")

	serveCmd := &cobra.Command{
		Use:           "serve",
		Short:         "Start the HTTP and websocket server",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(debug)
		},
	}

	replayCmd := &cobra.Command{
		Use:           "replay [script.yml]",
		Short:         "Play a recorded event script and print each resulting state",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          replayScript,
	}
	replayCmd.Flags().Bool("json", false, "Print one JSON object per step")

	rootCmd.AddCommand(serveCmd, replayCmd)
	rootCmd.SetOut(os.Stdout)
	return rootCmd
}
