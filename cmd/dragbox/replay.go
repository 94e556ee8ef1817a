package main

import (
	"github.com/frudas24/dragbox/internal/replay"
	"github.com/spf13/cobra"
)

// replayScript runs a YAML event script through a fresh controller.
func replayScript(cmd *cobra.Command, args []string) error {
	jsonMode, _ := cmd.Flags().GetBool("json")

	script, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := replay.Run(script)
	if err != nil {
		return err
	}
	return replay.Write(cmd.OutOrStdout(), steps, jsonMode)
}
