package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var discardCmd = &cobra.Command{
	Use:   "discard [file]...",
	Short: "Throw away unsaved changes",
	Long: `Throw away the unsaved repository changes and roll the tracked files
back to the last saved state. With file arguments only changes to those
files are discarded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Discard(cmd.Context(), args)
		})
	},
}

func init() {
	rootCmd.AddCommand(discardCmd)
}
