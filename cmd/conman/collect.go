package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var collectCmd = &cobra.Command{
	Use:   "collect [file]...",
	Short: "Copy changed files into the mirror repository",
	Long: `Refresh the mirrored copies of files that changed on the system.

Each changed file is confirmed before it is collected. With file arguments
only those files are considered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Collect(args)
		})
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
