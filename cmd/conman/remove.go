package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var removeCmd = &cobra.Command{
	Use:     "remove <file>...",
	Aliases: []string{"rm"},
	Short:   "Stop tracking configuration files",
	Long: `Stop tracking one or more files.

The mirrored copies are removed from the repository; the files themselves
stay on your system. Paths that are not tracked are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Remove(args)
		})
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
