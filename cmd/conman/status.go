package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show unsaved changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Status(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
