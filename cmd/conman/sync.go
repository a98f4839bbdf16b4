package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Publish the active branch to upstream",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Push(cmd.Context())
		})
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fast-forward the active branch from upstream",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Pull(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
}
