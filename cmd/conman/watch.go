package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch tracked files and collect changes as they happen",
	Long: `Watch the tracked files and collect every change into the mirror
repository as it happens. Runs until interrupted; changes still need a
'conman save' to be committed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.Watch(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
