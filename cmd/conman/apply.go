package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var applyCmd = &cobra.Command{
	Use:   "apply [file]...",
	Short: "Write mirrored files out to their system locations",
	Long: `Write the mirrored copies back to their system locations.

Each file is confirmed before it is overwritten. Unsaved repository changes
must be saved or discarded first. With file arguments only those files are
considered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Apply(cmd.Context(), args)
		})
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
