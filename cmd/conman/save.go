package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Commit the collected changes",
	Long: `Commit every unsaved change in the mirror repository. The commit
message lists the affected files by system path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Save(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
