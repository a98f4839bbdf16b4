package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
	"github.com/mWalrus/conman/internal/vcs/git"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Clone the upstream repository and set up local state",
	Long: `Set up conman on this machine.

Reads the upstream from the config file and clones it into the data
directory. Running init again over an existing clone is harmless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOpWith(cmd, args, false, false, func(c *ops.Context) error {
			return c.Init(cmd.Context(), func(ctx context.Context, url, root, keyFile string) error {
				_, err := git.Clone(ctx, url, root, keyFile)
				return err
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
