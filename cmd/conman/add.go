package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var flagAddEncrypt bool

var addCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Start tracking configuration files",
	Long: `Start tracking one or more files.

Each file is copied into the mirror repository. With --encrypt the mirrored
copy is encrypted with your passphrase before it touches the repository.
Files that are already tracked are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.Add(args, flagAddEncrypt)
		})
	},
}

func init() {
	addCmd.Flags().BoolVarP(&flagAddEncrypt, "encrypt", "e", false, "encrypt the mirrored copy at rest")
	rootCmd.AddCommand(addCmd)
}
