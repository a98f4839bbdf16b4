package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var flagEditSkipUpdate bool

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a tracked file in $EDITOR",
	Long: `Open a tracked file in $EDITOR.

Without an argument you pick the file interactively. After the editor exits
the file is collected into the mirror if it changed, unless --skip-update
is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.Edit(path, flagEditSkipUpdate)
		})
	},
}

func init() {
	editCmd.Flags().BoolVar(&flagEditSkipUpdate, "skip-update", false, "do not collect the file after editing")
	rootCmd.AddCommand(editCmd)
}
