package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var flagListOutput string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the tracked files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.List(flagListOutput)
		})
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagListOutput, "output", "o", "", "output format (yaml)")
	rootCmd.AddCommand(listCmd)
}
