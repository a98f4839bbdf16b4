package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ops"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Manage repository branches",
	Long: `Manage the branches of the mirror repository.

Branches let different machines track different sets of files against the
same upstream. Switching records the branch in the config and reconciles
the tracked set against what the new branch carries.`,
}

var branchCheckoutCmd = &cobra.Command{
	Use:     "checkout <name>",
	Aliases: []string{"switch"},
	Short:   "Switch to a branch, creating it if missing",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.CheckoutBranch(cmd.Context(), args[0])
		})
	},
}

var branchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List local branches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.ListBranches()
		})
	},
}

var branchCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the active branch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.CurrentBranch()
		})
	},
}

var branchDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a local branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, args, func(c *ops.Context) error {
			return c.DeleteBranch(args[0])
		})
	},
}

func init() {
	branchCmd.AddCommand(branchCheckoutCmd)
	branchCmd.AddCommand(branchListCmd)
	branchCmd.AddCommand(branchCurrentCmd)
	branchCmd.AddCommand(branchDeleteCmd)
	rootCmd.AddCommand(branchCmd)
}
