package main

import (
	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/ui"
)

var (
	flagVerbose   bool
	flagNoColor   bool
	flagNoConfirm bool
)

var rootCmd = &cobra.Command{
	Use:   "conman",
	Short: "Configuration file manager",
	Long: `conman tracks your configuration files in a git repository.

Tracked files are mirrored into a local clone of your upstream repository.
Collect local edits with 'conman collect', commit them with 'conman save'
and publish with 'conman push'. On another machine, 'conman pull' followed
by 'conman apply' writes the files back to their system locations.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			ui.DisableColor()
		} else {
			ui.AutoColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagNoConfirm, "no-confirm", "y", false, "answer yes to all confirmations")
}
