package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/history"
	"github.com/mWalrus/conman/internal/paths"
	"github.com/mWalrus/conman/internal/ui"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conman invocations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := paths.New()
		if err != nil {
			return err
		}

		db, err := history.Open(p.HistoryDB())
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.Recent(flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no history yet")
			return nil
		}

		for _, e := range entries {
			line := fmt.Sprintf("%s  %-8s %s (%v)",
				e.At.Local().Format(time.DateTime), e.Command, e.Args, e.Duration)
			if e.Outcome == "ok" {
				fmt.Println(line)
			} else {
				fmt.Printf("%s  %s\n", line, ui.Bad.Render(e.Outcome))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
