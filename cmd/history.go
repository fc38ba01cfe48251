package cmd

import (
	"fmt"

	"github.com/repogroom/repogroom/internal/store"
	"github.com/spf13/cobra"
)

var historyPrune int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scan runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(false, false); err != nil {
			return err
		}

		db, err := store.Open()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if historyPrune > 0 {
			if err := db.PruneRuns(historyPrune); err != nil {
				return err
			}
		}

		runs, err := db.ListRuns()
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No scan runs recorded yet. Run 'repogroom scan' first.")
			return nil
		}

		for _, run := range runs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  repos=%d errors=%d  %s\n",
				run.StartedAt.Format("2006-01-02 15:04"),
				run.ID,
				run.RepoCount,
				run.ErrorCount,
				run.OutputDir,
			)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyPrune, "prune", 0, "Keep only the newest N runs")
}
