package cmd

import (
	"fmt"

	"github.com/repogroom/repogroom/internal/core"
	"github.com/repogroom/repogroom/internal/store"
	"github.com/spf13/cobra"
)

var scanOutputDir string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan all repositories and write a summary report",
	Long: `Run the full pipeline over every repository of the authenticated user:
fetch metadata, analyze, generate suggestions and write per-repository
Markdown summaries plus an index.json. The run is recorded in the local
history database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(true, true)
		if err != nil {
			return err
		}

		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}

		db, err := store.Open()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		outputDir := scanOutputDir
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}

		scanner := core.NewScanner(newGitHub(cfg), gen, db)

		progress := func(stage string, pct int, message string) {
			fmt.Fprintf(cmd.OutOrStdout(), "[%3d%%] %-5s %s\n", pct, stage, message)
		}

		run, _, err := scanner.Scan(cmd.Context(), outputDir, progress)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nRun %s: %d repositories, %d errors, output in %s\n",
			run.ID, run.RepoCount, run.ErrorCount, run.OutputDir)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanOutputDir, "out", "", "Output directory (overrides REPOGROOM_OUTPUT_DIR)")
}
