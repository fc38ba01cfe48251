package cmd

import (
	"fmt"

	"github.com/repogroom/repogroom/internal/core"
	"github.com/repogroom/repogroom/internal/model"
	"github.com/spf13/cobra"
)

var suggestOut string

var suggestCmd = &cobra.Command{
	Use:   "suggest <owner/repo>",
	Short: "Generate a cleanup suggestion for one repository",
	Long: `Fetch a repository's README and file listing, analyze it and print an
LLM-generated cleanup suggestion. Use --out to also write the Markdown
summary to a directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, name := model.SplitFullName(args[0])
		if owner == "" {
			return fmt.Errorf("invalid repository identifier %q, expected owner/repo", args[0])
		}

		cfg, err := loadConfig(true, true)
		if err != nil {
			return err
		}

		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}

		repo, err := newGitHub(cfg).FetchDetail(cmd.Context(), owner, name)
		if err != nil {
			return err
		}

		facts := core.Analyze(repo)

		suggestion, err := gen.Generate(cmd.Context(), repo, facts)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n%s\n", repo.FullName, facts.Status, suggestion.Text)

		if suggestOut != "" {
			rec := core.ScanRecord{
				Repository: *repo,
				Facts:      facts,
				Suggestion: suggestion.Text,
			}

			path, err := core.WriteRepoSummary(suggestOut, rec)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nSummary written to %s\n", path)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringVar(&suggestOut, "out", "", "Directory to write the Markdown summary to")
}
