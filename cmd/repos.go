package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List your GitHub repositories",
	Long:  `List the repositories of the authenticated user, in API order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(true, false)
		if err != nil {
			return err
		}

		repos, err := newGitHub(cfg).ListRepos(cmd.Context())
		if err != nil {
			return err
		}

		for _, repo := range repos {
			visibility := "public"
			if repo.Private {
				visibility = "private"
			}

			lang := repo.Language
			if lang == "" {
				lang = "-"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-50s %-8s %-12s ★ %d\n",
				repo.FullName, visibility, lang, repo.Stars)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(reposCmd)
}
