package cmd

import (
	"os"
	"strings"

	"github.com/repogroom/repogroom/internal/application"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A GitHub repository cleanup advisor",
	Long: `Repogroom fetches your GitHub repositories, analyzes their structure
and documentation, and generates cleanup suggestions through an
OpenAI-compatible completion API. Run it without arguments for the
interactive browser.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand opens the interactive browser
		return runBrowse(cmd, args)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&githubTokenFlag, "github-token", "", "GitHub token (overrides GITHUB_TOKEN)")
	// Accept --github_token style spellings too
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	rootCmd.SilenceUsage = true
}
