package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/repogroom/repogroom/internal/cli"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse repositories and generate suggestions",
	Long: `Open an interactive browser over your GitHub repositories. Select a
repository to inspect its README and file listing, then press 'g' to
generate a cleanup suggestion for it.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(true, true)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	m := cli.NewBrowse(newGitHub(cfg), gen)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()

	return err
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
