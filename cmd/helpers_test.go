package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "key")

	_, err := loadConfig(true, true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "GitHub")
}

func TestLoadConfigMissingOpenAIKey(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "gh")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := loadConfig(true, true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("OPENAI_API_KEY", "key")

	githubTokenFlag = "from-flag"
	t.Cleanup(func() { githubTokenFlag = "" })

	cfg, err := loadConfig(true, true)
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.GitHubToken)
}

func TestLoadConfigGitHubNotNeeded(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := loadConfig(false, false)
	require.NoError(t, err)
}
