package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; Unsetenv makes the defaults path
	// genuinely exercised (envconfig applies defaults only when unset).
	for _, key := range []string{"GITHUB_TOKEN", "OPENAI_API_KEY", "OPENAI_MODEL", "REPOGROOM_OUTPUT_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	require.Equal(t, "repogroom-out", cfg.OutputDir)
	require.True(t, cfg.IncludePrivate)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("REPOGROOM_INCLUDE_PRIVATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "gh-token", cfg.GitHubToken)
	require.Equal(t, "oa-key", cfg.OpenAIKey)
	require.Equal(t, "gpt-4o", cfg.OpenAIModel)
	require.False(t, cfg.IncludePrivate)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		needGitHub bool
		needLLM    bool
		wantErr    string
	}{
		{
			name:       "missing github token",
			cfg:        Config{OpenAIKey: "x"},
			needGitHub: true,
			needLLM:    true,
			wantErr:    "GITHUB_TOKEN",
		},
		{
			name:       "missing openai key",
			cfg:        Config{GitHubToken: "x"},
			needGitHub: true,
			needLLM:    true,
			wantErr:    "OPENAI_API_KEY",
		},
		{
			name:       "github only",
			cfg:        Config{GitHubToken: "x"},
			needGitHub: true,
		},
		{
			name: "nothing required",
			cfg:  Config{},
		},
		{
			name:       "all present",
			cfg:        Config{GitHubToken: "x", OpenAIKey: "y"},
			needGitHub: true,
			needLLM:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.needGitHub, tt.needLLM)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
