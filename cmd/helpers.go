package cmd

import (
	"fmt"

	"github.com/repogroom/repogroom/internal/auth"
	"github.com/repogroom/repogroom/internal/config"
	"github.com/repogroom/repogroom/internal/core"
	"github.com/repogroom/repogroom/internal/llm"
	"github.com/repogroom/repogroom/internal/logging"
)

var githubTokenFlag string

const githubTokenHelp = `Provide a GitHub token via one of:
  --github-token flag
  GITHUB_TOKEN or GH_TOKEN environment variable
  GITHUB_TOKEN entry in a local .env file`

// loadConfig loads and validates configuration for a command. Validation
// failures abort before any client is constructed, so no network call can
// happen with missing credentials.
func loadConfig(needGitHub, needLLM bool) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	logging.Setup(cfg.LogLevel)

	if needGitHub {
		result, err := auth.NewResolver("GitHub").
			WithFlag(&githubTokenFlag).
			WithEnvs("GITHUB_TOKEN", "GH_TOKEN").
			WithValue(cfg.GitHubToken).
			WithHelpMessage(githubTokenHelp).
			Resolve()
		if err != nil {
			return config.Config{}, err
		}

		cfg.GitHubToken = result.Token
	}

	if err := cfg.Validate(needGitHub, needLLM); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func newGitHub(cfg config.Config) *core.GitHub {
	return core.NewGitHub(cfg.GitHubToken, cfg.IncludePrivate)
}

func newGenerator(cfg config.Config) (*core.Generator, error) {
	client, err := llm.New(llm.Config{
		APIKey:     cfg.OpenAIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		Model:      cfg.OpenAIModel,
		MaxRetries: 2,
	})
	if err != nil {
		return nil, err
	}

	prompt := core.NewPromptBuilder()
	if cfg.PromptTemplate != "" {
		prompt, err = core.NewPromptBuilderFromFile(cfg.PromptTemplate)
		if err != nil {
			return nil, fmt.Errorf("load prompt template: %w", err)
		}
	}

	return core.NewGenerator(client, prompt), nil
}
