// Package config loads the application configuration from the process
// environment, optionally seeded from a local .env file.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration. It is loaded once at startup and
// never mutated afterward; each client receives it at construction time.
type Config struct {
	// GitHubToken authenticates against the GitHub REST API
	GitHubToken string `envconfig:"GITHUB_TOKEN"`

	// OpenAIKey authenticates against the completion API
	OpenAIKey string `envconfig:"OPENAI_API_KEY"`

	// OpenAIModel selects the completion model
	OpenAIModel string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// OpenAIBaseURL overrides the completion API endpoint (for proxies
	// and tests)
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	// PromptTemplate is an optional path to a custom suggestion prompt
	// template; the built-in template is used when empty
	PromptTemplate string `envconfig:"REPOGROOM_PROMPT_TEMPLATE"`

	// OutputDir is where scan summaries are written
	OutputDir string `envconfig:"REPOGROOM_OUTPUT_DIR" default:"repogroom-out"`

	// IncludePrivate includes private repositories in listings and scans
	IncludePrivate bool `envconfig:"REPOGROOM_INCLUDE_PRIVATE" default:"true"`

	// LogLevel is the slog level name (debug, info, warn, error)
	LogLevel string `envconfig:"REPOGROOM_LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment. It does not validate
// credentials; call Validate before constructing clients.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	return cfg, nil
}

// Validate checks that the credentials required for the requested
// capabilities are present. Fails fast before any network call is made.
func (c Config) Validate(needGitHub, needLLM bool) error {
	if needGitHub && c.GitHubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN is not set; export it or add it to .env")
	}

	if needLLM && c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set; export it or add it to .env")
	}

	return nil
}
