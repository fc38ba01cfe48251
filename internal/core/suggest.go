package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repogroom/repogroom/internal/llm"
	"github.com/repogroom/repogroom/internal/model"
)

const suggestionMaxTokens = 600

// Generator produces cleanup suggestions for repositories.
type Generator struct {
	client llm.Client
	prompt *PromptBuilder
	logger *slog.Logger
}

// NewGenerator creates a suggestion generator.
func NewGenerator(client llm.Client, prompt *PromptBuilder) *Generator {
	return &Generator{
		client: client,
		prompt: prompt,
		logger: slog.Default(),
	}
}

// Generate produces one cleanup suggestion for the repository. Each call
// issues an independent completion request; results are never cached.
//
// A repository with no README and no file listing never reaches the API:
// it gets a fixed generic suggestion, since there is nothing to ground a
// model response on.
func (g *Generator) Generate(ctx context.Context, repo *model.Repository, facts model.RepoFacts) (*model.Suggestion, error) {
	if !repo.HasDetail() {
		return g.newSuggestion(repo, genericSuggestion(repo), "heuristic"), nil
	}

	prompt, err := g.prompt.Build(repo, facts)
	if err != nil {
		return nil, err
	}

	text, err := g.client.Complete(ctx, llm.Request{
		SystemPrompt: defaultSystemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    suggestionMaxTokens,
		Temperature:  llm.Temp(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("generate suggestion for %s: %w", repo.FullName, err)
	}

	g.logger.Debug("generated suggestion",
		slog.String("repo", repo.FullName),
		slog.String("model", g.client.Model()),
	)

	return g.newSuggestion(repo, text, g.client.Model()), nil
}

func (g *Generator) newSuggestion(repo *model.Repository, text, modelName string) *model.Suggestion {
	return &model.Suggestion{
		ID:           uuid.NewString(),
		RepoFullName: repo.FullName,
		Text:         text,
		Model:        modelName,
		GeneratedAt:  time.Now().UTC(),
	}
}

// genericSuggestion covers repositories with nothing to analyze.
func genericSuggestion(repo *model.Repository) string {
	return fmt.Sprintf(
		"%s is empty. Start by adding a README that states what the project does, then commit an initial project skeleton and a license file.",
		repo.FullName,
	)
}
