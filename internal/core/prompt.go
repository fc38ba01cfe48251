package core

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/repogroom/repogroom/internal/model"
)

// Caps applied when serializing a repository into a prompt. Large repos
// would otherwise blow past the model's context window.
const (
	maxPromptFiles         = 200
	maxPromptReadmeRunes   = 4000
	defaultSystemPrompt    = "You are a code maintenance advisor. You review GitHub repository metadata and propose concrete, actionable cleanup steps: README improvements, file organization, missing documentation. Answer in short numbered points."
	defaultPromptTemplate = `Repository: {{.Repo.FullName}}
Description: {{if .Repo.Description}}{{.Repo.Description}}{{else}}(none){{end}}
Primary language: {{if .Repo.Language}}{{.Repo.Language}}{{else}}unknown{{end}}
Stars: {{.Repo.Stars}} | Files: {{.Facts.FileCount}} | Status: {{.Facts.Status}}
{{- if .TopLanguages}}
File types: {{join .TopLanguages ", "}}
{{- end}}
{{- if .Files}}

File listing{{if .FilesTruncated}} (truncated){{end}}:
{{- range .Files}}
  {{.}}
{{- end}}
{{- end}}
{{- if .ReadmeExcerpt}}

README excerpt:
{{.ReadmeExcerpt}}
{{- else}}

This repository has no README.
{{- end}}

Suggest cleanup and documentation improvements for this repository.`
)

// PromptData is the input handed to the suggestion prompt template.
type PromptData struct {
	Repo           *model.Repository
	Facts          model.RepoFacts
	TopLanguages   []string
	Files          []string
	FilesTruncated bool
	ReadmeExcerpt  string
}

// PromptBuilder renders a repository into a completion prompt.
type PromptBuilder struct {
	tmpl *template.Template
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

// NewPromptBuilder returns a builder using the built-in template.
func NewPromptBuilder() *PromptBuilder {
	tmpl := template.Must(template.New("prompt").Funcs(promptFuncs).Parse(defaultPromptTemplate))
	return &PromptBuilder{tmpl: tmpl}
}

// NewPromptBuilderFromFile loads a custom template from disk. The template
// receives a PromptData value.
func NewPromptBuilderFromFile(path string) (*PromptBuilder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template: %w", err)
	}

	tmpl, err := template.New("prompt").Funcs(promptFuncs).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}

	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build renders the prompt for one repository.
func (b *PromptBuilder) Build(repo *model.Repository, facts model.RepoFacts) (string, error) {
	data := PromptData{
		Repo:         repo,
		Facts:        facts,
		TopLanguages: TopLanguages(facts.Languages, 8),
	}

	data.Files = repo.Files
	if len(data.Files) > maxPromptFiles {
		data.Files = data.Files[:maxPromptFiles]
		data.FilesTruncated = true
	}

	data.ReadmeExcerpt = truncateRunes(repo.Readme, maxPromptReadmeRunes)

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	return sb.String(), nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
