package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/repogroom/repogroom/internal/model"
)

// ScanRecord is the per-repository result of a scan run, persisted in the
// index and rendered into the per-repo summary file.
type ScanRecord struct {
	Repository model.Repository `json:"repository"`
	Facts      model.RepoFacts  `json:"facts"`
	Suggestion string           `json:"suggestion,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// WriteRepoSummary writes one Markdown summary under <outputDir>/summaries.
func WriteRepoSummary(outputDir string, rec ScanRecord) (string, error) {
	summariesDir := filepath.Join(outputDir, "summaries")
	if err := os.MkdirAll(summariesDir, 0o755); err != nil {
		return "", fmt.Errorf("create summaries dir: %w", err)
	}

	repo := rec.Repository

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", repo.FullName)

	desc := repo.Description
	if desc == "" {
		desc = "No description"
	}
	fmt.Fprintf(&sb, "**Description:** %s\n\n", desc)

	if rec.Suggestion != "" {
		fmt.Fprintf(&sb, "**Suggestions:**\n%s\n\n", rec.Suggestion)
	}

	fmt.Fprintf(&sb, "**Status:** %s\n", rec.Facts.Status)
	fmt.Fprintf(&sb, "**Primary language:** %s\n", repo.Language)
	fmt.Fprintf(&sb, "**Files:** %d | TODO markers: %d\n", rec.Facts.FileCount, rec.Facts.TodoCount)

	if top := TopLanguages(rec.Facts.Languages, 8); len(top) > 0 {
		fmt.Fprintf(&sb, "**File types:** %s\n", strings.Join(top, ", "))
	}

	name := filepath.Join(summariesDir, repo.Name+".md")
	if err := os.WriteFile(name, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	return name, nil
}

// WriteIndex writes the machine-readable run index as <outputDir>/index.json.
func WriteIndex(outputDir string, records []ScanRecord) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	name := filepath.Join(outputDir, "index.json")
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}
