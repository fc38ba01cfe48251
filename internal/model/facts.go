package model

import "time"

// Repository status classifications produced by the analyzer.
const (
	StatusPortfolioReady = "portfolio-ready"
	StatusPrototype      = "prototype"
	StatusArchive        = "archive"
)

// RepoFacts holds heuristic facts derived from a repository's metadata,
// used both for prompt construction and scan reports.
type RepoFacts struct {
	// FileCount is the number of paths in the file listing
	FileCount int `json:"file_count"`

	// Languages maps file extension to occurrence count, most common first
	// when rendered
	Languages map[string]int `json:"languages,omitempty"`

	// HasReadme indicates whether README content was found
	HasReadme bool `json:"has_readme"`

	// TodoCount is the number of TODO/FIXME markers found in the README
	TodoCount int `json:"todo_count"`

	// Status is one of the Status* classifications
	Status string `json:"status"`
}

// ScanRun records one full scan over a user's repositories.
type ScanRun struct {
	// ID is the unique run identifier (UUID)
	ID string `json:"id"`

	// StartedAt and FinishedAt bound the run
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// RepoCount is the number of repositories processed
	RepoCount int `json:"repo_count"`

	// ErrorCount is the number of repositories that failed
	ErrorCount int `json:"error_count"`

	// OutputDir is where the summaries were written
	OutputDir string `json:"output_dir"`
}
