package model

import (
	"strings"
	"time"
)

// Repository represents a GitHub repository with the metadata needed to
// analyze it and generate cleanup suggestions. It is populated from API
// responses and is read-only afterward.
type Repository struct {
	// Owner is the GitHub login owning the repository
	Owner string `json:"owner"`

	// Name is the repository name without the owner prefix
	Name string `json:"name"`

	// FullName is "owner/name" as reported by the API
	FullName string `json:"full_name"`

	// Description is the repository description, possibly empty
	Description string `json:"description"`

	// DefaultBranch is the branch the file listing was taken from
	DefaultBranch string `json:"default_branch"`

	// Language is the primary language detected by GitHub
	Language string `json:"language"`

	// Stars is the stargazer count
	Stars int `json:"stars"`

	// Private indicates repository visibility
	Private bool `json:"private"`

	// UpdatedAt is the last push/update timestamp reported by the API
	UpdatedAt time.Time `json:"updated_at"`

	// Readme is the decoded README content, empty when the repo has none
	Readme string `json:"readme,omitempty"`

	// Files is the full file listing of the default branch, in API order
	Files []string `json:"files,omitempty"`
}

// HasDetail reports whether the repository carries fetched detail
// (README and/or file listing) beyond the listing metadata.
func (r *Repository) HasDetail() bool {
	return r.Readme != "" || len(r.Files) > 0
}

// SplitFullName splits an "owner/name" identifier into its parts.
// Returns empty strings when the identifier is malformed.
func SplitFullName(fullName string) (owner, name string) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return "", ""
	}

	return owner, name
}

// Suggestion is one LLM-generated cleanup suggestion for a repository.
type Suggestion struct {
	// ID uniquely identifies this generation (UUID)
	ID string `json:"id"`

	// RepoFullName is the "owner/name" of the repository it refers to
	RepoFullName string `json:"repo_full_name"`

	// Text is the generated suggestion body
	Text string `json:"text"`

	// Model is the model name that produced the text
	Model string `json:"model"`

	// GeneratedAt is when the suggestion was produced
	GeneratedAt time.Time `json:"generated_at"`
}
