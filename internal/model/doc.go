// Package model defines the data structures used throughout repogroom.
//
// This package contains the core domain models shared by the GitHub
// client, the analyzer, the suggestion generator, the store and the
// terminal interface.
//
// # Repository
//
// The [Repository] struct represents a GitHub repository. Listing fills
// only the metadata fields; fetching detail additionally populates the
// README content and the file listing of the default branch. Instances
// are read-only after construction.
//
// # Suggestion
//
// The [Suggestion] struct is one generated cleanup suggestion, tied to a
// repository by full name. Suggestions are never cached: two generations
// for the same repository are independent results with distinct IDs.
//
// # RepoFacts and ScanRun
//
// [RepoFacts] carries heuristic facts derived from a repository's file
// listing; [ScanRun] records one full scan for the history database.
package model
