package core

import (
	"path"
	"regexp"
	"strings"

	"github.com/repogroom/repogroom/internal/model"
)

var todoMarkerRe = regexp.MustCompile(`(?i)\b(TODO|FIXME|WIP|UNFINISHED)\b`)

// Directories that carry no signal about a project's own code.
var ignoredPathParts = map[string]bool{
	"node_modules": true,
	"__pycache__":  true,
	"vendor":       true,
	"third_party":  true,
	"dist":         true,
	"build":        true,
	".git":         true,
	".idea":        true,
	".vscode":      true,
}

// Analyze derives heuristic facts from a repository's file listing and
// README. The repository must carry fetched detail; an empty repository
// yields zero-valued facts with a prototype status.
func Analyze(repo *model.Repository) model.RepoFacts {
	facts := model.RepoFacts{
		HasReadme: repo.Readme != "",
		Languages: make(map[string]int),
	}

	for _, file := range repo.Files {
		if skipPath(file) {
			continue
		}

		facts.FileCount++

		if ext := strings.ToLower(path.Ext(file)); ext != "" {
			facts.Languages[ext]++
		}
	}

	facts.TodoCount = len(todoMarkerRe.FindAllString(repo.Readme, -1))

	facts.Status = classify(facts, repo.Stars)

	return facts
}

// skipPath reports whether a path sits inside a dependency or tooling
// directory that should not count toward project facts.
func skipPath(file string) bool {
	for part := range strings.SplitSeq(file, "/") {
		if ignoredPathParts[part] {
			return true
		}
		if strings.HasPrefix(part, ".") && part != "." && part != ".." && strings.Contains(part, "env") {
			return true
		}
	}

	return false
}

func classify(facts model.RepoFacts, stars int) string {
	status := model.StatusArchive

	if (facts.FileCount >= 3 && facts.HasReadme) || stars > 3 {
		status = model.StatusPortfolioReady
	}

	if facts.TodoCount > 0 || facts.FileCount < 3 {
		status = model.StatusPrototype
	}

	return status
}

// TopLanguages returns up to n extensions ordered by descending count,
// ties broken alphabetically so output is stable.
func TopLanguages(languages map[string]int, n int) []string {
	type langCount struct {
		ext   string
		count int
	}

	ranked := make([]langCount, 0, len(languages))
	for ext, count := range languages {
		ranked = append(ranked, langCount{ext, count})
	}

	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].count > ranked[i].count ||
				(ranked[j].count == ranked[i].count && ranked[j].ext < ranked[i].ext) {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	if n > len(ranked) {
		n = len(ranked)
	}

	top := make([]string, 0, n)
	for _, lc := range ranked[:n] {
		top = append(top, lc.ext)
	}

	return top
}
