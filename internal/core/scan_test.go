package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/repogroom/repogroom/internal/model"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	runs []model.ScanRun
}

func (f *fakeRecorder) SaveRun(run model.ScanRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func scanStubMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name":"repoA","full_name":"alice/repoA","owner":{"login":"alice"},"default_branch":"main"},
			{"name":"repoB","full_name":"alice/repoB","owner":{"login":"alice"},"default_branch":"main"}
		]`)
	})

	for _, name := range []string{"repoA", "repoB"} {
		mux.HandleFunc("/repos/alice/"+name, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"name":%q,"full_name":"alice/%s","owner":{"login":"alice"},"default_branch":"main"}`, name, name)
		})
		mux.HandleFunc("/repos/alice/"+name+"/readme", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		})
		mux.HandleFunc("/repos/alice/"+name+"/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"sha":"abc","tree":[{"path":"main.go","type":"blob"}]}`)
		})
	}

	return mux
}

func TestScan(t *testing.T) {
	gh := newTestGitHub(t, scanStubMux())
	fake := &fakeLLM{response: "Add a README"}
	recorder := &fakeRecorder{}

	scanner := NewScanner(gh, NewGenerator(fake, NewPromptBuilder()), recorder)

	outputDir := t.TempDir()

	var stages []string
	progress := func(stage string, pct int, message string) {
		stages = append(stages, stage)
	}

	run, records, err := scanner.Scan(context.Background(), outputDir, progress)
	require.NoError(t, err)

	require.Equal(t, 2, run.RepoCount)
	require.Zero(t, run.ErrorCount)
	require.NotEmpty(t, run.ID)
	require.False(t, run.FinishedAt.IsZero())

	require.Len(t, records, 2)
	require.Equal(t, "alice/repoA", records[0].Repository.FullName)
	require.Equal(t, "alice/repoB", records[1].Repository.FullName)
	require.Equal(t, "Add a README", records[0].Suggestion)

	// Per-repo summaries and machine-readable index on disk
	require.FileExists(t, filepath.Join(outputDir, "summaries", "repoA.md"))
	require.FileExists(t, filepath.Join(outputDir, "summaries", "repoB.md"))

	data, err := os.ReadFile(filepath.Join(outputDir, "index.json"))
	require.NoError(t, err)

	var decoded []ScanRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	// Run recorded in history
	require.Len(t, recorder.runs, 1)
	require.Equal(t, run.ID, recorder.runs[0].ID)

	require.Contains(t, stages, "list")
	require.Contains(t, stages, "done")
}

func TestScanRecordsPerRepoErrors(t *testing.T) {
	gh := newTestGitHub(t, scanStubMux())

	failing := &fakeLLM{err: fmt.Errorf("completion exploded")}
	scanner := NewScanner(gh, NewGenerator(failing, NewPromptBuilder()), nil)

	run, records, err := scanner.Scan(context.Background(), t.TempDir(), nil)
	require.NoError(t, err)

	// LLM failures are recorded per repo, not fatal to the run
	require.Equal(t, 2, run.ErrorCount)
	require.NotEmpty(t, records[0].Error)
	require.NotEmpty(t, records[1].Error)
}

func TestWriteRepoSummary(t *testing.T) {
	outputDir := t.TempDir()

	rec := ScanRecord{
		Repository: model.Repository{
			Name:        "repoA",
			FullName:    "alice/repoA",
			Description: "demo project",
			Language:    "Go",
		},
		Facts:      model.RepoFacts{FileCount: 3, Status: model.StatusPrototype, Languages: map[string]int{".go": 3}},
		Suggestion: "Add a README",
	}

	path, err := WriteRepoSummary(outputDir, rec)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	require.Contains(t, content, "# alice/repoA")
	require.Contains(t, content, "demo project")
	require.Contains(t, content, "Add a README")
	require.Contains(t, content, model.StatusPrototype)
}
