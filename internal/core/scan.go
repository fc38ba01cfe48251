package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repogroom/repogroom/internal/model"
)

// ProgressFunc receives scan progress updates: a stage name, a completion
// percentage and a human-readable message.
type ProgressFunc func(stage string, pct int, message string)

// RunRecorder persists finished scan runs. Implemented by the store.
type RunRecorder interface {
	SaveRun(run model.ScanRun) error
}

// Scanner runs the full pipeline: list repositories, fetch detail,
// analyze, generate suggestions and write the report.
type Scanner struct {
	github   *GitHub
	gen      *Generator
	recorder RunRecorder
	logger   *slog.Logger
}

// NewScanner creates a scanner. The recorder may be nil, in which case
// runs are not persisted.
func NewScanner(github *GitHub, gen *Generator, recorder RunRecorder) *Scanner {
	return &Scanner{
		github:   github,
		gen:      gen,
		recorder: recorder,
		logger:   slog.Default(),
	}
}

// Scan processes every repository of the authenticated user sequentially
// and writes per-repo summaries plus an index under outputDir. Per-repo
// failures are recorded and counted, never fatal to the run.
func (s *Scanner) Scan(ctx context.Context, outputDir string, progress ProgressFunc) (*model.ScanRun, []ScanRecord, error) {
	report := func(stage string, pct int, message string) {
		if progress != nil {
			progress(stage, pct, message)
		}
	}

	run := model.ScanRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		OutputDir: outputDir,
	}

	report("list", 0, "listing repositories")

	repos, err := s.github.ListRepos(ctx)
	if err != nil {
		return nil, nil, err
	}

	run.RepoCount = len(repos)
	report("list", 5, fmt.Sprintf("found %d repositories", len(repos)))

	records := make([]ScanRecord, 0, len(repos))

	for i, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		pct := 5 + (90*(i+1))/max(len(repos), 1)
		report("scan", pct, fmt.Sprintf("scanning %s (%d/%d)", repo.FullName, i+1, len(repos)))

		rec := s.scanOne(ctx, repo, outputDir)
		if rec.Error != "" {
			run.ErrorCount++
		}

		records = append(records, rec)
	}

	report("write", 97, "writing index")

	if err := WriteIndex(outputDir, records); err != nil {
		return nil, nil, err
	}

	run.FinishedAt = time.Now().UTC()

	if s.recorder != nil {
		if err := s.recorder.SaveRun(run); err != nil {
			s.logger.Warn("failed to record scan run", slog.String("error", err.Error()))
		}
	}

	report("done", 100, fmt.Sprintf("scanned %d repositories, %d errors", run.RepoCount, run.ErrorCount))

	s.logger.Info("scan finished",
		slog.String("run_id", run.ID),
		slog.Int("repos", run.RepoCount),
		slog.Int("errors", run.ErrorCount),
		slog.String("output_dir", run.OutputDir),
	)

	return &run, records, nil
}

func (s *Scanner) scanOne(ctx context.Context, repo model.Repository, outputDir string) ScanRecord {
	detail, err := s.github.FetchDetail(ctx, repo.Owner, repo.Name)
	if err != nil {
		return ScanRecord{Repository: repo, Error: err.Error()}
	}

	facts := Analyze(detail)

	rec := ScanRecord{
		Repository: *detail,
		Facts:      facts,
	}

	suggestion, err := s.gen.Generate(ctx, detail, facts)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	rec.Suggestion = suggestion.Text

	if _, err := WriteRepoSummary(outputDir, rec); err != nil {
		rec.Error = err.Error()
	}

	return rec
}
