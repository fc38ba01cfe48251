package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/repogroom/repogroom/internal/model"
	"github.com/stretchr/testify/require"
)

func newTestBolt(t *testing.T) *Bolt {
	t.Helper()

	db, err := NewBolt(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func testRun(id string, startedAt time.Time) model.ScanRun {
	return model.ScanRun{
		ID:         id,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(time.Minute),
		RepoCount:  3,
		OutputDir:  "out",
	}
}

func TestSaveAndListRuns(t *testing.T) {
	db := newTestBolt(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose
	require.NoError(t, db.SaveRun(testRun("run-2", base.Add(time.Hour))))
	require.NoError(t, db.SaveRun(testRun("run-1", base)))
	require.NoError(t, db.SaveRun(testRun("run-3", base.Add(2*time.Hour))))

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Keys sort chronologically, so listing walks oldest first
	require.Equal(t, "run-1", runs[0].ID)
	require.Equal(t, "run-2", runs[1].ID)
	require.Equal(t, "run-3", runs[2].ID)

	require.Equal(t, 3, runs[0].RepoCount)
	require.Equal(t, "out", runs[0].OutputDir)
}

func TestListRunsEmpty(t *testing.T) {
	db := newTestBolt(t)

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestPruneRuns(t *testing.T) {
	db := newTestBolt(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.SaveRun(testRun(
			string(rune('a'+i)),
			base.Add(time.Duration(i)*time.Hour),
		)))
	}

	require.NoError(t, db.PruneRuns(2))

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// The newest runs survive
	require.Equal(t, "d", runs[0].ID)
	require.Equal(t, "e", runs[1].ID)
}

func TestPruneRunsNoExcess(t *testing.T) {
	db := newTestBolt(t)

	require.NoError(t, db.SaveRun(testRun("only", time.Now().UTC())))
	require.NoError(t, db.PruneRuns(10))

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
