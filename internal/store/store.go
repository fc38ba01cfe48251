// Package store persists scan run history in a local bbolt database.
package store

import (
	"path/filepath"

	"github.com/repogroom/repogroom/internal/application"
	"github.com/repogroom/repogroom/internal/model"
)

// Store defines the persistence operations used by the app.
type Store interface {
	SaveRun(run model.ScanRun) error
	ListRuns() ([]model.ScanRun, error)
	PruneRuns(keep int) error
	Close() error
}

// Open opens the default database under the application directory.
func Open() (Store, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return nil, err
	}

	db, err := NewBolt(filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, err
	}

	return db, nil
}
