package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/repogroom/repogroom/internal/model"
	"go.etcd.io/bbolt"
)

const (
	boltBucketRuns = "scan_runs" // key: StartedAt(RFC3339Nano)|ID -> ScanRun JSON
)

// Bolt is the bbolt-backed Store implementation.
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt creates a new Bolt database at the specified path.
// This is also exposed for testing purposes.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketRuns))
		return err
	}); err != nil {
		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// SaveRun stores a finished scan run. Keys sort chronologically so listing
// walks runs oldest-first.
func (b *Bolt) SaveRun(run model.ScanRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal scan run: %w", err)
	}

	key := runKey(run)

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketRuns)).Put([]byte(key), data)
	})
}

// ListRuns returns all recorded runs, oldest first.
func (b *Bolt) ListRuns() ([]model.ScanRun, error) {
	var runs []model.ScanRun

	err := b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketRuns)).ForEach(func(_, v []byte) error {
			var run model.ScanRun
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("unmarshal scan run: %w", err)
			}

			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}

// PruneRuns deletes all but the newest keep runs.
func (b *Bolt) PruneRuns(keep int) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketRuns))

		total := bucket.Stats().KeyN
		excess := total - keep
		if excess <= 0 {
			return nil
		}

		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil && excess > 0; k, _ = cursor.Next() {
			if err := cursor.Delete(); err != nil {
				return err
			}
			excess--
		}

		return nil
	})
}

// Close closes the underlying database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func runKey(run model.ScanRun) string {
	return run.StartedAt.UTC().Format(time.RFC3339Nano) + "|" + run.ID
}
