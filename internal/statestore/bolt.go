package statestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/gasoline-dev/gas/internal/ctxlog"
)

var snapshotsBucket = []byte("snapshots")

// BoltStore keeps snapshots in a bolt database, one key per project.
type BoltStore struct {
	db      *bolt.DB
	project string
}

// OpenBolt opens or creates the database at path.
func OpenBolt(path, project string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database %s: %w", path, err)
	}
	return &BoltStore{db: db, project: project}, nil
}

// Load implements Store.
func (s *BoltStore) Load(ctx context.Context) (*Snapshot, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(snapshotsBucket)
		if bucket == nil {
			return nil
		}
		// Values are only valid inside the transaction.
		if v := bucket.Get([]byte(s.project)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	if data == nil {
		ctxlog.FromContext(ctx).Debug("No stored snapshot yet.", "project", s.project)
		return Empty(s.project), nil
	}

	snap := Empty(s.project)
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode stored snapshot for %s: %w", s.project, err)
	}
	return snap, nil
}

// Save implements Store.
func (s *BoltStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(s.project), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("State saved.", "project", s.project, "resources", len(snap.Resources))
	return nil
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
