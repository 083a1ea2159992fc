package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/resourceid"
	"gopkg.in/yaml.v3"
)

// FileStore keeps the snapshot in a single JSON or YAML file, chosen by the
// file extension.
type FileStore struct {
	path    string
	project string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path, project string) *FileStore {
	return &FileStore{path: path, project: project}
}

func (s *FileStore) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.path))
	return ext == ".yaml" || ext == ".yml"
}

// Load implements Store. A missing file yields an empty snapshot.
func (s *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ctxlog.FromContext(ctx).Debug("No state file yet.", "path", s.path)
			return Empty(s.project), nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	snap := Empty(s.project)
	if s.isYAML() {
		err = yaml.Unmarshal(data, snap)
	} else {
		err = json.Unmarshal(data, snap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode state file %s: %w", s.path, err)
	}
	if snap.Resources == nil {
		snap.Resources = make(map[resourceid.ID]ResourceState)
	}
	return snap, nil
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	var (
		data []byte
		err  error
	)
	if s.isYAML() {
		data, err = yaml.Marshal(snap)
	} else {
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", s.path, err)
	}
	ctxlog.FromContext(ctx).Debug("State saved.", "path", s.path, "resources", len(snap.Resources))
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
