// Package statestore persists the snapshot of the last deployed resource
// manifest so the next run can diff against it.
package statestore

import (
	"context"
	"slices"

	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/resourceid"
)

// Snapshot is the persisted manifest of one project.
type Snapshot struct {
	Project   string                          `json:"project" yaml:"project"`
	Resources map[resourceid.ID]ResourceState `json:"resources" yaml:"resources"`
}

// ResourceState is one resource as it was last deployed.
type ResourceState struct {
	Kind         string          `json:"kind" yaml:"kind"`
	Name         string          `json:"name" yaml:"name"`
	Config       map[string]any  `json:"config,omitempty" yaml:"config,omitempty"`
	Dependencies []resourceid.ID `json:"dependencies" yaml:"dependencies"`
}

// Empty returns a snapshot with no resources.
func Empty(project string) *Snapshot {
	return &Snapshot{
		Project:   project,
		Resources: make(map[resourceid.ID]ResourceState),
	}
}

// Direct returns the snapshot's direct dependency map.
func (s *Snapshot) Direct() dag.DirectMap {
	direct := make(dag.DirectMap, len(s.Resources))
	for id, r := range s.Resources {
		deps := slices.Clone(r.Dependencies)
		if deps == nil {
			deps = []resourceid.ID{}
		}
		direct[id] = deps
	}
	return direct
}

// Store loads and saves snapshots.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Close() error
}
