package statestore

import (
	"context"

	"github.com/gasoline-dev/gas/internal/topology"
)

// FromManifest captures the current resource manifest as a snapshot.
func FromManifest(ctx context.Context, project string, m *topology.Store) *Snapshot {
	snap := Empty(project)
	for _, r := range m.AllResources(ctx) {
		deps, _ := m.DependenciesOf(ctx, r.ID)
		snap.Resources[r.ID] = ResourceState{
			Kind:         r.Kind,
			Name:         r.Name,
			Config:       r.Config,
			Dependencies: deps,
		}
	}
	return snap
}
