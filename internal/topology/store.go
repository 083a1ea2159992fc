// Package topology holds the resource manifest: every scanned resource with
// its configuration and direct dependencies, plus the hierarchical view used
// for output.
package topology

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/resourceid"
)

// Resource is one resource in the manifest.
type Resource struct {
	ID     resourceid.ID
	Kind   string
	Name   string
	Dir    string
	Config map[string]any
}

// Store is a thread-safe, in-memory resource manifest.
type Store struct {
	mu        sync.RWMutex
	resources map[resourceid.ID]*Resource
	deps      map[resourceid.ID][]resourceid.ID
}

// New creates a new, empty store.
func New() *Store {
	return &Store{
		resources: make(map[resourceid.ID]*Resource),
		deps:      make(map[resourceid.ID][]resourceid.ID),
	}
}

// AddResource adds a resource. Adding the same id twice is a no-op.
func (s *Store) AddResource(ctx context.Context, r *Resource) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("resource must have an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.resources[r.ID]; exists {
		return nil
	}
	s.resources[r.ID] = r
	s.deps[r.ID] = []resourceid.ID{}
	return nil
}

// AddDependency records that from directly depends on to.
func (s *Store) AddDependency(ctx context.Context, from, to resourceid.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.resources[from]; !exists {
		return fmt.Errorf("dependency source resource '%s' not found in manifest", from)
	}
	if _, exists := s.resources[to]; !exists {
		return fmt.Errorf("dependency target resource '%s' not found in manifest", to)
	}
	if slices.Contains(s.deps[from], to) {
		return nil
	}
	s.deps[from] = append(s.deps[from], to)
	return nil
}

// Resource retrieves a single resource by id.
func (s *Store) Resource(ctx context.Context, id resourceid.ID) (*Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]
	return r, ok
}

// AllResources returns every resource sorted by id.
func (s *Store) AllResources(ctx context.Context) []*Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*Resource, 0, len(s.resources))
	for _, r := range s.resources {
		all = append(all, r)
	}
	slices.SortFunc(all, func(a, b *Resource) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return all
}

// DependenciesOf returns the direct dependencies of a resource.
func (s *Store) DependenciesOf(ctx context.Context, id resourceid.ID) ([]resourceid.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.resources[id]; !exists {
		return nil, fmt.Errorf("resource '%s' not found in manifest", id)
	}
	return slices.Clone(s.deps[id]), nil
}

// Direct returns a copy of the direct dependency map.
func (s *Store) Direct(ctx context.Context) dag.DirectMap {
	s.mu.RLock()
	defer s.mu.RUnlock()

	direct := make(dag.DirectMap, len(s.deps))
	for id, deps := range s.deps {
		direct[id] = slices.Clone(deps)
	}
	return direct
}
