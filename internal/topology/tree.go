package topology

import (
	"context"
	"strings"

	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/resourceid"
)

// Leaf is a resource as shown in the hierarchical view.
type Leaf struct {
	ID           resourceid.ID   `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Config       map[string]any  `json:"config,omitempty" yaml:"config,omitempty"`
	Dependencies []resourceid.ID `json:"dependencies" yaml:"dependencies"`
	Upstream     []resourceid.ID `json:"upstream" yaml:"upstream"`
}

// Tree groups leaves by entity group, then entity, then resource kind, all
// taken from the resource id.
type Tree map[string]map[string]map[string][]Leaf

// Tree projects the manifest into its hierarchical form. Leaves within a
// kind are ordered by id.
func (s *Store) Tree(ctx context.Context, upstream dag.UpstreamMap) Tree {
	tree := make(Tree)
	for _, r := range s.AllResources(ctx) {
		deps, _ := s.DependenciesOf(ctx, r.ID)
		group, entity, kind := splitID(r.ID, r.Kind)

		if tree[group] == nil {
			tree[group] = make(map[string]map[string][]Leaf)
		}
		if tree[group][entity] == nil {
			tree[group][entity] = make(map[string][]Leaf)
		}
		up := upstream[r.ID]
		if up == nil {
			up = []resourceid.ID{}
		}
		tree[group][entity][kind] = append(tree[group][entity][kind], Leaf{
			ID:           r.ID,
			Name:         r.Name,
			Config:       r.Config,
			Dependencies: deps,
			Upstream:     up,
		})
	}
	return tree
}

// splitID returns the entity group, entity and kind segments of an id. Ids
// that do not parse fall back to positional segments, and to kind when the
// id has no kind segment.
func splitID(id resourceid.ID, kind string) (string, string, string) {
	if addr, err := resourceid.Parse(id.String()); err == nil {
		return addr.EntityGroup, addr.Entity, addr.Kind
	}
	parts := strings.SplitN(id.String(), ":", 4)
	switch len(parts) {
	case 1:
		return parts[0], "", kind
	case 2:
		return parts[0], parts[1], kind
	}
	return parts[0], parts[1], parts[2]
}
