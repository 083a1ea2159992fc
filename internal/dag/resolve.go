package dag

import (
	"maps"
	"slices"

	"github.com/gasoline-dev/gas/internal/resourceid"
)

// ResolveUpstream computes the transitive dependency set of every resource
// in direct. Each resource is walked independently, depth first, so the
// result for one key never depends on the order other keys were resolved.
// A dependency with no key of its own is treated as having no dependencies.
// Cycles are cut at the first repeated visit, so the walk always terminates.
func ResolveUpstream(direct DirectMap) UpstreamMap {
	upstream := make(UpstreamMap, len(direct))
	for id := range direct {
		upstream[id] = walkUpstream(direct, id)
	}
	return upstream
}

// walkUpstream returns root's dependencies in post-order: a dependency is
// appended after everything it depends on.
func walkUpstream(direct DirectMap, root resourceid.ID) []resourceid.ID {
	walked := []resourceid.ID{}
	seen := map[resourceid.ID]struct{}{root: {}}

	var walk func(id resourceid.ID)
	walk = func(id resourceid.ID) {
		for _, dep := range direct[id] {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			walk(dep)
			walked = append(walked, dep)
		}
	}
	walk(root)

	return walked
}

// MergeDirect unions two dependency maps. Keys present in both take the
// value from curr; keys only in prev are kept so removed resources still
// take part in ordering.
func MergeDirect(prev, curr DirectMap) DirectMap {
	merged := make(DirectMap, len(prev)+len(curr))
	for id, deps := range prev {
		merged[id] = slices.Clone(deps)
	}
	for id, deps := range curr {
		merged[id] = slices.Clone(deps)
	}
	return merged
}

// FindEndpoints returns, sorted, the resources that have at least one
// upstream dependency and that no other resource depends on.
func FindEndpoints(upstream UpstreamMap) []resourceid.ID {
	depended := make(map[resourceid.ID]struct{})
	for _, deps := range upstream {
		for _, dep := range deps {
			depended[dep] = struct{}{}
		}
	}

	endpoints := []resourceid.ID{}
	for _, id := range slices.Sorted(maps.Keys(upstream)) {
		if len(upstream[id]) == 0 {
			continue
		}
		if _, ok := depended[id]; ok {
			continue
		}
		endpoints = append(endpoints, id)
	}
	return endpoints
}

// DetectCycles reports every dependency cycle in direct as a *CycleError.
// It returns nil for an acyclic map.
func DetectCycles(direct DirectMap) error {
	return FromDirect(direct).DetectCycles()
}
