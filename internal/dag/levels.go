package dag

import (
	"slices"

	"github.com/gasoline-dev/gas/internal/resourceid"
)

// Levels assigns each resource a deploy level: 0 when it has no
// dependencies, otherwise one more than the highest level among its
// dependencies. Resources on a cycle ignore the edge that closes it.
func Levels(direct DirectMap) map[resourceid.ID]int {
	g := FromDirect(direct)
	levels := make(map[resourceid.ID]int)
	visiting := make(map[resourceid.ID]bool)

	var level func(id resourceid.ID) int
	level = func(id resourceid.ID) int {
		if l, ok := levels[id]; ok {
			return l
		}
		visiting[id] = true
		deps, _ := g.Dependencies(id)
		l := 0
		for _, dep := range deps {
			if visiting[dep] {
				continue
			}
			if dl := level(dep) + 1; dl > l {
				l = dl
			}
		}
		delete(visiting, id)
		levels[id] = l
		return l
	}

	for _, id := range g.Nodes() {
		level(id)
	}
	return levels
}

// Dependents reverses direct: each resource maps to the sorted resources
// that directly depend on it. Every resource named in direct has a key.
func Dependents(direct DirectMap) DirectMap {
	g := FromDirect(direct)
	reverse := make(DirectMap)
	for _, id := range g.Nodes() {
		dependents, _ := g.Dependents(id)
		if dependents == nil {
			dependents = []resourceid.ID{}
		}
		slices.Sort(dependents)
		reverse[id] = dependents
	}
	return reverse
}

// InDegrees counts, for every resource, how many resources depend on it.
func InDegrees(direct DirectMap) map[resourceid.ID]int {
	degrees := make(map[resourceid.ID]int)
	for id, dependents := range Dependents(direct) {
		degrees[id] = len(dependents)
	}
	return degrees
}

// Groups partitions resources into connected components, ignoring edge
// direction. Groups are numbered from 0 in order of their smallest member.
func Groups(direct DirectMap) map[resourceid.ID]int {
	g := FromDirect(direct)
	groups := make(map[resourceid.ID]int)
	next := 0

	for _, start := range g.Nodes() {
		if _, ok := groups[start]; ok {
			continue
		}
		queue := []resourceid.ID{start}
		groups[start] = next
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			deps, _ := g.Dependencies(id)
			dependents, _ := g.Dependents(id)
			for _, other := range append(deps, dependents...) {
				if _, ok := groups[other]; !ok {
					groups[other] = next
					queue = append(queue, other)
				}
			}
		}
		next++
	}
	return groups
}
