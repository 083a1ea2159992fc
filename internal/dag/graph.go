package dag

import (
	"fmt"
	"slices"

	"github.com/gasoline-dev/gas/internal/resourceid"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[resourceid.ID]*node),
	}
}

// FromDirect builds a Graph from a DirectMap. Dependencies that have no key
// of their own are added as nodes without dependencies.
func FromDirect(direct DirectMap) *Graph {
	g := New()
	for _, id := range sortedKeys(direct) {
		g.AddNode(id)
		for _, dep := range direct[id] {
			g.AddNode(dep)
		}
	}
	for _, id := range sortedKeys(direct) {
		for _, dep := range direct[id] {
			// Both nodes were added above.
			_ = g.AddEdge(id, dep)
		}
	}
	return g
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id resourceid.ID) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:     id,
		depSet: make(map[resourceid.ID]struct{}),
	}
}

// AddEdge records that fromID depends on toID. Repeated edges are ignored.
// An error is returned if either node does not exist.
func (g *Graph) AddEdge(fromID, toID resourceid.ID) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if _, dup := fromNode.depSet[toID]; dup {
		return nil
	}
	fromNode.depSet[toID] = struct{}{}
	fromNode.deps = append(fromNode.deps, toID)
	toNode.dependents = append(toNode.dependents, fromID)
	return nil
}

// Dependencies returns the IDs the given node depends on.
func (g *Graph) Dependencies(id resourceid.ID) ([]resourceid.ID, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return slices.Clone(n.deps), nil
}

// Dependents returns the IDs that depend on the given node.
func (g *Graph) Dependents(id resourceid.ID) ([]resourceid.ID, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return slices.Clone(n.dependents), nil
}

// Nodes returns every node ID in sorted order.
func (g *Graph) Nodes() []resourceid.ID {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	ids := make([]resourceid.ID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// DetectCycles walks the graph depth-first and returns a *CycleError
// describing every back edge found, or nil if the graph is acyclic.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully explored. onStack: in the current recursion path.
	permanent := make(map[resourceid.ID]bool)
	onStack := make(map[resourceid.ID]int)
	var stack []resourceid.ID
	var cycles [][]resourceid.ID

	var visit func(n *node)
	visit = func(n *node) {
		onStack[n.id] = len(stack)
		stack = append(stack, n.id)

		for _, depID := range n.deps {
			if pos, ok := onStack[depID]; ok {
				cycles = append(cycles, slices.Clone(stack[pos:]))
				continue
			}
			if !permanent[depID] {
				visit(g.nodes[depID])
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, n.id)
		permanent[n.id] = true
	}

	for _, id := range g.sortedIDs() {
		if !permanent[id] {
			visit(g.nodes[id])
		}
	}

	if len(cycles) == 0 {
		return nil
	}
	return &CycleError{Cycles: cycles}
}

// sortedIDs must be called with the mutex held.
func (g *Graph) sortedIDs() []resourceid.ID {
	ids := make([]resourceid.ID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func sortedKeys[V any](m map[resourceid.ID]V) []resourceid.ID {
	keys := make([]resourceid.ID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
