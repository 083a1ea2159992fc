package dag

import (
	"sync"

	"github.com/gasoline-dev/gas/internal/resourceid"
)

// DirectMap maps each resource to the ordered list of resources it directly
// depends on. Every scanned resource has an entry, possibly empty.
type DirectMap map[resourceid.ID][]resourceid.ID

// UpstreamMap maps each resource to its complete, deduplicated transitive
// dependency set. A resource never appears in its own set.
type UpstreamMap map[resourceid.ID][]resourceid.ID

// Graph is a collection of resources and their dependencies. All operations
// on the graph are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	nodes map[resourceid.ID]*node
}

// node is a single vertex in the graph.
type node struct {
	id resourceid.ID
	// deps holds the resources this node depends on, in insertion order.
	deps []resourceid.ID
	// dependents holds the resources depending on this node, in insertion order.
	dependents []resourceid.ID
	depSet     map[resourceid.ID]struct{}
}
