package manifest

import (
	"fmt"

	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/resourceid"
)

// Entry pairs a scanned resource with its manifest.
type Entry struct {
	// ID is empty when the resource's identity could not be resolved.
	ID       resourceid.ID
	Dir      string
	Manifest *PackageManifest
}

// DuplicateNameError is returned when two resources share a manifest name.
type DuplicateNameError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate manifest name %q (%s and %s)", e.Name, e.First, e.Second)
}

// DuplicateIDError is returned when two resources declare the same id.
type DuplicateIDError struct {
	ID     resourceid.ID
	First  string
	Second string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate resource id %q (%s and %s)", e.ID, e.First, e.Second)
}

// UnresolvedReference is a dependency on an internal manifest name that has
// no resource id. It is reported, never fatal.
type UnresolvedReference struct {
	From resourceid.ID
	Name string
}

// Lookup joins manifest names to resource ids.
type Lookup struct {
	// IDsByName holds every internal name that resolved to an id.
	IDsByName map[string]resourceid.ID
	// Internal holds every manifest name found in the scan.
	Internal map[string]struct{}
}

// BuildLookup indexes entries by manifest name. Manifest names and resource
// ids must be unique within one scan.
func BuildLookup(entries []Entry) (*Lookup, error) {
	l := &Lookup{
		IDsByName: make(map[string]resourceid.ID, len(entries)),
		Internal:  make(map[string]struct{}, len(entries)),
	}
	dirs := make(map[string]string, len(entries))
	idDirs := make(map[resourceid.ID]string, len(entries))

	for _, e := range entries {
		name := e.Manifest.Name
		if prev, ok := dirs[name]; ok {
			return nil, &DuplicateNameError{Name: name, First: prev, Second: e.Dir}
		}
		dirs[name] = e.Dir
		l.Internal[name] = struct{}{}
		if e.ID == "" {
			continue
		}
		if prev, ok := idDirs[e.ID]; ok {
			return nil, &DuplicateIDError{ID: e.ID, First: prev, Second: e.Dir}
		}
		idDirs[e.ID] = e.Dir
		l.IDsByName[name] = e.ID
	}
	return l, nil
}

// MapDependencies builds the direct dependency map. A dependency name
// produces an edge only when it is an internal manifest name that resolves
// to an id; external packages are ignored. Every entry with an id gets a
// key, even when it has no dependencies.
func MapDependencies(entries []Entry, lookup *Lookup) dag.DirectMap {
	direct := make(dag.DirectMap, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		deps := []resourceid.ID{}
		seen := make(map[resourceid.ID]struct{})
		for _, name := range e.Manifest.DependencyNames() {
			if _, internal := lookup.Internal[name]; !internal {
				continue
			}
			id, ok := lookup.IDsByName[name]
			if !ok || id == e.ID {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			deps = append(deps, id)
		}
		direct[e.ID] = deps
	}
	return direct
}

// UnresolvedReferences lists dependencies on internal names with no id.
func UnresolvedReferences(entries []Entry, lookup *Lookup) []UnresolvedReference {
	var refs []UnresolvedReference
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		for _, name := range e.Manifest.DependencyNames() {
			if _, internal := lookup.Internal[name]; !internal {
				continue
			}
			if _, ok := lookup.IDsByName[name]; !ok {
				refs = append(refs, UnresolvedReference{From: e.ID, Name: name})
			}
		}
	}
	return refs
}
