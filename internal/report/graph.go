package report

import (
	"maps"
	"slices"
	"strings"

	"github.com/gasoline-dev/gas/internal/resourceid"
)

// Graph renders a resolved graph.
func (r *Renderer) Graph(g *Graph) error {
	if ok, err := r.encode(g); ok {
		return err
	}

	r.line(0, r.title.Render("RESOURCES"))
	for _, group := range slices.Sorted(maps.Keys(g.Resources)) {
		r.line(1, group)
		entities := g.Resources[group]
		for _, entity := range slices.Sorted(maps.Keys(entities)) {
			r.line(2, entity)
			kinds := entities[entity]
			for _, kind := range slices.Sorted(maps.Keys(kinds)) {
				r.line(3, r.muted.Render(kind))
				for _, leaf := range kinds[kind] {
					r.line(4, r.id.Render(leaf.ID.String())+r.muted.Render(" ("+leaf.Name+")"))
					if len(leaf.Dependencies) > 0 {
						r.line(5, r.muted.Render("depends on: ")+joinIDs(leaf.Dependencies))
					}
					if len(leaf.Upstream) > 0 {
						r.line(5, r.muted.Render("upstream:   ")+joinIDs(leaf.Upstream))
					}
					if dependents := g.Dependents[leaf.ID]; len(dependents) > 0 {
						r.line(5, r.muted.Render("needed by:  ")+joinIDs(dependents))
					}
				}
			}
		}
	}

	r.line(0, "")
	if err := r.endpointsText(g.Endpoints); err != nil {
		return err
	}

	if len(g.Cycles) > 0 {
		r.line(0, "")
		r.line(0, r.warn.Render("CYCLES"))
		for _, cycle := range g.Cycles {
			path := append(slices.Clone(cycle), cycle[0])
			parts := make([]string, len(path))
			for i, id := range path {
				parts[i] = id.String()
			}
			r.line(1, r.warn.Render(strings.Join(parts, " -> ")))
		}
	}
	return nil
}

// Endpoints renders the endpoint resources.
func (r *Renderer) Endpoints(ids []resourceid.ID) error {
	if ok, err := r.encode(map[string][]resourceid.ID{"endpoints": ids}); ok {
		return err
	}
	return r.endpointsText(ids)
}

func (r *Renderer) endpointsText(ids []resourceid.ID) error {
	r.line(0, r.title.Render("ENDPOINTS"))
	if len(ids) == 0 {
		r.line(1, r.muted.Render("none"))
		return nil
	}
	for _, id := range ids {
		r.line(1, r.id.Render(id.String()))
	}
	return nil
}

// ID renders a single resource id.
func (r *Renderer) ID(id resourceid.ID) error {
	if ok, err := r.encode(map[string]resourceid.ID{"id": id}); ok {
		return err
	}
	r.line(0, id.String())
	return nil
}
