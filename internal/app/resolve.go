package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/identity"
	"github.com/gasoline-dev/gas/internal/manifest"
	"github.com/gasoline-dev/gas/internal/resourceid"
	"github.com/gasoline-dev/gas/internal/scanner"
	"github.com/gasoline-dev/gas/internal/topology"
)

// Resolution is the resolved resource graph of a project.
type Resolution struct {
	Manifest  *topology.Store
	Direct    dag.DirectMap
	Upstream  dag.UpstreamMap
	Endpoints []resourceid.ID
	// Cycles is nil for an acyclic graph.
	Cycles *dag.CycleError
}

// Resolve scans the project and resolves its dependency graph. Any scan or
// extraction failure aborts the whole resolution.
func (a *App) Resolve(ctx context.Context) (*Resolution, error) {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)

	s, err := scanner.New(a.project.Exclude, a.config.WorkerCount)
	if err != nil {
		return nil, err
	}
	resources, err := s.Scan(ctx, a.containerDirs(), identity.NewExtractor(a.loader))
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	logger.Debug("Scan complete.", "resources", len(resources))

	entries := make([]manifest.Entry, len(resources))
	for i := range resources {
		entries[i] = resources[i].Entry()
	}
	lookup, err := manifest.BuildLookup(entries)
	if err != nil {
		return nil, err
	}
	direct := manifest.MapDependencies(entries, lookup)
	for _, ref := range manifest.UnresolvedReferences(entries, lookup) {
		logger.Warn("Dependency on internal package without a resource id was skipped.", "resource", ref.From, "dependency", ref.Name)
	}

	store := topology.New()
	for _, r := range resources {
		err := store.AddResource(ctx, &topology.Resource{
			ID:     r.Descriptor.ID,
			Kind:   r.Descriptor.Kind,
			Name:   r.Descriptor.Name,
			Dir:    r.Location.Dir,
			Config: r.Descriptor.RawConfig,
		})
		if err != nil {
			return nil, err
		}
	}
	for id, deps := range direct {
		for _, dep := range deps {
			if err := store.AddDependency(ctx, id, dep); err != nil {
				return nil, err
			}
		}
	}

	res := &Resolution{
		Manifest: store,
		Direct:   direct,
		Upstream: dag.ResolveUpstream(direct),
	}
	res.Endpoints = dag.FindEndpoints(res.Upstream)

	if err := dag.DetectCycles(direct); err != nil {
		var cycleErr *dag.CycleError
		if !errors.As(err, &cycleErr) {
			return nil, err
		}
		res.Cycles = cycleErr
		logger.Warn("Dependency cycles found.", "count", len(cycleErr.Cycles), "error", cycleErr)
	}

	logger.Debug("Graph resolved.", "resources", len(direct), "endpoints", len(res.Endpoints))
	return res, nil
}
