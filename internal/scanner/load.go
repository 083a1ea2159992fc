package scanner

import (
	"context"
	"fmt"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/identity"
	"github.com/gasoline-dev/gas/internal/manifest"
	"golang.org/x/sync/errgroup"
)

// Resource is a fully loaded resource directory.
type Resource struct {
	Location   Location
	Manifest   *manifest.PackageManifest
	Descriptor *identity.Descriptor
}

// Entry returns the resource as input for the manifest mapper.
func (r *Resource) Entry() manifest.Entry {
	return manifest.Entry{
		ID:       r.Descriptor.ID,
		Dir:      r.Location.Dir,
		Manifest: r.Manifest,
	}
}

// Load reads every manifest and extracts every descriptor concurrently.
// Each task writes only its own slot, so results keep the order of
// locations. The first failure cancels the remaining work.
func (s *Scanner) Load(ctx context.Context, locations []Location, extractor *identity.Extractor) ([]Resource, error) {
	logger := ctxlog.FromContext(ctx)
	resources := make([]Resource, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, loc := range locations {
		g.Go(func() error {
			m, err := manifest.Load(loc.ManifestPath)
			if err != nil {
				return err
			}
			d, err := extractor.Extract(gctx, loc.ArtifactPath)
			if err != nil {
				return fmt.Errorf("resource %s: %w", loc.Dir, err)
			}
			resources[i] = Resource{Location: loc, Manifest: m, Descriptor: d}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("Resources loaded.", "count", len(resources), "workers", s.workers)
	return resources, nil
}

// Scan discovers and loads all resources under containerDirs.
func (s *Scanner) Scan(ctx context.Context, containerDirs []string, extractor *identity.Extractor) ([]Resource, error) {
	locations, err := s.Discover(ctx, containerDirs)
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, locations, extractor)
}
