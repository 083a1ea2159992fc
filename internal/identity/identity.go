// Package identity extracts the declared resource descriptor from a built
// resource artifact.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/resourceid"
)

// Export is a single named export of a loaded artifact.
type Export struct {
	Name  string
	Value map[string]any
}

// ExportLoader loads a built artifact as a module and returns its object
// exports ordered by export name.
type ExportLoader interface {
	Load(ctx context.Context, artifactPath string) ([]Export, error)
}

// Descriptor is the identity a resource declares about itself.
type Descriptor struct {
	ID        resourceid.ID
	Kind      string
	Name      string
	RawConfig map[string]any
}

// NotFoundError is returned when no export of an artifact carries an id.
type NotFoundError struct {
	ArtifactPath string
	Exports      []string
}

func (e *NotFoundError) Error() string {
	if len(e.Exports) == 0 {
		return fmt.Sprintf("no resource descriptor found in %s: artifact has no object exports", e.ArtifactPath)
	}
	return fmt.Sprintf("no resource descriptor found in %s: none of the exports (%s) has a resource id", e.ArtifactPath, strings.Join(e.Exports, ", "))
}

// Extractor resolves descriptors through an ExportLoader.
type Extractor struct {
	loader ExportLoader
}

// NewExtractor creates an Extractor backed by loader.
func NewExtractor(loader ExportLoader) *Extractor {
	return &Extractor{loader: loader}
}

// Extract loads the artifact and returns its descriptor.
func (x *Extractor) Extract(ctx context.Context, artifactPath string) (*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	exports, err := x.loader.Load(ctx, artifactPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", artifactPath, err)
	}
	logger.Debug("Artifact exports loaded.", "path", artifactPath, "count", len(exports))

	return FromExports(artifactPath, exports)
}

// FromExports picks the first export, in the given order, whose id looks
// like a resource id.
func FromExports(artifactPath string, exports []Export) (*Descriptor, error) {
	names := make([]string, 0, len(exports))
	for _, exp := range exports {
		names = append(names, exp.Name)
		raw, ok := exp.Value["id"].(string)
		if !ok || !resourceid.IsLike(raw) {
			continue
		}
		return newDescriptor(exp, raw), nil
	}
	return nil, &NotFoundError{ArtifactPath: artifactPath, Exports: names}
}

func newDescriptor(exp Export, raw string) *Descriptor {
	d := &Descriptor{
		ID:        resourceid.ID(raw),
		Name:      exp.Name,
		RawConfig: exp.Value,
	}

	for _, field := range []string{"resource", "type"} {
		if kind, ok := exp.Value[field].(string); ok && kind != "" {
			d.Kind = kind
			break
		}
	}
	if d.Kind == "" {
		// Kind is the third segment; IsLike guarantees it exists.
		d.Kind = strings.Split(raw, ":")[2]
	}

	if name, ok := exp.Value["name"].(string); ok && name != "" {
		d.Name = name
	}
	return d
}
