package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/identity"
	"github.com/stretchr/testify/require"
)

// Resource describes one resource directory to write into a test project.
type Resource struct {
	// Dir is the directory name inside the container.
	Dir string
	// Name is the manifest name; defaults to Dir.
	Name string
	ID   string
	// Deps are manifest dependency names.
	Deps []string
	// Config is merged into the exported descriptor.
	Config map[string]any
}

// WriteFiles writes files relative to root, creating parent directories.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// WriteResources creates a container under root holding the given
// resources. Artifacts are written as JSON documents readable by
// JSONLoader.
func WriteResources(t *testing.T, root, container string, resources ...Resource) {
	t.Helper()
	files := make(map[string]string, len(resources)*2)

	for _, r := range resources {
		name := r.Name
		if name == "" {
			name = r.Dir
		}
		deps := make(map[string]string, len(r.Deps))
		for _, d := range r.Deps {
			deps[d] = "*"
		}
		pkg, err := json.Marshal(map[string]any{
			"name":         name,
			"main":         "build/index.js",
			"dependencies": deps,
		})
		require.NoError(t, err)

		value := map[string]any{"id": r.ID}
		maps.Copy(value, r.Config)
		artifact, err := json.Marshal(map[string]any{exportName(r.Dir): value})
		require.NoError(t, err)

		dir := filepath.Join(container, r.Dir)
		files[filepath.Join(dir, "package.json")] = string(pkg)
		files[filepath.Join(dir, "build", fmt.Sprintf("_core.base.%s.index.js", r.Dir))] = string(artifact)
	}
	WriteFiles(t, root, files)
}

func exportName(dir string) string {
	return "coreBase_" + dir
}

// JSONLoader is an identity.ExportLoader that reads an artifact as a JSON
// object of export name to export value, so tests run without Node.js.
type JSONLoader struct{}

// Load implements identity.ExportLoader.
func (JSONLoader) Load(_ context.Context, artifactPath string) ([]identity.Export, error) {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	exports := make([]identity.Export, 0, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		exports = append(exports, identity.Export{Name: name, Value: raw[name]})
	}
	return exports, nil
}

// Context returns a background context carrying a logger that writes to w,
// or discards output when w is nil.
func Context(w io.Writer) context.Context {
	if w == nil {
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}
