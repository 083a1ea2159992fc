// Package manifest reads resource package manifests and turns their
// dependency sections into resource dependency edges.
package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
)

// PackageManifest is the subset of package.json the tool understands.
type PackageManifest struct {
	Name            string            `json:"name"`
	Main            string            `json:"main,omitempty"`
	Types           string            `json:"types,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*PackageManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest document.
func Parse(data []byte) (*PackageManifest, error) {
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Name == "" {
		return nil, fmt.Errorf("manifest has no name")
	}
	return &m, nil
}

// DependencyNames returns the names in the dependencies section, sorted.
// Development dependencies are not consulted.
func (m *PackageManifest) DependencyNames() []string {
	return slices.Sorted(maps.Keys(m.Dependencies))
}
