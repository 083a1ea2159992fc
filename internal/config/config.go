package config

import (
	"fmt"
	"path/filepath"
)

// Defaults applied when the project file omits a setting.
const (
	DefaultFileName     = "gasoline.hcl"
	DefaultContainerDir = "gasoline"
	DefaultNodeBinary   = "node"
	DefaultStatePath    = "gasoline.up.json"

	BackendFile = "file"
	BackendBolt = "bolt"
)

// File is the decoded project file with defaults applied.
type File struct {
	Project               string
	ResourceContainerDirs []string
	Exclude               []string
	NodeBinary            string
	State                 State
}

// State selects where the deployed snapshot is persisted.
type State struct {
	Backend string
	Path    string
}

// Default returns the configuration used when no project file exists. The
// project is named after the absolute project root directory.
func Default(projectRoot string) *File {
	return &File{
		Project:               projectName(projectRoot),
		ResourceContainerDirs: []string{DefaultContainerDir},
		NodeBinary:            DefaultNodeBinary,
		State: State{
			Backend: BackendFile,
			Path:    DefaultStatePath,
		},
	}
}

func projectName(projectRoot string) string {
	if abs, err := filepath.Abs(projectRoot); err == nil {
		projectRoot = abs
	}
	return filepath.Base(projectRoot)
}

// Validate checks the decoded values.
func (f *File) Validate() error {
	if f.Project == "" {
		return fmt.Errorf("project must not be empty")
	}
	if len(f.ResourceContainerDirs) == 0 {
		return fmt.Errorf("resource_container_dirs must list at least one directory")
	}
	switch f.State.Backend {
	case BackendFile, BackendBolt:
	default:
		return fmt.Errorf("unknown state backend %q: must be %q or %q", f.State.Backend, BackendFile, BackendBolt)
	}
	if f.State.Path == "" {
		return fmt.Errorf("state path must not be empty")
	}
	return nil
}
