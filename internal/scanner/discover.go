package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/fsutil"
	"github.com/gobwas/glob"
)

const manifestFile = "package.json"

// artifactDirs are searched in order for the built entry artifact.
var artifactDirs = []string{"build", "dist"}

// artifactRegex matches `_group.entity.descriptor.index.js` and
// `index.group.entity.descriptor.js`.
var artifactRegex = regexp.MustCompile(`^(_[^.]+\.[^.]+\.[^.]+\.index|index\.[^.]+\.[^.]+\.[^.]+)\.js$`)

// Location is a discovered resource directory and its two input files.
type Location struct {
	Dir          string
	ManifestPath string
	ArtifactPath string
}

// Scanner discovers and loads resources.
type Scanner struct {
	exclude []glob.Glob
	workers int
}

// New creates a Scanner. Directory names matching any of the exclude glob
// patterns are skipped. workers bounds concurrent loads.
func New(exclude []string, workers int) (*Scanner, error) {
	s := &Scanner{workers: max(workers, 1)}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		s.exclude = append(s.exclude, g)
	}
	return s, nil
}

// Discover lists the resource directories of every container, in container
// order and then by directory name.
func (s *Scanner) Discover(ctx context.Context, containerDirs []string) ([]Location, error) {
	logger := ctxlog.FromContext(ctx)

	var locations []Location
	for _, container := range containerDirs {
		dirs, err := fsutil.Subdirs(container)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &ScanError{Dir: container, Reason: "resource container directory not found"}
			}
			return nil, fmt.Errorf("failed to read resource container %s: %w", container, err)
		}

		for _, name := range dirs {
			if s.skip(name) {
				continue
			}
			loc, err := locate(filepath.Join(container, name))
			if err != nil {
				return nil, err
			}
			locations = append(locations, *loc)
		}
		logger.Debug("Resource container scanned.", "dir", container, "total", len(locations))
	}
	return locations, nil
}

func (s *Scanner) skip(name string) bool {
	if name == "node_modules" {
		return true
	}
	for _, g := range s.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// locate checks one resource directory for its manifest and artifact.
func locate(dir string) (*Location, error) {
	manifestPath := filepath.Join(dir, manifestFile)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, &ScanError{Dir: dir, Path: manifestPath, Reason: "missing manifest"}
	}

	for _, sub := range artifactDirs {
		matches, err := fsutil.FindFiles(filepath.Join(dir, sub), artifactRegex.MatchString)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Join(dir, sub), err)
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return &Location{
				Dir:          dir,
				ManifestPath: manifestPath,
				ArtifactPath: filepath.Join(dir, sub, matches[0]),
			}, nil
		default:
			return nil, &ScanError{
				Dir:    dir,
				Path:   filepath.Join(dir, sub),
				Reason: fmt.Sprintf("multiple built artifacts (%s)", strings.Join(matches, ", ")),
			}
		}
	}

	return nil, &ScanError{
		Dir:    dir,
		Path:   filepath.Join(dir, artifactDirs[0]),
		Reason: "missing built artifact",
	}
}
