// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"strings"
)

// Subdirs returns the names of the immediate, non-hidden subdirectories of
// root in lexical order.
func Subdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// FindFiles returns the names of regular files directly inside dir for
// which match reports true, in lexical order. A missing dir yields no files.
func FindFiles(dir string, match func(name string) bool) ([]string, error) {
	if match == nil {
		panic("match must not be nil")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && match(e.Name()) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}
