package fsutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gasoline-dev/gas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubdirs(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"b/x":       "",
		"a/x":       "",
		".hidden/x": "",
		"file.txt":  "",
	})

	dirs, err := Subdirs(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dirs)

	_, err = Subdirs(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"build/z.js":     "",
		"build/a.js":     "",
		"build/a.js.map": "",
		"build/sub/b.js": "",
	})

	isJS := func(name string) bool { return strings.HasSuffix(name, ".js") }

	files, err := FindFiles(filepath.Join(root, "build"), isJS)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "z.js"}, files)

	files, err = FindFiles(filepath.Join(root, "dist"), isJS)
	require.NoError(t, err)
	assert.Empty(t, files)

	assert.Panics(t, func() { _, _ = FindFiles(root, nil) })
}
