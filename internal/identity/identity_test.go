package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/resourceid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	exports []Export
	err     error
}

func (f *fakeLoader) Load(context.Context, string) ([]Export, error) {
	return f.exports, f.err
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFromExports(t *testing.T) {
	testCases := []struct {
		name     string
		exports  []Export
		expected *Descriptor
	}{
		{
			name: "first matching export wins",
			exports: []Export{
				{Name: "helper", Value: map[string]any{"id": "not-an-id"}},
				{Name: "coreBaseApi", Value: map[string]any{"id": "core:base:cloudflare-worker:12345", "name": "api"}},
				{Name: "zLater", Value: map[string]any{"id": "core:base:kv:999"}},
			},
			expected: &Descriptor{
				ID:        "core:base:cloudflare-worker:12345",
				Kind:      "cloudflare-worker",
				Name:      "api",
				RawConfig: map[string]any{"id": "core:base:cloudflare-worker:12345", "name": "api"},
			},
		},
		{
			name: "kind from resource field, name from export",
			exports: []Export{
				{Name: "coreBaseKv", Value: map[string]any{"id": "core:base:kv:api:v1:1", "resource": "cloudflare-kv"}},
			},
			expected: &Descriptor{
				ID:        "core:base:kv:api:v1:1",
				Kind:      "cloudflare-kv",
				Name:      "coreBaseKv",
				RawConfig: map[string]any{"id": "core:base:kv:api:v1:1", "resource": "cloudflare-kv"},
			},
		},
		{
			name: "kind from type field",
			exports: []Export{
				{Name: "x", Value: map[string]any{"id": "a:b:c:d", "type": "cloudflare-d1"}},
			},
			expected: &Descriptor{
				ID:        "a:b:c:d",
				Kind:      "cloudflare-d1",
				Name:      "x",
				RawConfig: map[string]any{"id": "a:b:c:d", "type": "cloudflare-d1"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := FromExports("build/index.js", tc.exports)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d)
		})
	}
}

func TestFromExports_NotFound(t *testing.T) {
	_, err := FromExports("build/index.js", []Export{
		{Name: "a", Value: map[string]any{"id": "a:b:c"}},
		{Name: "b", Value: map[string]any{"id": 42}},
	})
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"a", "b"}, nf.Exports)
	assert.Contains(t, err.Error(), "build/index.js")
}

func TestExtractor_Extract(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		x := NewExtractor(&fakeLoader{exports: []Export{
			{Name: "res", Value: map[string]any{"id": "g:e:kv:1"}},
		}})
		d, err := x.Extract(testContext(), "build/index.js")
		require.NoError(t, err)
		assert.Equal(t, resourceid.ID("g:e:kv:1"), d.ID)
	})

	t.Run("loader failure is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		x := NewExtractor(&fakeLoader{err: boom})
		_, err := x.Extract(testContext(), "build/index.js")
		assert.ErrorIs(t, err, boom)
	})
}

func TestDecodeExports(t *testing.T) {
	exports, err := decodeExports([]byte(`[["a",{"id":"g:e:k:1"}],["list",[1,2]],["b",{"x":1}]]` + "\n"))
	require.NoError(t, err)
	require.Len(t, exports, 2)
	assert.Equal(t, "a", exports[0].Name)
	assert.Equal(t, "b", exports[1].Name)

	_, err = decodeExports([]byte(`not json`))
	assert.Error(t, err)

	_, err = decodeExports([]byte(`[["only-name"]]`))
	assert.Error(t, err)
}

func TestNodeLoader(t *testing.T) {
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("node is not installed")
	}

	dir := t.TempDir()
	artifact := filepath.Join(dir, "index.core.base.api.js")
	src := `export const zeta = { id: "core:base:kv:2" };
export const alpha = { id: "core:base:cloudflare-worker:1", name: "api" };
export const notAnObject = 3;
`
	require.NoError(t, os.WriteFile(artifact, []byte(src), 0644))

	exports, err := NewNodeLoader("").Load(context.Background(), artifact)
	require.NoError(t, err)
	require.Len(t, exports, 2)
	assert.Equal(t, "alpha", exports[0].Name)

	d, err := FromExports(artifact, exports)
	require.NoError(t, err)
	assert.Equal(t, resourceid.ID("core:base:cloudflare-worker:1"), d.ID)
}
