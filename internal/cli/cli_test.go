package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gasoline-dev/gas/internal/resourceid"
	"github.com/gasoline-dev/gas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &testutil.SafeBuffer{}
	errW := &testutil.SafeBuffer{}
	err := NewRunner(out, errW, testutil.JSONLoader{}).Run(context.Background(), args)
	return out.String(), errW.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteResources(t, root, "gasoline",
		testutil.Resource{Dir: "api", ID: "core:base:cloudflare-worker:1", Deps: []string{"db"}},
		testutil.Resource{Dir: "db", ID: "core:base:cloudflare-kv:2"},
	)
	return root
}

func TestRun(t *testing.T) {
	root := writeProject(t)

	testCases := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "default command prints the graph",
			args:     []string{"-C", root},
			contains: []string{"RESOURCES", "ENDPOINTS", "core:base:cloudflare-worker:1"},
		},
		{
			name:     "graph as yaml",
			args:     []string{"-C", root, "--format", "yaml", "graph"},
			contains: []string{"endpoints:", "- core:base:cloudflare-worker:1"},
		},
		{
			name:     "endpoints",
			args:     []string{"--project-root", root, "endpoints"},
			contains: []string{"core:base:cloudflare-worker:1"},
		},
		{
			name:     "plan",
			args:     []string{"-C", root, "plan"},
			contains: []string{"PLAN", "CREATED", "wave 2"},
		},
		{
			name:     "help",
			args:     []string{"--help"},
			contains: []string{"USAGE:", "graph", "endpoints", "plan", "up"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCLI(t, tc.args...)
			require.NoError(t, err)
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestRun_UpWritesState(t *testing.T) {
	root := writeProject(t)

	out, logs, err := runCLI(t, "-C", root, "--log-level", "debug", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "COMPLETE")
	assert.Contains(t, logs, "Deploy finished.")

	out, _, err = runCLI(t, "-C", root, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "no changes")
}

func TestRun_ResourceContainerOverride(t *testing.T) {
	root := t.TempDir()
	testutil.WriteResources(t, root, "elsewhere",
		testutil.Resource{Dir: "db", ID: "core:base:cloudflare-kv:2"},
	)

	out, _, err := runCLI(t, "-C", root, "--resource-container-dir", "elsewhere", "--format", "json", "graph")
	require.NoError(t, err)
	assert.Contains(t, out, "core:base:cloudflare-kv:2")
}

func TestRun_IDNew(t *testing.T) {
	out, _, err := runCLI(t, "-C", t.TempDir(), "--format", "json", "id", "new", "--group", "core", "--entity", "base", "--kind", "kv", "--qualifier", "api")
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	addr, err := resourceid.Parse(decoded["id"])
	require.NoError(t, err)
	assert.Equal(t, []string{"api"}, addr.Qualifiers)
}

func TestRun_ExitCodes(t *testing.T) {
	cyclic := t.TempDir()
	testutil.WriteResources(t, cyclic, "gasoline",
		testutil.Resource{Dir: "a", ID: "g:e:kv:a", Deps: []string{"b"}},
		testutil.Resource{Dir: "b", ID: "g:e:kv:b", Deps: []string{"a"}},
	)

	testCases := []struct {
		name string
		args []string
		code int
	}{
		{name: "unknown flag", args: []string{"--bogus"}, code: ExitUsage},
		{name: "unknown command", args: []string{"bogus"}, code: ExitUsage},
		{name: "invalid log level", args: []string{"--log-level", "trace", "graph"}, code: ExitUsage},
		{name: "invalid log format", args: []string{"--log-format", "xml", "graph"}, code: ExitUsage},
		{name: "invalid output format", args: []string{"--format", "csv", "graph"}, code: ExitUsage},
		{name: "zero workers", args: []string{"--workers", "0", "graph"}, code: ExitUsage},
		{name: "id without kind", args: []string{"id", "new", "--group", "g", "--entity", "e"}, code: ExitUsage},
		{name: "cycle blocks up", args: []string{"-C", cyclic, "up"}, code: ExitCycle},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runCLI(t, tc.args...)
			require.Error(t, err)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tc.code, exitErr.Code)
		})
	}
}

func TestRun_RuntimeFailureIsPlainError(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{"gasoline/api/package.json": `{"name":"api"}`})

	_, _, err := runCLI(t, "-C", root, "graph")
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "missing built artifact")
}
