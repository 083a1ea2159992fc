package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/driver"
	"github.com/gasoline-dev/gas/internal/plan"
	"github.com/gasoline-dev/gas/internal/resourceid"
	"github.com/gasoline-dev/gas/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleGraph() *Graph {
	return &Graph{
		Resources: topology.Tree{
			"core": {"base": {"cloudflare-worker": {{
				ID:           "core:base:cloudflare-worker:1",
				Name:         "api",
				Dependencies: []resourceid.ID{"core:base:cloudflare-kv:2"},
				Upstream:     []resourceid.ID{"core:base:cloudflare-kv:2"},
			}}}},
		},
		Upstream: dag.UpstreamMap{
			"core:base:cloudflare-worker:1": {"core:base:cloudflare-kv:2"},
			"core:base:cloudflare-kv:2":     {},
		},
		Dependents: dag.DirectMap{
			"core:base:cloudflare-worker:1": {},
			"core:base:cloudflare-kv:2":     {"core:base:cloudflare-worker:1"},
		},
		Endpoints: []resourceid.ID{"core:base:cloudflare-worker:1"},
		Cycles:    [][]resourceid.ID{{"x:y:z:1", "x:y:z:2"}},
	}
}

func TestNewRenderer_InvalidFormat(t *testing.T) {
	_, err := NewRenderer(&bytes.Buffer{}, "xml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestGraph_Text(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, FormatText)
	require.NoError(t, err)
	require.NoError(t, r.Graph(sampleGraph()))

	out := buf.String()
	assert.Contains(t, out, "RESOURCES")
	assert.Contains(t, out, "core:base:cloudflare-worker:1")
	assert.Contains(t, out, "(api)")
	assert.Contains(t, out, "depends on:")
	assert.Contains(t, out, "needed by:")
	assert.Contains(t, out, "core:base:cloudflare-kv:2")
	assert.Contains(t, out, "ENDPOINTS")
	assert.Contains(t, out, "x:y:z:1 -> x:y:z:2 -> x:y:z:1")
}

func TestGraph_JSON(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, FormatJSON)
	require.NoError(t, err)
	require.NoError(t, r.Graph(sampleGraph()))

	var decoded struct {
		Upstream  map[string][]string `json:"upstream"`
		Endpoints []string            `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"core:base:cloudflare-worker:1"}, decoded.Endpoints)
	assert.Equal(t, []string{"core:base:cloudflare-kv:2"}, decoded.Upstream["core:base:cloudflare-worker:1"])
}

func TestEndpoints_YAML(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, FormatYAML)
	require.NoError(t, err)
	require.NoError(t, r.Endpoints([]resourceid.ID{"a:b:c:1"}))

	var decoded map[string][]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"a:b:c:1"}, decoded["endpoints"])
}

func TestPlanAndDeploy_Text(t *testing.T) {
	p := &plan.Plan{Waves: []plan.Wave{{Operations: []plan.Operation{
		{ID: "a:b:kv:1", Kind: "kv", Change: plan.Created},
	}}}}

	var buf bytes.Buffer
	r, err := NewRenderer(&buf, FormatText)
	require.NoError(t, err)
	require.NoError(t, r.Plan(p))
	require.NoError(t, r.Plan(&plan.Plan{}))
	require.NoError(t, r.Deploy(&driver.Report{Results: []driver.Result{
		{Operation: p.Waves[0].Operations[0], Status: driver.Failed, Error: "boom"},
	}}))

	out := buf.String()
	assert.Contains(t, out, "wave 1")
	assert.Contains(t, out, "CREATED")
	assert.Contains(t, out, "a:b:kv:1")
	assert.Contains(t, out, "no changes")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "boom")
}
