package topology

import (
	"context"
	"testing"

	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/resourceid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	api := &Resource{ID: "core:base:cloudflare-worker:1", Kind: "cloudflare-worker", Name: "api"}
	db := &Resource{ID: "core:base:cloudflare-kv:2", Kind: "cloudflare-kv", Name: "db"}

	require.NoError(t, s.AddResource(ctx, api))
	require.NoError(t, s.AddResource(ctx, db))
	require.NoError(t, s.AddResource(ctx, &Resource{ID: api.ID, Name: "ignored"}))
	assert.Error(t, s.AddResource(ctx, &Resource{}))

	require.NoError(t, s.AddDependency(ctx, api.ID, db.ID))
	require.NoError(t, s.AddDependency(ctx, api.ID, db.ID))
	assert.ErrorContains(t, s.AddDependency(ctx, "x:y:z:1", db.ID), "source resource")
	assert.ErrorContains(t, s.AddDependency(ctx, api.ID, "x:y:z:1"), "target resource")

	got, ok := s.Resource(ctx, api.ID)
	require.True(t, ok)
	assert.Equal(t, "api", got.Name)

	deps, err := s.DependenciesOf(ctx, api.ID)
	require.NoError(t, err)
	assert.Equal(t, []resourceid.ID{db.ID}, deps)

	_, err = s.DependenciesOf(ctx, "x:y:z:1")
	assert.Error(t, err)

	assert.Equal(t, dag.DirectMap{api.ID: {db.ID}, db.ID: {}}, s.Direct(ctx))

	all := s.AllResources(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, db.ID, all[0].ID)
}

func TestStore_Tree(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.AddResource(ctx, &Resource{ID: "core:base:cloudflare-worker:1", Kind: "cloudflare-worker", Name: "api"}))
	require.NoError(t, s.AddResource(ctx, &Resource{ID: "core:base:cloudflare-kv:2", Kind: "cloudflare-kv", Name: "db"}))
	require.NoError(t, s.AddResource(ctx, &Resource{ID: "shop:cart:cloudflare-kv:3", Kind: "cloudflare-kv", Name: "cart"}))
	require.NoError(t, s.AddDependency(ctx, "core:base:cloudflare-worker:1", "core:base:cloudflare-kv:2"))

	upstream := dag.ResolveUpstream(s.Direct(ctx))
	tree := s.Tree(ctx, upstream)

	require.Contains(t, tree, "core")
	require.Contains(t, tree, "shop")
	workers := tree["core"]["base"]["cloudflare-worker"]
	require.Len(t, workers, 1)
	assert.Equal(t, []resourceid.ID{"core:base:cloudflare-kv:2"}, workers[0].Dependencies)
	assert.Equal(t, []resourceid.ID{"core:base:cloudflare-kv:2"}, workers[0].Upstream)

	cart := tree["shop"]["cart"]["cloudflare-kv"]
	require.Len(t, cart, 1)
	assert.Empty(t, cart[0].Upstream)
}

func TestStore_TreeKindComesFromID(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.AddResource(ctx, &Resource{ID: "core:base:cloudflare-worker:1", Kind: "worker-alias", Name: "api"}))
	require.NoError(t, s.AddResource(ctx, &Resource{ID: "core:base:kv:x.y:2", Kind: "kv", Name: "db"}))

	tree := s.Tree(ctx, dag.ResolveUpstream(s.Direct(ctx)))

	kinds := tree["core"]["base"]
	require.Contains(t, kinds, "cloudflare-worker")
	assert.NotContains(t, kinds, "worker-alias")
	require.Len(t, kinds["cloudflare-worker"], 1)
	assert.Equal(t, resourceid.ID("core:base:cloudflare-worker:1"), kinds["cloudflare-worker"][0].ID)
	assert.Len(t, kinds["kv"], 1)
}

func TestSplitID(t *testing.T) {
	testCases := []struct {
		id                  resourceid.ID
		group, entity, kind string
	}{
		{id: "core:base:kv:1", group: "core", entity: "base", kind: "kv"},
		{id: "core:base:kv:api:v1:1", group: "core", entity: "base", kind: "kv"},
		{id: "a b:c:d:e", group: "a b", entity: "c", kind: "d"},
		{id: "lonely", group: "lonely", kind: "fallback"},
	}

	for _, tc := range testCases {
		t.Run(tc.id.String(), func(t *testing.T) {
			group, entity, kind := splitID(tc.id, "fallback")
			assert.Equal(t, tc.group, group)
			assert.Equal(t, tc.entity, entity)
			assert.Equal(t, tc.kind, kind)
		})
	}
}
