package app

import (
	"context"
	"fmt"

	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/driver"
	"github.com/gasoline-dev/gas/internal/plan"
	"github.com/gasoline-dev/gas/internal/report"
	"github.com/gasoline-dev/gas/internal/resourceid"
	"github.com/gasoline-dev/gas/internal/statestore"
)

// Graph prints the resolved graph.
func (a *App) Graph(ctx context.Context) error {
	res, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	g := &report.Graph{
		Resources:  res.Manifest.Tree(ctx, res.Upstream),
		Upstream:   res.Upstream,
		Dependents: dag.Dependents(res.Direct),
		Endpoints:  res.Endpoints,
	}
	if res.Cycles != nil {
		g.Cycles = res.Cycles.Cycles
	}
	return a.renderer.Graph(g)
}

// Endpoints prints the endpoint resources.
func (a *App) Endpoints(ctx context.Context) error {
	res, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	return a.renderer.Endpoints(res.Endpoints)
}

// Plan prints the changes Up would make.
func (a *App) Plan(ctx context.Context) error {
	ctx = a.context(ctx)

	res, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	store, err := a.openState()
	if err != nil {
		return err
	}
	defer store.Close()

	p, _, err := a.plan(ctx, res, store)
	if err != nil {
		return err
	}
	return a.renderer.Plan(p)
}

// Up applies the plan through the provider and, on success, stores the
// current manifest as the new snapshot. A cyclic graph is refused.
func (a *App) Up(ctx context.Context) error {
	ctx = a.context(ctx)

	res, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	if res.Cycles != nil {
		return fmt.Errorf("refusing to deploy: %w", res.Cycles)
	}

	store, err := a.openState()
	if err != nil {
		return err
	}
	defer store.Close()

	p, curr, err := a.plan(ctx, res, store)
	if err != nil {
		return err
	}

	rep, runErr := driver.New(a.provider, a.config.WorkerCount).Run(ctx, p)
	if err := a.renderer.Deploy(rep); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("deploy failed: %w", runErr)
	}

	if err := store.Save(ctx, curr); err != nil {
		return err
	}
	a.logger.Info("Deploy finished.", "operations", len(rep.Results))
	return nil
}

// NewID prints a freshly generated resource id.
func (a *App) NewID(entityGroup, entity, kind string, qualifiers ...string) error {
	id, err := resourceid.New(entityGroup, entity, kind, qualifiers...)
	if err != nil {
		return err
	}
	return a.renderer.ID(id)
}

func (a *App) openState() (statestore.Store, error) {
	state := a.project.State
	state.Path = resolvePath(a.config.ProjectRoot, state.Path)
	return statestore.Open(state, a.project.Project)
}

// plan diffs the resolved manifest against the stored snapshot.
func (a *App) plan(ctx context.Context, res *Resolution, store statestore.Store) (*plan.Plan, *statestore.Snapshot, error) {
	prev, err := store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	curr := statestore.FromManifest(ctx, a.project.Project, res.Manifest)
	p, err := plan.Build(prev, curr)
	if err != nil {
		return nil, nil, err
	}
	return p, curr, nil
}
