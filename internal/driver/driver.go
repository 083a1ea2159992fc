// Package driver executes a deployment plan wave by wave against a
// Provider. It does not talk to any cloud itself.
package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/plan"
	"golang.org/x/sync/errgroup"
)

// Status is the deploy state of one operation.
type Status string

const (
	Pending  Status = "PENDING"
	Complete Status = "COMPLETE"
	Failed   Status = "FAILED"
	Canceled Status = "CANCELED"
)

// Provider applies a single operation.
type Provider interface {
	Apply(ctx context.Context, op plan.Operation) error
}

// Result is the outcome of one operation.
type Result struct {
	Operation plan.Operation `json:"operation" yaml:"operation"`
	Status    Status         `json:"status" yaml:"status"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
}

// Report lists results in plan order.
type Report struct {
	Results []Result `json:"results" yaml:"results"`
}

// Failed reports whether any operation failed.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status == Failed {
			return true
		}
	}
	return false
}

// Driver runs plans.
type Driver struct {
	provider Provider
	workers  int
}

// New creates a Driver. workers bounds concurrency within a wave.
func New(provider Provider, workers int) *Driver {
	return &Driver{provider: provider, workers: max(workers, 1)}
}

// Run executes the plan's waves in order. Operations within a wave run
// concurrently. After a failure the current wave finishes, every later
// operation is marked Canceled, and the first error is returned.
func (d *Driver) Run(ctx context.Context, p *plan.Plan) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	var slots [][]Result
	for _, w := range p.Waves {
		results := make([]Result, len(w.Operations))
		for i, op := range w.Operations {
			results[i] = Result{Operation: op, Status: Pending}
		}
		slots = append(slots, results)
	}

	var firstErr error
	for i, w := range p.Waves {
		if firstErr == nil {
			firstErr = d.runWave(ctx, i, w, slots[i])
			continue
		}
		for j := range slots[i] {
			slots[i][j].Status = Canceled
			logger.Info("Operation canceled.", "wave", i, "id", slots[i][j].Operation.ID)
		}
	}

	report := &Report{}
	for _, results := range slots {
		report.Results = append(report.Results, results...)
	}
	return report, firstErr
}

func (d *Driver) runWave(ctx context.Context, index int, w plan.Wave, results []Result) error {
	logger := ctxlog.FromContext(ctx).With("wave", index)
	logger.Debug("Wave started.", "operations", len(w.Operations))

	var (
		mu       sync.Mutex
		firstErr error
	)
	g := new(errgroup.Group)
	g.SetLimit(d.workers)

	for i, op := range w.Operations {
		g.Go(func() error {
			opLogger := logger.With("id", op.ID, "kind", op.Kind)
			opLogger.Info("Operation in progress.", "state", inProgress(op.Change))

			start := time.Now()
			err := d.provider.Apply(ctx, op)
			results[i].Duration = time.Since(start)

			if err != nil {
				results[i].Status = Failed
				results[i].Error = err.Error()
				opLogger.Error("Operation failed.", "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s %s: %w", op.Change, op.ID, err)
				}
				mu.Unlock()
				return nil
			}
			results[i].Status = Complete
			opLogger.Info("Operation complete.", "duration", results[i].Duration)
			return nil
		})
	}

	// Tasks always return nil; a failure must not cancel its siblings.
	_ = g.Wait()
	return firstErr
}

func inProgress(c plan.Change) string {
	switch c {
	case plan.Created:
		return "CREATE_IN_PROGRESS"
	case plan.Updated:
		return "UPDATE_IN_PROGRESS"
	case plan.Deleted:
		return "DELETE_IN_PROGRESS"
	}
	return "IN_PROGRESS"
}
