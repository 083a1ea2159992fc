package driver

import (
	"context"
	"sync"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/plan"
)

// LogProvider records and logs operations without performing them.
type LogProvider struct {
	mu      sync.Mutex
	applied []plan.Operation
}

// Apply implements Provider.
func (p *LogProvider) Apply(ctx context.Context, op plan.Operation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Applying resource change.", "id", op.ID, "change", op.Change, "kind", op.Kind)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.applied = append(p.applied, op)
	return nil
}

// Applied returns the operations seen so far, in completion order.
func (p *LogProvider) Applied() []plan.Operation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]plan.Operation(nil), p.applied...)
}
