package report

import (
	"fmt"

	"github.com/gasoline-dev/gas/internal/driver"
	"github.com/gasoline-dev/gas/internal/plan"
)

// Plan renders the scheduled waves of a plan.
func (r *Renderer) Plan(p *plan.Plan) error {
	if ok, err := r.encode(p); ok {
		return err
	}

	r.line(0, r.title.Render("PLAN"))
	if !p.HasChanges() {
		r.line(1, r.muted.Render("no changes"))
		return nil
	}
	for i, w := range p.Waves {
		r.line(1, r.muted.Render(fmt.Sprintf("wave %d", i+1)))
		for _, op := range w.Operations {
			r.line(2, fmt.Sprintf("%s %s %s", r.change(op.Change), r.id.Render(op.ID.String()), r.muted.Render("("+op.Kind+")")))
		}
	}
	return nil
}

// Deploy renders the outcome of running a plan.
func (r *Renderer) Deploy(rep *driver.Report) error {
	if ok, err := r.encode(rep); ok {
		return err
	}

	r.line(0, r.title.Render("DEPLOY"))
	if len(rep.Results) == 0 {
		r.line(1, r.muted.Render("nothing to do"))
		return nil
	}
	for _, res := range rep.Results {
		line := fmt.Sprintf("%s %s %s", r.status(res.Status), r.change(res.Operation.Change), r.id.Render(res.Operation.ID.String()))
		if res.Error != "" {
			line += " " + r.bad.Render(res.Error)
		}
		r.line(1, line)
	}
	return nil
}

func (r *Renderer) change(c plan.Change) string {
	s := fmt.Sprintf("%-9s", c)
	switch c {
	case plan.Created:
		return r.good.Render(s)
	case plan.Deleted:
		return r.bad.Render(s)
	case plan.Updated:
		return r.warn.Render(s)
	}
	return r.muted.Render(s)
}

func (r *Renderer) status(s driver.Status) string {
	text := fmt.Sprintf("%-8s", s)
	switch s {
	case driver.Complete:
		return r.good.Render(text)
	case driver.Failed:
		return r.bad.Render(text)
	}
	return r.muted.Render(text)
}
