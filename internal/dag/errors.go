package dag

import (
	"fmt"
	"strings"

	"github.com/gasoline-dev/gas/internal/resourceid"
)

// CycleError reports dependency cycles. Each cycle lists the resources on
// the path in dependency order; the last one depends on the first.
type CycleError struct {
	Cycles [][]resourceid.ID
}

func (e *CycleError) Error() string {
	parts := make([]string, 0, len(e.Cycles))
	for _, cycle := range e.Cycles {
		ids := make([]string, 0, len(cycle)+1)
		for _, id := range cycle {
			ids = append(ids, id.String())
		}
		ids = append(ids, cycle[0].String())
		parts = append(parts, strings.Join(ids, " -> "))
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(parts, "; "))
}
