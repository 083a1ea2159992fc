// Package plan diffs the current resource manifest against the last
// deployed snapshot and orders the resulting changes into deploy waves.
package plan

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/resourceid"
	"github.com/gasoline-dev/gas/internal/statestore"
)

// Change is what has to happen to a resource.
type Change string

const (
	Created   Change = "CREATED"
	Updated   Change = "UPDATED"
	Deleted   Change = "DELETED"
	Unchanged Change = "UNCHANGED"
)

// Operation is a single scheduled change.
type Operation struct {
	ID     resourceid.ID `json:"id" yaml:"id"`
	Kind   string        `json:"kind" yaml:"kind"`
	Name   string        `json:"name" yaml:"name"`
	Change Change        `json:"change" yaml:"change"`
	Level  int           `json:"level" yaml:"level"`
	Group  int           `json:"group" yaml:"group"`
	// Dependents is the number of resources directly depending on this one.
	Dependents int `json:"dependents" yaml:"dependents"`
}

// Wave holds operations that may run concurrently.
type Wave struct {
	Operations []Operation `json:"operations" yaml:"operations"`
}

// Plan is the ordered set of changes for one deployment.
type Plan struct {
	Changes map[resourceid.ID]Change `json:"changes" yaml:"changes"`
	Waves   []Wave                   `json:"waves" yaml:"waves"`
	// Direct is the union of previous and current dependencies.
	Direct dag.DirectMap `json:"-" yaml:"-"`
}

// HasChanges reports whether any operation is scheduled.
func (p *Plan) HasChanges() bool {
	return len(p.Waves) > 0
}

// Diff classifies every resource in prev or curr.
func Diff(prev, curr *statestore.Snapshot) (map[resourceid.ID]Change, error) {
	changes := make(map[resourceid.ID]Change, len(prev.Resources)+len(curr.Resources))

	for id := range prev.Resources {
		if _, ok := curr.Resources[id]; !ok {
			changes[id] = Deleted
		}
	}
	for id, now := range curr.Resources {
		before, ok := prev.Resources[id]
		if !ok {
			changes[id] = Created
			continue
		}
		same, err := equal(before, now)
		if err != nil {
			return nil, fmt.Errorf("cannot compare resource %s: %w", id, err)
		}
		if same {
			changes[id] = Unchanged
		} else {
			changes[id] = Updated
		}
	}
	return changes, nil
}

func equal(a, b statestore.ResourceState) (bool, error) {
	if a.Kind != b.Kind {
		return false, nil
	}
	if !slices.Equal(sortedIDs(a.Dependencies), sortedIDs(b.Dependencies)) {
		return false, nil
	}
	ac, err := normalize(a.Config)
	if err != nil {
		return false, err
	}
	bc, err := normalize(b.Config)
	if err != nil {
		return false, err
	}
	return reflect.DeepEqual(ac, bc), nil
}

// normalize round-trips a config through JSON so values decoded from
// different state formats compare equal.
func normalize(config map[string]any) (any, error) {
	if len(config) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func sortedIDs(ids []resourceid.ID) []resourceid.ID {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}

// Build diffs the snapshots and schedules the changes. Created and updated
// resources deploy level by level from the bottom of the graph up; deleted
// resources are torn down afterwards from the top down.
func Build(prev, curr *statestore.Snapshot) (*Plan, error) {
	changes, err := Diff(prev, curr)
	if err != nil {
		return nil, err
	}

	direct := dag.MergeDirect(prev.Direct(), curr.Direct())
	levels := dag.Levels(direct)
	groups := dag.Groups(direct)
	inDegrees := dag.InDegrees(direct)

	var applies, deletes []Operation
	for _, id := range slices.Sorted(maps.Keys(changes)) {
		change := changes[id]
		if change == Unchanged {
			continue
		}
		state, ok := curr.Resources[id]
		if !ok {
			state = prev.Resources[id]
		}
		op := Operation{
			ID:     id,
			Kind:   state.Kind,
			Name:   state.Name,
			Change: change,
			Level:  levels[id],
			Group:  groups[id],

			Dependents: inDegrees[id],
		}
		if change == Deleted {
			deletes = append(deletes, op)
		} else {
			applies = append(applies, op)
		}
	}

	p := &Plan{Changes: changes, Direct: direct}
	p.Waves = append(p.Waves, wavesByLevel(applies, false)...)
	p.Waves = append(p.Waves, wavesByLevel(deletes, true)...)
	return p, nil
}

// wavesByLevel splits ops into one wave per level. ops must be sorted by id.
func wavesByLevel(ops []Operation, descending bool) []Wave {
	if len(ops) == 0 {
		return nil
	}
	slices.SortStableFunc(ops, func(a, b Operation) int {
		if descending {
			return cmp.Compare(b.Level, a.Level)
		}
		return cmp.Compare(a.Level, b.Level)
	})

	var waves []Wave
	for i, op := range ops {
		if i == 0 || op.Level != ops[i-1].Level {
			waves = append(waves, Wave{})
		}
		last := &waves[len(waves)-1]
		last.Operations = append(last.Operations, op)
	}
	return waves
}
