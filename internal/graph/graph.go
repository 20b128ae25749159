// Package graph builds the ephemeral dependency index used by a single
// scheduling run: forward and reverse dependency sets plus in-degree
// counts, with Kahn topological ordering and cycle detection. A Graph is
// derived from a plan's current task list and is never persisted; it must
// be rebuilt after the task list changes.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nwalden/planloom/internal/plan"
)

// ErrCycle is returned when the task graph contains a dependency cycle.
var ErrCycle = errors.New("dependency cycle detected")

// Graph indexes task dependencies for one scheduling run.
// Deps maps a task ID to the set of IDs it depends on; Dependents is the
// reverse map; InDegree counts unresolved dependencies per task.
type Graph struct {
	Deps       map[string]map[string]bool
	Dependents map[string]map[string]bool
	InDegree   map[string]int
}

// Build constructs a Graph from the plan's current task list. The plan is
// not mutated. Duplicate dependency declarations collapse to one edge. A
// dependency on an ID not in the plan still counts toward the task's
// in-degree but can never be drained, so the task surfaces through
// CycleMembers rather than scheduling with a silently missing
// constraint.
func Build(p *plan.Plan) *Graph {
	g := &Graph{
		Deps:       make(map[string]map[string]bool, len(p.Tasks)),
		Dependents: make(map[string]map[string]bool, len(p.Tasks)),
		InDegree:   make(map[string]int, len(p.Tasks)),
	}

	for _, t := range p.Tasks {
		g.Deps[t.ID] = make(map[string]bool, len(t.Dependencies))
		g.Dependents[t.ID] = make(map[string]bool)
		g.InDegree[t.ID] = 0
	}
	for _, t := range p.Tasks {
		seen := make(map[string]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			if _, known := g.Dependents[dep]; known {
				g.Deps[t.ID][dep] = true
				g.Dependents[dep][t.ID] = true
			}
			g.InDegree[t.ID]++
		}
	}
	return g
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.Deps)
}

// TopoOrder returns task IDs in dependency order: every task appears
// after all tasks it depends on. Zero-degree tasks are seeded in sorted
// order and freed tasks are appended FIFO in sorted batches, so the
// ordering is deterministic. Returns ErrCycle if not every task can be
// ordered.
func (g *Graph) TopoOrder() ([]string, error) {
	order := g.drain()
	if len(order) != g.Len() {
		return nil, fmt.Errorf("%w: %d of %d tasks ordered", ErrCycle, len(order), g.Len())
	}
	return order, nil
}

// CycleMembers returns the sorted IDs of tasks that can never be
// processed: members of dependency cycles, tasks depending on unknown
// IDs, and everything downstream of either. Nil means every task
// drains. It walks in-degrees the same way the scheduler does but
// performs no date computation, so the validator can test for blocked
// tasks without a trial scheduling run.
func (g *Graph) CycleMembers() []string {
	order := g.drain()
	if len(order) == g.Len() {
		return nil
	}
	processed := make(map[string]bool, len(order))
	for _, id := range order {
		processed[id] = true
	}
	var stuck []string
	for id := range g.Deps {
		if !processed[id] {
			stuck = append(stuck, id)
		}
	}
	sort.Strings(stuck)
	return stuck
}

// drain runs Kahn's in-degree drain over a private copy of the counts
// and returns the IDs processed, which is every task iff the graph is
// acyclic.
func (g *Graph) drain() []string {
	inDegree := make(map[string]int, len(g.InDegree))
	for id, deg := range g.InDegree {
		inDegree[id] = deg
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(inDegree))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var freed []string
		for dependent := range g.Dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				freed = append(freed, dependent)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
	}
	return order
}
