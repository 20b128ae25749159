// Package schedule computes a fully dated plan from a partially dated
// one. It walks tasks in dependency order with Kahn's algorithm, derives
// each task's missing start/end/duration from whatever is known plus the
// latest end date among its dependencies, and fails atomically when the
// dependency graph contains a cycle.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nwalden/planloom/internal/calendar"
	"github.com/nwalden/planloom/internal/graph"
	"github.com/nwalden/planloom/internal/plan"
)

// CycleError is returned when the topological pass cannot process every
// task, whether from a dependency cycle or a dependency on an ID the
// plan does not contain. It carries the sorted IDs of the stuck tasks.
// No dates from the failed run are returned.
type CycleError struct {
	TaskIDs []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving tasks: %s", strings.Join(e.TaskIDs, ", "))
}

// Unwrap lets errors.Is match against graph.ErrCycle.
func (e *CycleError) Unwrap() error {
	return graph.ErrCycle
}

// Run schedules the plan and returns a new, fully dated plan; the input
// is never mutated. Tasks with no dates, no duration, and no
// dependencies default their start to the plan's start date, or to the
// current wall-clock date when the plan has none. Use RunAt for a
// deterministic fallback date.
func Run(p *plan.Plan) (*plan.Plan, error) {
	return RunAt(p, time.Now())
}

// RunAt is Run with an explicit "today" used as the last-resort fallback
// start date for undated, dependency-free tasks.
func RunAt(p *plan.Plan, today time.Time) (*plan.Plan, error) {
	out := p.Clone()
	cal := out.Calendar()
	g := graph.Build(out)

	tasks := make(map[string]*plan.Task, len(out.Tasks))
	for _, t := range out.Tasks {
		tasks[t.ID] = t
	}

	inDegree := make(map[string]int, len(g.InDegree))
	for id, deg := range g.InDegree {
		inDegree[id] = deg
	}

	// Seed with tasks that have no dependencies. Sorted seeding plus
	// sorted batches of freed tasks keeps the visit order, and therefore
	// any tie-breaking in downstream reports, deterministic.
	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	fallback := calendar.Normalize(today)
	processed := make(map[string]bool, len(tasks))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if processed[id] {
			// Duplicate queue entries should not occur; guarding costs nothing.
			continue
		}
		processed[id] = true

		deriveDates(tasks[id], tasks, cal, out.Start, fallback)

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

	if len(processed) != len(out.Tasks) {
		var stuck []string
		for _, t := range out.Tasks {
			if !processed[t.ID] {
				stuck = append(stuck, t.ID)
			}
		}
		sort.Strings(stuck)
		return nil, &CycleError{TaskIDs: stuck}
	}

	recomputePlanDates(out)
	return out, nil
}

// deriveDates fills in the task's missing dates. All of the task's
// dependencies are already dated when this runs.
func deriveDates(t *plan.Task, tasks map[string]*plan.Task, cal calendar.Calendar, planStart, today time.Time) {
	if t.Milestone {
		t.SetDuration(0)
	}

	// A dependency-derived start always wins over a stray input start:
	// precedence constraints are authoritative over stale dates supplied
	// by upstream parsing.
	if len(t.Dependencies) > 0 {
		var latestEnd time.Time
		for _, depID := range t.Dependencies {
			dep, ok := tasks[depID]
			if !ok || dep.End.IsZero() {
				continue
			}
			if latestEnd.IsZero() || dep.End.After(latestEnd) {
				latestEnd = dep.End
			}
		}
		if !latestEnd.IsZero() {
			t.Start = cal.AddWorkingDays(latestEnd, 1)
		}
	}

	// Resolve the third value from whichever two are known. A duration
	// of d working days spans [start, start + (d-1) working days].
	switch {
	case !t.Start.IsZero() && t.HasDuration:
		t.End = cal.AddWorkingDays(t.Start, t.Duration-1)
	case !t.Start.IsZero() && !t.End.IsZero():
		t.SetDuration(cal.CountWorkingDays(t.Start, t.End) + 1)
	case !t.End.IsZero() && t.HasDuration:
		t.Start = cal.SubWorkingDays(t.End, t.Duration-1)
	}

	// Fallback: no start could be derived. Inherit the plan's start
	// date, or wall-clock today as a documented last resort.
	if t.Start.IsZero() {
		if !planStart.IsZero() {
			t.Start = planStart
		} else {
			t.Start = today
		}
		if t.HasDuration {
			t.End = cal.AddWorkingDays(t.Start, t.Duration-1)
		}
	}
}

// recomputePlanDates sets the plan's start to the earliest task start and
// its end to the latest task end, over tasks that have resolved dates.
// A plan with no tasks keeps its dates untouched.
func recomputePlanDates(p *plan.Plan) {
	if len(p.Tasks) == 0 {
		return
	}
	var minStart, maxEnd time.Time
	for _, t := range p.Tasks {
		if !t.Start.IsZero() && (minStart.IsZero() || t.Start.Before(minStart)) {
			minStart = t.Start
		}
		if !t.End.IsZero() && (maxEnd.IsZero() || t.End.After(maxEnd)) {
			maxEnd = t.End
		}
	}
	if !minStart.IsZero() {
		p.Start = minStart
	}
	if !maxEnd.IsZero() {
		p.End = maxEnd
	}
}
