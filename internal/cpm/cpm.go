// Package cpm identifies the critical path of a scheduled plan using the
// two-pass critical path method: a forward pass computing each task's
// earliest start and a backward pass computing its latest start. Tasks
// whose earliest and latest starts coincide have zero float and form the
// critical path.
package cpm

import (
	"errors"
	"fmt"
	"time"

	"github.com/nwalden/planloom/internal/graph"
	"github.com/nwalden/planloom/internal/plan"
)

// ErrUnscheduled is returned when a task lacks resolved dates. Analyze
// requires a plan that has already been through the scheduler.
var ErrUnscheduled = errors.New("plan has undated tasks")

// TaskTiming holds the CPM timings computed for one task.
type TaskTiming struct {
	TaskID   string
	Earliest time.Time // earliest possible start
	Latest   time.Time // latest start without delaying the project
	Slack    int       // working days of float
	Critical bool      // zero float
}

// Result is the outcome of a CPM analysis.
type Result struct {
	Timings map[string]*TaskTiming
	// Critical lists the zero-float tasks in the topological order used
	// to compute them.
	Critical []*plan.Task
	// Order is the topological visitation order.
	Order []string
}

// Analyze runs the two-pass CPM over a fully dated plan. The plan is not
// mutated. Returns graph.ErrCycle via the topological sort if the
// dependency graph is cyclic, or ErrUnscheduled if any task is undated.
func Analyze(p *plan.Plan) (*Result, error) {
	g := graph.Build(p)
	order, err := g.TopoOrder()
	if err != nil {
		return nil, err
	}

	tasks := make(map[string]*plan.Task, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.Start.IsZero() || t.End.IsZero() || !t.HasDuration {
			return nil, fmt.Errorf("%w: task %q", ErrUnscheduled, t.ID)
		}
		tasks[t.ID] = t
	}

	cal := p.Calendar()
	result := &Result{
		Timings: make(map[string]*TaskTiming, len(order)),
		Order:   order,
	}
	for _, id := range order {
		result.Timings[id] = &TaskTiming{TaskID: id}
	}

	// Forward pass: earliest start. A task with no dependencies starts
	// at its resolved start date; otherwise one working day after the
	// latest end among its dependencies.
	for _, id := range order {
		t := tasks[id]
		timing := result.Timings[id]
		if len(g.Deps[id]) == 0 {
			timing.Earliest = t.Start
			continue
		}
		var latestEnd time.Time
		for depID := range g.Deps[id] {
			if end := tasks[depID].End; latestEnd.IsZero() || end.After(latestEnd) {
				latestEnd = end
			}
		}
		timing.Earliest = cal.AddWorkingDays(latestEnd, 1)
	}

	// Backward pass: latest start, in reverse topological order. A task
	// with no dependents is path-terminal and has zero slack by
	// definition; otherwise its latest start is the minimum over
	// dependents of (dependent's latest start minus this task's own
	// duration in working days). Subtracting a zero duration returns the
	// date unchanged, so milestones participate normally.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		t := tasks[id]
		timing := result.Timings[id]
		if len(g.Dependents[id]) == 0 {
			timing.Latest = timing.Earliest
			continue
		}
		var minDependentStart time.Time
		for depID := range g.Dependents[id] {
			ls := result.Timings[depID].Latest
			if minDependentStart.IsZero() || ls.Before(minDependentStart) {
				minDependentStart = ls
			}
		}
		timing.Latest = cal.SubWorkingDays(minDependentStart, t.Duration)
	}

	for _, id := range order {
		timing := result.Timings[id]
		timing.Critical = timing.Earliest.Equal(timing.Latest)
		if !timing.Critical {
			timing.Slack = cal.CountWorkingDays(timing.Earliest, timing.Latest) - 1
			if timing.Slack < 0 {
				timing.Slack = 0
			}
		}
		if timing.Critical {
			result.Critical = append(result.Critical, tasks[id])
		}
	}

	return result, nil
}
