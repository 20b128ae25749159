package plan

import (
	"sort"
	"time"
)

// TaskByID returns the task with the given ID, or nil if absent.
func (p *Plan) TaskByID(id string) *Task {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// DependenciesOf returns the tasks the given task depends on, in the
// order they are listed on the task. Unknown IDs are skipped.
func (p *Plan) DependenciesOf(id string) []*Task {
	t := p.TaskByID(id)
	if t == nil {
		return nil
	}
	var deps []*Task
	for _, depID := range t.Dependencies {
		if dep := p.TaskByID(depID); dep != nil {
			deps = append(deps, dep)
		}
	}
	return deps
}

// DependentsOf returns the tasks that list the given ID as a dependency,
// in plan order.
func (p *Plan) DependentsOf(id string) []*Task {
	var dependents []*Task
	for _, t := range p.Tasks {
		for _, depID := range t.Dependencies {
			if depID == id {
				dependents = append(dependents, t)
				break
			}
		}
	}
	return dependents
}

// Sections returns the sorted distinct section labels used by tasks.
// Tasks without a section are not represented.
func (p *Plan) Sections() []string {
	seen := make(map[string]bool)
	for _, t := range p.Tasks {
		if t.Section != "" {
			seen[t.Section] = true
		}
	}
	sections := make([]string, 0, len(seen))
	for s := range seen {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections
}

// TasksBySection returns the tasks with the given section label, in plan order.
func (p *Plan) TasksBySection(section string) []*Task {
	var tasks []*Task
	for _, t := range p.Tasks {
		if t.Section == section {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Milestones returns the number of milestone tasks.
func (p *Plan) Milestones() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Milestone {
			n++
		}
	}
	return n
}

// CountStatus returns the number of tasks carrying the given status tag.
func (p *Plan) CountStatus(s Status) int {
	n := 0
	for _, t := range p.Tasks {
		if t.HasStatus(s) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the plan. The scheduler works on a clone
// so callers keep an untouched input plan.
func (p *Plan) Clone() *Plan {
	c := *p
	c.Tasks = make([]*Task, len(p.Tasks))
	for i, t := range p.Tasks {
		c.Tasks[i] = t.Clone()
	}
	c.WorkingDays = append([]time.Weekday(nil), p.WorkingDays...)
	return &c
}
