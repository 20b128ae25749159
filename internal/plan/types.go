// Package plan defines the project plan data model shared by the parsers,
// the scheduler, and the renderers: tasks with partially known dates, a
// plan-wide working-day pattern, and structural validation.
package plan

import (
	"time"

	"github.com/nwalden/planloom/internal/calendar"
)

// Status is a recognized task status tag. Unrecognized tags parse into
// Status values that Known reports false for; they are carried through
// for display but ignored by reporting logic.
type Status string

const (
	// StatusDone marks a completed task.
	StatusDone Status = "done"
	// StatusActive marks a task currently in progress.
	StatusActive Status = "active"
	// StatusCritical marks a task flagged as critical by the plan author.
	// Independent of computed critical-path membership.
	StatusCritical Status = "crit"
)

// Known reports whether s is one of the recognized status tags.
func (s Status) Known() bool {
	switch s {
	case StatusDone, StatusActive, StatusCritical:
		return true
	}
	return false
}

// Task is a single unit of work in a plan. At most two of Start, End,
// and Duration are independently known before scheduling; the scheduler
// derives the rest. Zero time values mean "unknown"; HasDuration
// distinguishes an unset duration from a zero-day milestone duration.
type Task struct {
	ID           string
	Name         string
	Dependencies []string // IDs of tasks that must finish before this one starts

	Start       time.Time // zero = unknown
	End         time.Time // zero = unknown
	Duration    int       // working days, valid only when HasDuration
	HasDuration bool

	Milestone bool
	Statuses  []Status
	Section   string
}

// SetDuration records a known duration in working days.
func (t *Task) SetDuration(days int) {
	t.Duration = days
	t.HasDuration = true
}

// HasStatus reports whether the task carries the given status tag.
func (t *Task) HasStatus(s Status) bool {
	for _, tag := range t.Statuses {
		if tag == s {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Dependencies = append([]string(nil), t.Dependencies...)
	c.Statuses = append([]Status(nil), t.Statuses...)
	return &c
}

// Plan is an ordered collection of tasks plus the plan-wide scheduling
// context. Task order is insertion order and is preserved for stable
// output. Start and End are derived by scheduling, not authoritative input.
type Plan struct {
	Title string
	Tasks []*Task

	Start time.Time // derived: earliest task start
	End   time.Time // derived: latest task end

	WorkingDays []time.Weekday // empty = Monday–Friday
	DateFormat  string         // Go time layout for display; empty = 2006-01-02
}

// Calendar returns the working-day calendar for this plan.
func (p *Plan) Calendar() calendar.Calendar {
	return calendar.New(p.WorkingDays...)
}

// Layout returns the date layout used when formatting this plan's dates.
func (p *Plan) Layout() string {
	if p.DateFormat == "" {
		return time.DateOnly
	}
	return p.DateFormat
}
