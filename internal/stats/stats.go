// Package stats aggregates summary figures from an already-scheduled plan.
package stats

import (
	"time"

	"github.com/nwalden/planloom/internal/cpm"
	"github.com/nwalden/planloom/internal/plan"
)

// Stats summarizes a scheduled plan.
type Stats struct {
	TotalTasks     int
	DoneTasks      int
	ActiveTasks    int
	Milestones     int
	TotalDuration  int // working days spanned by the whole project, 0 if unbounded
	Start, End     time.Time
	CompletionRate float64 // percentage, 0 when the plan has no tasks
	CriticalLength int     // number of tasks on the critical path
	Sections       []string
}

// Collect computes statistics for a scheduled plan. The critical-path
// length comes from a CPM analysis, so Collect fails for cyclic or
// undated plans the same way cpm.Analyze does; pass the output of the
// scheduler.
func Collect(p *plan.Plan) (*Stats, error) {
	s := &Stats{
		TotalTasks:  len(p.Tasks),
		DoneTasks:   p.CountStatus(plan.StatusDone),
		ActiveTasks: p.CountStatus(plan.StatusActive),
		Milestones:  p.Milestones(),
		Start:       p.Start,
		End:         p.End,
		Sections:    p.Sections(),
	}

	if !p.Start.IsZero() && !p.End.IsZero() {
		s.TotalDuration = p.Calendar().CountWorkingDays(p.Start, p.End) + 1
	}
	if s.TotalTasks > 0 {
		s.CompletionRate = float64(s.DoneTasks) / float64(s.TotalTasks) * 100
	}

	if len(p.Tasks) > 0 {
		result, err := cpm.Analyze(p)
		if err != nil {
			return nil, err
		}
		s.CriticalLength = len(result.Critical)
	}

	return s, nil
}
