package schedule

import (
	"fmt"

	"github.com/nwalden/planloom/internal/graph"
	"github.com/nwalden/planloom/internal/plan"
)

// Diagnostic is a non-fatal finding from Validate. Diagnostics are
// reported as data and never interrupt scheduling; a caller may schedule
// anyway, which is useful for plans still being authored.
type Diagnostic struct {
	TaskID  string // empty for plan-level findings
	Message string
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return d.Message
}

// Validate checks the plan for date-logic and dependency soundness
// without scheduling it. An empty result means no blocking issues were
// found; it does not guarantee every underspecified task will resolve to
// dates.
func Validate(p *plan.Plan) []Diagnostic {
	if len(p.Tasks) == 0 {
		return []Diagnostic{{Message: "plan contains no tasks"}}
	}

	var diags []Diagnostic
	for _, t := range p.Tasks {
		// Every task needs some basis for dating: a start date, a
		// duration, or dependencies to inherit a start from.
		if t.Start.IsZero() && !t.HasDuration && len(t.Dependencies) == 0 {
			diags = append(diags, Diagnostic{
				TaskID:  t.ID,
				Message: fmt.Sprintf("task %q (%s) is missing basic time information", t.Name, t.ID),
			})
		}
		if !t.Start.IsZero() && !t.End.IsZero() && t.Start.After(t.End) {
			diags = append(diags, Diagnostic{
				TaskID:  t.ID,
				Message: fmt.Sprintf("task %q (%s) starts after it ends", t.Name, t.ID),
			})
		}
	}

	// Dedicated cycle pass; no trial scheduling run and no date
	// derivation side effects.
	if stuck := graph.Build(p).CycleMembers(); stuck != nil {
		diags = append(diags, Diagnostic{
			Message: (&CycleError{TaskIDs: stuck}).Error(),
		})
	}

	return diags
}
