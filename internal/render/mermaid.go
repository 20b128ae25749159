// Package render turns scheduled plans into output documents: mermaid
// gantt source and a standalone HTML report.
package render

import (
	"fmt"
	"strings"

	"github.com/nwalden/planloom/internal/plan"
)

// Mermaid serializes a plan back to mermaid gantt syntax. Tasks are
// grouped by section in plan order; dependencies are emitted as
// "after" references so the chart stays valid if dates shift.
func Mermaid(p *plan.Plan) string {
	var b strings.Builder
	b.WriteString("gantt\n")
	b.WriteString("    dateFormat  YYYY-MM-DD\n")
	fmt.Fprintf(&b, "    title       %s\n", p.Title)

	layout := "2006-01-02"
	for _, section := range sectionOrder(p) {
		b.WriteString("\n")
		if section != "" {
			fmt.Fprintf(&b, "    section %s\n", section)
		}
		for _, task := range p.Tasks {
			if task.Section != section {
				continue
			}
			fmt.Fprintf(&b, "    %s :%s", task.Name, task.ID)
			if task.Milestone {
				b.WriteString(", milestone")
				writeStart(&b, task, layout)
			} else {
				for _, s := range task.Statuses {
					fmt.Fprintf(&b, ", %s", s)
				}
				writeStart(&b, task, layout)
				if task.HasDuration && task.Duration > 0 {
					fmt.Fprintf(&b, ", %dd", task.Duration)
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeStart(b *strings.Builder, task *plan.Task, layout string) {
	if len(task.Dependencies) > 0 {
		fmt.Fprintf(b, ", after %s", task.Dependencies[0])
	} else if !task.Start.IsZero() {
		fmt.Fprintf(b, ", %s", task.Start.Format(layout))
	}
}

// sectionOrder returns sections in first-appearance order, including
// the empty section if any task has none.
func sectionOrder(p *plan.Plan) []string {
	var order []string
	seen := map[string]bool{}
	for _, task := range p.Tasks {
		if !seen[task.Section] {
			seen[task.Section] = true
			order = append(order, task.Section)
		}
	}
	return order
}
