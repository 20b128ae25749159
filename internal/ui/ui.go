// Package ui renders schedules, diagnostics, and statistics for the
// terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nwalden/planloom/internal/cpm"
	"github.com/nwalden/planloom/internal/history"
	"github.com/nwalden/planloom/internal/mermaid"
	"github.com/nwalden/planloom/internal/plan"
	"github.com/nwalden/planloom/internal/schedule"
	"github.com/nwalden/planloom/internal/stats"
)

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan — headers, accents
	colorAccent  = lipgloss.Color("#FFD700") // Gold — critical path
	colorSuccess = lipgloss.Color("#00E676") // Green — done
	colorDanger  = lipgloss.Color("#FF5252") // Red — errors
	colorMuted   = lipgloss.Color("#636363") // Gray — de-emphasized
	colorBlue    = lipgloss.Color("#5B8DEF") // Blue — active
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleCrit   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleDone   = lipgloss.NewStyle().Foreground(colorSuccess)
	styleActive = lipgloss.NewStyle().Foreground(colorBlue)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleError  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	styleWarn   = lipgloss.NewStyle().Foreground(colorAccent)
)

// Printer writes styled output to w. With color disabled every style
// degrades to plain text.
type Printer struct {
	w     io.Writer
	color bool
}

func New(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Schedule prints the scheduled plan as a table, one row per task.
// When analysis is non-nil, critical tasks are marked and slack shown.
func (p *Printer) Schedule(pl *plan.Plan, analysis *cpm.Result) {
	layout := pl.Layout()
	fmt.Fprintln(p.w, p.render(styleTitle, pl.Title))
	if !pl.Start.IsZero() && !pl.End.IsZero() {
		fmt.Fprintln(p.w, p.render(styleMuted, fmt.Sprintf("%s – %s", pl.Start.Format(layout), pl.End.Format(layout))))
	}
	fmt.Fprintln(p.w)

	header := fmt.Sprintf("%-12s %-28s %-12s %-12s %5s", "ID", "TASK", "START", "END", "DAYS")
	if analysis != nil {
		header += fmt.Sprintf(" %5s  %s", "SLACK", "CRIT")
	}
	fmt.Fprintln(p.w, p.render(styleHeader, header))

	for _, task := range pl.Tasks {
		row := fmt.Sprintf("%-12s %-28s %-12s %-12s %5s",
			task.ID, truncate(task.Name, 28),
			formatDate(task.Start, layout), formatDate(task.End, layout),
			formatDuration(task))
		style := styleForTask(task)
		if analysis != nil {
			if timing, ok := analysis.Timings[task.ID]; ok {
				mark := ""
				if timing.Critical {
					mark = "★"
					style = styleCrit
				}
				row += fmt.Sprintf(" %5d  %s", timing.Slack, mark)
			}
		}
		fmt.Fprintln(p.w, p.render(style, row))
	}
}

func styleForTask(task *plan.Task) lipgloss.Style {
	switch {
	case task.HasStatus(plan.StatusDone):
		return styleDone
	case task.HasStatus(plan.StatusActive):
		return styleActive
	default:
		return lipgloss.NewStyle()
	}
}

// CriticalPath prints the critical tasks in dependency order.
func (p *Printer) CriticalPath(analysis *cpm.Result) {
	if analysis == nil || len(analysis.Critical) == 0 {
		return
	}
	ids := make([]string, len(analysis.Critical))
	for i, task := range analysis.Critical {
		ids[i] = task.ID
	}
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "%s %s\n", p.render(styleHeader, "critical path:"), p.render(styleCrit, strings.Join(ids, " → ")))
}

// Diagnostics prints plan validation findings, one per line.
func (p *Printer) Diagnostics(diags []schedule.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(p.w, "%s %s\n", p.render(styleError, "✗"), d.String())
	}
}

// ValidationErrors prints structural plan errors.
func (p *Printer) ValidationErrors(errs []plan.ValidationError) {
	for _, e := range errs {
		fmt.Fprintf(p.w, "%s %s\n", p.render(styleError, "✗"), e.Error())
	}
}

// ParseWarnings prints parser warnings.
func (p *Printer) ParseWarnings(warnings []mermaid.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(p.w, "%s %s\n", p.render(styleWarn, "⚠"), w.String())
	}
}

// LintIssues prints lint findings.
func (p *Printer) LintIssues(issues []mermaid.Issue) {
	for _, issue := range issues {
		marker, style := "⚠", styleWarn
		if issue.Severity == mermaid.SeverityError {
			marker, style = "✗", styleError
		}
		fmt.Fprintf(p.w, "%s %s\n", p.render(style, marker), issue.String())
	}
}

// Stats prints project statistics.
func (p *Printer) Stats(st *stats.Stats, layout string) {
	row := func(label string, value string) {
		fmt.Fprintf(p.w, "  %-18s %s\n", p.render(styleMuted, label), value)
	}
	fmt.Fprintln(p.w, p.render(styleHeader, "project statistics"))
	row("tasks:", fmt.Sprintf("%d", st.TotalTasks))
	row("done:", fmt.Sprintf("%d", st.DoneTasks))
	row("active:", fmt.Sprintf("%d", st.ActiveTasks))
	row("milestones:", fmt.Sprintf("%d", st.Milestones))
	row("completion:", fmt.Sprintf("%.1f%%", st.CompletionRate))
	if !st.Start.IsZero() && !st.End.IsZero() {
		row("span:", fmt.Sprintf("%s – %s (%d working days)", st.Start.Format(layout), st.End.Format(layout), st.TotalDuration))
	}
	row("critical path:", fmt.Sprintf("%d tasks", st.CriticalLength))
	if len(st.Sections) > 0 {
		row("sections:", strings.Join(st.Sections, ", "))
	}
}

// Runs prints recorded scheduling runs, newest first.
func (p *Printer) Runs(runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.w, p.render(styleMuted, "no recorded runs"))
		return
	}
	fmt.Fprintln(p.w, p.render(styleHeader, fmt.Sprintf("%-5s %-20s %-24s %6s %6s  %s", "ID", "RECORDED", "SOURCE", "TASKS", "DONE", "SPAN")))
	for _, r := range runs {
		span := ""
		if r.PlanStart != "" {
			span = fmt.Sprintf("%s – %s", r.PlanStart, r.PlanEnd)
		}
		fmt.Fprintf(p.w, "%-5d %-20s %-24s %6d %6d  %s\n",
			r.ID, r.RecordedAt.Format("2006-01-02 15:04"), truncate(r.Source, 24), r.TotalTasks, r.DoneTasks, span)
	}
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.render(styleError, "error:"), msg)
}

// Info prints a de-emphasized informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, p.render(styleMuted, msg))
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.render(styleDone, "✓"), msg)
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}

func formatDuration(task *plan.Task) string {
	if !task.HasDuration {
		return "-"
	}
	if task.Milestone {
		return "◆"
	}
	return fmt.Sprintf("%d", task.Duration)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
