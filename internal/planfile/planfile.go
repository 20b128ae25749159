// Package planfile reads and writes plans as TOML documents.
//
// The format is a [plan] table with plan-level settings followed by
// one [[task]] table per task:
//
//	[plan]
//	title = "Release Plan"
//	date_format = "YYYY-MM-DD"
//	working_days = ["monday", "tuesday", "wednesday", "thursday", "friday"]
//
//	[[task]]
//	id = "des"
//	name = "Design work"
//	section = "Build"
//	start = "2024-01-01"
//	end = "2024-01-05"
//	statuses = ["done"]
package planfile

import (
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/nwalden/planloom/internal/calendar"
	"github.com/nwalden/planloom/internal/mermaid"
	"github.com/nwalden/planloom/internal/plan"
)

type document struct {
	Plan  header      `toml:"plan"`
	Tasks []taskTable `toml:"task"`
}

type header struct {
	Title       string   `toml:"title"`
	Start       string   `toml:"start,omitempty"`
	End         string   `toml:"end,omitempty"`
	WorkingDays []string `toml:"working_days,omitempty"`
	DateFormat  string   `toml:"date_format,omitempty"`
}

type taskTable struct {
	ID        string   `toml:"id"`
	Name      string   `toml:"name"`
	Section   string   `toml:"section,omitempty"`
	DependsOn []string `toml:"depends_on,omitempty"`
	Start     string   `toml:"start,omitempty"`
	End       string   `toml:"end,omitempty"`
	Duration  *int     `toml:"duration,omitempty"`
	Milestone bool     `toml:"milestone,omitempty"`
	Statuses  []string `toml:"statuses,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekdays converts lowercase weekday names to time.Weekday values.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, name := range names {
		wd, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown working day %q", name)
		}
		days = append(days, wd)
	}
	return days, nil
}

// Load reads a TOML plan file from disk.
func Load(path string) (*plan.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML plan document.
func Parse(data []byte) (*plan.Plan, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}

	layout := resolveLayout(doc.Plan.DateFormat)
	p := &plan.Plan{Title: doc.Plan.Title}
	if doc.Plan.DateFormat != "" {
		p.DateFormat = layout
	}
	if p.Title == "" {
		p.Title = "Gantt Chart"
	}

	var err error
	if p.WorkingDays, err = ParseWeekdays(doc.Plan.WorkingDays); err != nil {
		return nil, err
	}

	if p.Start, err = parseDate(doc.Plan.Start, layout, "plan start"); err != nil {
		return nil, err
	}
	if p.End, err = parseDate(doc.Plan.End, layout, "plan end"); err != nil {
		return nil, err
	}

	for _, tt := range doc.Tasks {
		task := &plan.Task{
			ID:           tt.ID,
			Name:         tt.Name,
			Section:      tt.Section,
			Dependencies: tt.DependsOn,
			Milestone:    tt.Milestone,
		}
		if task.Name == "" {
			task.Name = task.ID
		}
		if task.Start, err = parseDate(tt.Start, layout, fmt.Sprintf("task %q start", tt.ID)); err != nil {
			return nil, err
		}
		if task.End, err = parseDate(tt.End, layout, fmt.Sprintf("task %q end", tt.ID)); err != nil {
			return nil, err
		}
		if tt.Duration != nil {
			task.SetDuration(*tt.Duration)
		}
		if task.Milestone {
			task.SetDuration(0)
		}
		for _, s := range tt.Statuses {
			task.Statuses = append(task.Statuses, plan.Status(s))
		}
		p.Tasks = append(p.Tasks, task)
	}
	return p, nil
}

// Encode renders a plan back to TOML, typically after scheduling has
// filled in derived dates.
func Encode(p *plan.Plan) ([]byte, error) {
	layout := p.Layout()
	doc := document{
		Plan: header{
			Title:      p.Title,
			Start:      formatDate(p.Start, layout),
			End:        formatDate(p.End, layout),
			DateFormat: p.DateFormat,
		},
	}
	for _, wd := range p.WorkingDays {
		doc.Plan.WorkingDays = append(doc.Plan.WorkingDays, strings.ToLower(wd.String()))
	}
	for _, task := range p.Tasks {
		tt := taskTable{
			ID:        task.ID,
			Name:      task.Name,
			Section:   task.Section,
			DependsOn: task.Dependencies,
			Start:     formatDate(task.Start, layout),
			End:       formatDate(task.End, layout),
			Milestone: task.Milestone,
		}
		if task.HasDuration {
			d := task.Duration
			tt.Duration = &d
		}
		for _, s := range task.Statuses {
			tt.Statuses = append(tt.Statuses, string(s))
		}
		doc.Tasks = append(doc.Tasks, tt)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding plan file: %w", err)
	}
	return data, nil
}

// resolveLayout accepts either a mermaid-style token format such as
// YYYY-MM-DD or a Go time layout.
func resolveLayout(format string) string {
	if format == "" {
		return mermaid.DefaultLayout
	}
	if strings.Contains(format, "YYYY") {
		return mermaid.Layout(format)
	}
	return format
}

func parseDate(s, layout, what string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s %q: %w", what, s, err)
	}
	return calendar.Normalize(t), nil
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
