// Package mermaid parses mermaid gantt chart syntax into plans.
//
// The parser is deliberately tolerant: malformed lines are reported as
// warnings rather than aborting the parse, so a partially broken chart
// still yields a usable plan for the lines that do parse.
package mermaid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nwalden/planloom/internal/calendar"
	"github.com/nwalden/planloom/internal/plan"
)

// Task lines look like:
//
//	Design work :des1, done, 2024-01-01, 2024-01-05
//	Build it    :b1, after des1, 5d
//	Ship        :ship, milestone, 2024-01-11, 0d
//
// Name, then a colon, then id, optional status tags, start info
// (a date or an "after <id>" dependency), and optional end info
// (a date or a "<n>d" duration).
var (
	taskLineRE = regexp.MustCompile(`^(.+?)\s*:\s*([A-Za-z0-9_-]+)\s*,\s*(.+)$`)
	afterRE    = regexp.MustCompile(`^after\s+([A-Za-z0-9_-]+)`)
	durationRE = regexp.MustCompile(`^(\d+)d$`)
)

// statusTags are the tags recognized in a task line's status position.
// Anything else in that position is treated as start info.
var statusTags = map[string]bool{
	"done":      true,
	"active":    true,
	"crit":      true,
	"milestone": true,
}

// Warning reports a line the parser could not fully interpret.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Parse reads mermaid gantt syntax and builds a plan. Lines that cannot
// be interpreted are skipped and reported as warnings. Plan.DateFormat
// is set only when the source declares a dateFormat, so callers can tell
// a declared format from the assumed default.
func Parse(src string) (*plan.Plan, []Warning) {
	p := &plan.Plan{Title: "Gantt Chart"}
	layout := DefaultLayout
	var warnings []Warning
	section := ""

	for i, raw := range strings.Split(src, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}

		switch {
		case line == "gantt":
			continue
		case strings.HasPrefix(line, "dateFormat"):
			format := strings.TrimSpace(strings.TrimPrefix(line, "dateFormat"))
			layout = Layout(format)
			p.DateFormat = layout
			if _, ok := dateLayouts[format]; !ok && format != "" {
				warnings = append(warnings, Warning{lineNo, fmt.Sprintf("unrecognized dateFormat %q, assuming YYYY-MM-DD", format)})
			}
			continue
		case strings.HasPrefix(line, "title"):
			p.Title = strings.TrimSpace(strings.TrimPrefix(line, "title"))
			continue
		case strings.HasPrefix(line, "excludes"):
			spec := strings.TrimSpace(strings.TrimPrefix(line, "excludes"))
			if spec != "weekends" {
				warnings = append(warnings, Warning{lineNo, fmt.Sprintf("unsupported excludes %q, only weekends are excluded", spec)})
			}
			continue
		case strings.HasPrefix(line, "section"):
			section = strings.TrimSpace(strings.TrimPrefix(line, "section"))
			continue
		case strings.HasPrefix(line, "axisFormat"), strings.HasPrefix(line, "tickInterval"), strings.HasPrefix(line, "todayMarker"):
			continue
		}

		task, taskWarnings := parseTaskLine(line, lineNo, section, layout)
		warnings = append(warnings, taskWarnings...)
		if task != nil {
			p.Tasks = append(p.Tasks, task)
		}
	}
	return p, warnings
}

func parseTaskLine(line string, lineNo int, section, layout string) (*plan.Task, []Warning) {
	m := taskLineRE.FindStringSubmatch(line)
	if m == nil {
		return nil, []Warning{{lineNo, fmt.Sprintf("unparseable task line %q", line)}}
	}

	task := &plan.Task{
		Name:    strings.TrimSpace(m[1]),
		ID:      m[2],
		Section: section,
	}

	fields := splitFields(m[3])
	var warnings []Warning

	// Leading fields that match known status tags are statuses; the
	// first non-tag field begins the timing info.
	rest := fields
	for len(rest) > 0 && statusTags[rest[0]] {
		if rest[0] == "milestone" {
			task.Milestone = true
		} else {
			task.Statuses = append(task.Statuses, plan.Status(rest[0]))
		}
		rest = rest[1:]
	}

	if len(rest) > 0 {
		startInfo := rest[0]
		if after := afterRE.FindStringSubmatch(startInfo); after != nil {
			task.Dependencies = append(task.Dependencies, after[1])
		} else {
			start, err := parseDate(startInfo, layout)
			if err != nil {
				warnings = append(warnings, Warning{lineNo, fmt.Sprintf("task %q: bad start %q", task.ID, startInfo)})
			} else {
				task.Start = start
			}
		}
	}

	if len(rest) > 1 {
		endInfo := rest[1]
		if d := durationRE.FindStringSubmatch(endInfo); d != nil {
			n, err := strconv.Atoi(d[1])
			if err == nil {
				task.SetDuration(n)
			}
		} else {
			end, err := parseDate(endInfo, layout)
			if err != nil {
				warnings = append(warnings, Warning{lineNo, fmt.Sprintf("task %q: bad end %q", task.ID, endInfo)})
			} else {
				task.End = end
			}
		}
	}
	if len(rest) > 2 {
		warnings = append(warnings, Warning{lineNo, fmt.Sprintf("task %q: ignoring extra fields %v", task.ID, rest[2:])})
	}

	// A start with no end info means a one-day task.
	if !task.Start.IsZero() && task.End.IsZero() && !task.HasDuration {
		task.SetDuration(1)
	}
	if task.Milestone {
		task.SetDuration(0)
		if !task.Start.IsZero() && task.End.IsZero() {
			task.End = task.Start
		}
	}
	return task, warnings
}

func splitFields(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDate(s, layout string) (time.Time, error) {
	if t, err := time.Parse(layout, s); err == nil {
		return calendar.Normalize(t), nil
	}
	for _, fallback := range fallbackLayouts {
		if fallback == layout {
			continue
		}
		if t, err := time.Parse(fallback, s); err == nil {
			return calendar.Normalize(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: no matching layout", s)
}
