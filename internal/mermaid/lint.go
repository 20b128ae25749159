package mermaid

import (
	"fmt"
	"strings"
)

// Severity classifies a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single lint finding against a gantt source file.
type Issue struct {
	Line     int
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	if i.Line == 0 {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Severity, i.Message)
}

// Lint checks gantt source for structural problems before parsing:
// a missing gantt header, an unrecognized dateFormat, task lines that
// do not match the grammar, duplicate task ids, and dependencies on
// ids that never appear.
func Lint(src string) []Issue {
	var issues []Issue
	sawGantt := false
	sawDateFormat := false
	ids := map[string]int{}

	type depRef struct {
		line int
		id   string
	}
	var deps []depRef

	for i, raw := range strings.Split(src, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}

		switch {
		case line == "gantt":
			sawGantt = true
			continue
		case strings.HasPrefix(line, "dateFormat"):
			sawDateFormat = true
			format := strings.TrimSpace(strings.TrimPrefix(line, "dateFormat"))
			if _, ok := dateLayouts[format]; !ok {
				issues = append(issues, Issue{lineNo, SeverityWarning, fmt.Sprintf("unrecognized dateFormat %q", format)})
			}
			continue
		case strings.HasPrefix(line, "title"),
			strings.HasPrefix(line, "excludes"),
			strings.HasPrefix(line, "section"),
			strings.HasPrefix(line, "axisFormat"),
			strings.HasPrefix(line, "tickInterval"),
			strings.HasPrefix(line, "todayMarker"):
			continue
		}

		m := taskLineRE.FindStringSubmatch(line)
		if m == nil {
			issues = append(issues, Issue{lineNo, SeverityError, fmt.Sprintf("task line does not match grammar: %q", line)})
			continue
		}
		id := m[2]
		if first, dup := ids[id]; dup {
			issues = append(issues, Issue{lineNo, SeverityError, fmt.Sprintf("duplicate task id %q (first used on line %d)", id, first)})
		} else {
			ids[id] = lineNo
		}
		for _, field := range splitFields(m[3]) {
			if after := afterRE.FindStringSubmatch(field); after != nil {
				deps = append(deps, depRef{lineNo, after[1]})
			}
		}
	}

	if !sawGantt {
		issues = append(issues, Issue{0, SeverityWarning, "missing gantt header"})
	}
	if !sawDateFormat {
		issues = append(issues, Issue{0, SeverityWarning, "missing dateFormat, assuming YYYY-MM-DD"})
	}
	for _, dep := range deps {
		if _, ok := ids[dep.id]; !ok {
			issues = append(issues, Issue{dep.line, SeverityError, fmt.Sprintf("dependency on unknown task id %q", dep.id)})
		}
	}
	return issues
}

// HasErrors reports whether any issue is severity error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
