package planfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nwalden/planloom/internal/calendar"
	"github.com/nwalden/planloom/internal/plan"
)

const samplePlanTOML = `
[plan]
title = "Release Plan"
date_format = "YYYY-MM-DD"
working_days = ["monday", "tuesday", "wednesday", "thursday", "friday"]

[[task]]
id = "des"
name = "Design work"
section = "Build"
start = "2024-01-01"
end = "2024-01-05"
statuses = ["done"]

[[task]]
id = "impl"
name = "Implement"
section = "Build"
depends_on = ["des"]
duration = 3
statuses = ["active"]

[[task]]
id = "ship"
name = "Ship"
section = "Release"
depends_on = ["impl"]
milestone = true
`

func TestParse(t *testing.T) {
	t.Parallel()

	p, err := Parse([]byte(samplePlanTOML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Title != "Release Plan" {
		t.Errorf("Title = %q, want %q", p.Title, "Release Plan")
	}
	if p.DateFormat != "2006-01-02" {
		t.Errorf("DateFormat = %q, want %q", p.DateFormat, "2006-01-02")
	}
	if len(p.WorkingDays) != 5 || p.WorkingDays[0] != time.Monday {
		t.Errorf("WorkingDays = %v, want monday through friday", p.WorkingDays)
	}
	if len(p.Tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(p.Tasks))
	}

	des := p.Tasks[0]
	if got, want := des.Start, calendar.Date(2024, time.January, 1); !got.Equal(want) {
		t.Errorf("des.Start = %v, want %v", got, want)
	}
	if !des.HasStatus(plan.StatusDone) {
		t.Errorf("des statuses = %v, want done", des.Statuses)
	}

	impl := p.Tasks[1]
	if !impl.HasDuration || impl.Duration != 3 {
		t.Errorf("impl duration = %d (has=%v), want 3", impl.Duration, impl.HasDuration)
	}
	if len(impl.Dependencies) != 1 || impl.Dependencies[0] != "des" {
		t.Errorf("impl.Dependencies = %v, want [des]", impl.Dependencies)
	}

	ship := p.Tasks[2]
	if !ship.Milestone || !ship.HasDuration || ship.Duration != 0 {
		t.Errorf("ship = %+v, want milestone with duration 0", ship)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"invalid toml", "[plan\ntitle = 1"},
		{"bad working day", "[plan]\nworking_days = [\"funday\"]"},
		{"bad task date", "[[task]]\nid = \"a\"\nstart = \"soon\""},
		{"bad plan date", "[plan]\nstart = \"soon\""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(tt.src)); err == nil {
				t.Error("Parse succeeded, want error")
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	p, err := Parse([]byte("[[task]]\nid = \"a\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Title != "Gantt Chart" {
		t.Errorf("Title = %q, want default", p.Title)
	}
	if p.DateFormat != "" {
		t.Errorf("DateFormat = %q, want unset when no date_format declared", p.DateFormat)
	}
	if p.Layout() != "2006-01-02" {
		t.Errorf("Layout() = %q, want default layout", p.Layout())
	}
	if p.Tasks[0].Name != "a" {
		t.Errorf("task name = %q, want id fallback", p.Tasks[0].Name)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	p, err := Parse([]byte(samplePlanTOML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode): %v", err)
	}
	if back.Title != p.Title {
		t.Errorf("Title = %q, want %q", back.Title, p.Title)
	}
	if len(back.Tasks) != len(p.Tasks) {
		t.Fatalf("got %d tasks, want %d", len(back.Tasks), len(p.Tasks))
	}
	for i, task := range back.Tasks {
		orig := p.Tasks[i]
		if task.ID != orig.ID || task.Milestone != orig.Milestone ||
			task.HasDuration != orig.HasDuration || task.Duration != orig.Duration ||
			!task.Start.Equal(orig.Start) || !task.End.Equal(orig.End) {
			t.Errorf("task %d = %+v, want %+v", i, task, orig)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.toml")
	if err := os.WriteFile(path, []byte(samplePlanTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Tasks) != 3 {
		t.Errorf("got %d tasks, want 3", len(p.Tasks))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load missing file succeeded, want error")
	}
}
