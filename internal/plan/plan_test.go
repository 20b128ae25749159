package plan

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nwalden/planloom/internal/calendar"
)

func samplePlan() *Plan {
	a := &Task{ID: "a", Name: "Design", Section: "Phase 1", Statuses: []Status{StatusDone}}
	a.Start = calendar.Date(2024, time.January, 1)
	a.SetDuration(5)
	b := &Task{ID: "b", Name: "Build", Dependencies: []string{"a"}, Section: "Phase 2", Statuses: []Status{StatusActive}}
	b.SetDuration(3)
	m := &Task{ID: "m", Name: "Release", Dependencies: []string{"b"}, Milestone: true, Section: "Phase 2"}
	return &Plan{Title: "Sample", Tasks: []*Task{a, b, m}}
}

func TestTaskByID(t *testing.T) {
	t.Parallel()
	p := samplePlan()

	if got := p.TaskByID("b"); got == nil || got.Name != "Build" {
		t.Errorf("TaskByID(b) = %+v, want Build", got)
	}
	if got := p.TaskByID("nope"); got != nil {
		t.Errorf("TaskByID(nope) = %+v, want nil", got)
	}
}

func TestDependentsOf(t *testing.T) {
	t.Parallel()
	p := samplePlan()

	deps := p.DependentsOf("a")
	if len(deps) != 1 || deps[0].ID != "b" {
		t.Errorf("DependentsOf(a) = %v, want [b]", ids(deps))
	}
	if got := p.DependentsOf("m"); got != nil {
		t.Errorf("DependentsOf(m) = %v, want nil", ids(got))
	}
}

func TestSections(t *testing.T) {
	t.Parallel()
	p := samplePlan()

	want := []string{"Phase 1", "Phase 2"}
	if diff := cmp.Diff(want, p.Sections()); diff != "" {
		t.Errorf("Sections() mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()
	p := samplePlan()

	if got := p.CountStatus(StatusDone); got != 1 {
		t.Errorf("CountStatus(done) = %d, want 1", got)
	}
	if got := p.CountStatus(StatusCritical); got != 0 {
		t.Errorf("CountStatus(crit) = %d, want 0", got)
	}
	if !Status("done").Known() {
		t.Error("done should be a known status")
	}
	if Status("blocked").Known() {
		t.Error("blocked should not be a known status")
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()
	p := samplePlan()
	c := p.Clone()

	c.Tasks[0].Start = calendar.Date(2030, time.June, 1)
	c.Tasks[1].Dependencies[0] = "x"
	c.Tasks[2].Statuses = append(c.Tasks[2].Statuses, StatusDone)

	if !p.Tasks[0].Start.Equal(calendar.Date(2024, time.January, 1)) {
		t.Error("clone mutation leaked into original start date")
	}
	if p.Tasks[1].Dependencies[0] != "a" {
		t.Error("clone mutation leaked into original dependencies")
	}
	if len(p.Tasks[2].Statuses) != 0 {
		t.Error("clone mutation leaked into original statuses")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid plan", func(t *testing.T) {
		t.Parallel()
		if errs := Validate(samplePlan()); len(errs) != 0 {
			t.Errorf("Validate = %v, want no errors", errs)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()
		p := &Plan{Tasks: []*Task{{ID: "a", Name: "A"}, {ID: "a", Name: "A2"}}}
		errs := Validate(p)
		if len(errs) != 1 || !errors.Is(errs[0], ErrDuplicateID) {
			t.Errorf("Validate = %v, want one ErrDuplicateID", errs)
		}
	})

	t.Run("unknown dependency", func(t *testing.T) {
		t.Parallel()
		p := &Plan{Tasks: []*Task{{ID: "a", Dependencies: []string{"ghost"}}}}
		errs := Validate(p)
		if len(errs) != 1 || !errors.Is(errs[0], ErrUnknownDep) {
			t.Errorf("Validate = %v, want one ErrUnknownDep", errs)
		}
		if errs[0].Category != ValCatUnknownDep {
			t.Errorf("category = %q, want %q", errs[0].Category, ValCatUnknownDep)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		p := &Plan{Tasks: []*Task{{Name: "unnamed"}}}
		errs := Validate(p)
		if len(errs) != 1 || !errors.Is(errs[0], ErrMissingField) {
			t.Errorf("Validate = %v, want one ErrMissingField", errs)
		}
	})

	t.Run("milestone with nonzero duration", func(t *testing.T) {
		t.Parallel()
		task := &Task{ID: "m", Milestone: true}
		task.SetDuration(3)
		p := &Plan{Tasks: []*Task{task}}
		errs := Validate(p)
		if len(errs) != 1 || !errors.Is(errs[0], ErrBadDuration) {
			t.Errorf("Validate = %v, want one ErrBadDuration", errs)
		}
	})

	t.Run("negative duration", func(t *testing.T) {
		t.Parallel()
		task := &Task{ID: "t"}
		task.SetDuration(-1)
		p := &Plan{Tasks: []*Task{task}}
		errs := Validate(p)
		if len(errs) != 1 || !errors.Is(errs[0], ErrBadDuration) {
			t.Errorf("Validate = %v, want one ErrBadDuration", errs)
		}
	})
}

func ids(tasks []*Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
