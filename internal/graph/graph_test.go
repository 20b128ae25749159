package graph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nwalden/planloom/internal/plan"
)

// buildPlan creates a plan from (id, deps...) specs in order.
func buildPlan(specs map[string][]string, order []string) *plan.Plan {
	p := &plan.Plan{}
	for _, id := range order {
		p.Tasks = append(p.Tasks, &plan.Task{ID: id, Name: id, Dependencies: specs[id]})
	}
	return p
}

func TestBuild(t *testing.T) {
	t.Parallel()

	// a -> b -> d, a -> c -> d (arrows mean "is depended on by")
	p := buildPlan(map[string][]string{
		"b": {"a"},
		"c": {"a"},
		"d": {"b", "c"},
	}, []string{"a", "b", "c", "d"})

	g := Build(p)

	if g.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", g.Len())
	}
	if !g.Deps["d"]["b"] || !g.Deps["d"]["c"] {
		t.Errorf("Deps[d] = %v, want {b, c}", g.Deps["d"])
	}
	if !g.Dependents["a"]["b"] || !g.Dependents["a"]["c"] {
		t.Errorf("Dependents[a] = %v, want {b, c}", g.Dependents["a"])
	}
	wantDegrees := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2}
	if diff := cmp.Diff(wantDegrees, g.InDegree); diff != "" {
		t.Errorf("InDegree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildIgnoresDuplicateEdges(t *testing.T) {
	t.Parallel()

	p := buildPlan(map[string][]string{"b": {"a", "a"}}, []string{"a", "b"})
	g := Build(p)

	if g.InDegree["b"] != 1 {
		t.Errorf("InDegree[b] = %d, want 1 (duplicate dep collapsed)", g.InDegree["b"])
	}
}

func TestBuildUnknownDependencyBlocksTask(t *testing.T) {
	t.Parallel()

	p := buildPlan(map[string][]string{"a": {"ghost"}, "b": {"a"}}, []string{"a", "b"})
	g := Build(p)

	if g.InDegree["a"] != 1 {
		t.Errorf("InDegree[a] = %d, want 1 (unknown dep still counts)", g.InDegree["a"])
	}
	if len(g.Deps["a"]) != 0 {
		t.Errorf("Deps[a] = %v, want no resolvable edges", g.Deps["a"])
	}
	if _, err := g.TopoOrder(); !errors.Is(err, ErrCycle) {
		t.Errorf("TopoOrder error = %v, want ErrCycle", err)
	}

	// Both the blocked task and its dependents are reported.
	got := g.CycleMembers()
	want := []string{"a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CycleMembers mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDoesNotMutatePlan(t *testing.T) {
	t.Parallel()

	p := buildPlan(map[string][]string{"b": {"a"}}, []string{"a", "b"})
	Build(p)

	if len(p.Tasks) != 2 || len(p.Tasks[1].Dependencies) != 1 {
		t.Error("Build mutated the input plan")
	}
}

func TestTopoOrder(t *testing.T) {
	t.Parallel()

	t.Run("chain", func(t *testing.T) {
		t.Parallel()
		p := buildPlan(map[string][]string{"b": {"a"}, "c": {"b"}}, []string{"c", "b", "a"})
		order, err := Build(p).TopoOrder()
		if err != nil {
			t.Fatalf("TopoOrder: %v", err)
		}
		want := []string{"a", "b", "c"}
		if diff := cmp.Diff(want, order); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("diamond respects dependencies", func(t *testing.T) {
		t.Parallel()
		p := buildPlan(map[string][]string{
			"b": {"a"}, "c": {"a"}, "d": {"b", "c"},
		}, []string{"a", "b", "c", "d"})
		order, err := Build(p).TopoOrder()
		if err != nil {
			t.Fatalf("TopoOrder: %v", err)
		}
		pos := make(map[string]int)
		for i, id := range order {
			pos[id] = i
		}
		for dependent, deps := range map[string][]string{"b": {"a"}, "c": {"a"}, "d": {"b", "c"}} {
			for _, dep := range deps {
				if pos[dep] >= pos[dependent] {
					t.Errorf("dependency %s appears after dependent %s in %v", dep, dependent, order)
				}
			}
		}
	})

	t.Run("deterministic tie-breaking", func(t *testing.T) {
		t.Parallel()
		p := buildPlan(nil, []string{"z", "m", "a"})
		for i := 0; i < 5; i++ {
			order, err := Build(p).TopoOrder()
			if err != nil {
				t.Fatalf("TopoOrder: %v", err)
			}
			want := []string{"a", "m", "z"}
			if diff := cmp.Diff(want, order); diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}
		}
	})

	t.Run("cycle returns ErrCycle", func(t *testing.T) {
		t.Parallel()
		p := buildPlan(map[string][]string{"a": {"c"}, "b": {"a"}, "c": {"b"}}, []string{"a", "b", "c"})
		if _, err := Build(p).TopoOrder(); !errors.Is(err, ErrCycle) {
			t.Errorf("TopoOrder error = %v, want ErrCycle", err)
		}
	})
}

func TestCycleMembers(t *testing.T) {
	t.Parallel()

	t.Run("acyclic returns nil", func(t *testing.T) {
		t.Parallel()
		p := buildPlan(map[string][]string{"b": {"a"}}, []string{"a", "b"})
		if got := Build(p).CycleMembers(); got != nil {
			t.Errorf("CycleMembers = %v, want nil", got)
		}
	})

	t.Run("cycle names exactly its members", func(t *testing.T) {
		t.Parallel()
		// a, b, c form a cycle; x depends on the cycle and is also stuck;
		// free has no dependencies and schedules fine.
		p := buildPlan(map[string][]string{
			"a": {"c"}, "b": {"a"}, "c": {"b"}, "x": {"a"},
		}, []string{"free", "a", "b", "c", "x"})
		got := Build(p).CycleMembers()
		want := []string{"a", "b", "c", "x"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("CycleMembers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("three task cycle regardless of order", func(t *testing.T) {
		t.Parallel()
		for _, order := range [][]string{
			{"a", "b", "c"}, {"b", "c", "a"}, {"c", "a", "b"},
		} {
			p := buildPlan(map[string][]string{"a": {"c"}, "b": {"a"}, "c": {"b"}}, order)
			got := Build(p).CycleMembers()
			want := []string{"a", "b", "c"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("order %v: CycleMembers mismatch (-want +got):\n%s", order, diff)
			}
		}
	})
}
