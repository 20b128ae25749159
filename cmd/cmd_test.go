package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/nwalden/planloom/internal/config"
)

const testChart = `gantt
    title Release Plan
    dateFormat YYYY-MM-DD
    section Build
    Design :des, done, 2024-01-01, 2024-01-05
    Implement :impl, after des, 3d
    Ship :ship, milestone, after impl
`

const testTOML = `
[plan]
title = "Release Plan"

[[task]]
id = "a"
name = "A"
start = "2024-01-01"
duration = 2
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPlanByExtension(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		title   string
		tasks   int
	}{
		{"mermaid", "plan.mmd", testChart, "Release Plan", 3},
		{"toml", "plan.toml", testTOML, "Release Plan", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.content)
			p, _, err := loadPlan(path, config.Config{})
			if err != nil {
				t.Fatalf("loadPlan: %v", err)
			}
			if p.Title != tt.title {
				t.Errorf("Title = %q, want %q", p.Title, tt.title)
			}
			if len(p.Tasks) != tt.tasks {
				t.Errorf("got %d tasks, want %d", len(p.Tasks), tt.tasks)
			}
		})
	}
}

func TestLoadPlanMissingFile(t *testing.T) {
	if _, _, err := loadPlan(filepath.Join(t.TempDir(), "nope.mmd"), config.Config{}); err == nil {
		t.Error("loadPlan succeeded for missing file, want error")
	}
}

func TestApplyConfigWorkingDays(t *testing.T) {
	path := writeTemp(t, "plan.mmd", testChart)
	cfg := config.Config{WorkingDays: []string{"sunday", "monday", "tuesday", "wednesday", "thursday"}}
	p, _, err := loadPlan(path, cfg)
	if err != nil {
		t.Fatalf("loadPlan: %v", err)
	}
	if len(p.WorkingDays) != 5 || p.WorkingDays[0] != time.Sunday {
		t.Errorf("WorkingDays = %v, want Sun-Thu calendar", p.WorkingDays)
	}
}

func TestApplyConfigDateFormat(t *testing.T) {
	cfg := config.Config{DateFormat: "DD-MM-YYYY"}

	// Chart without a dateFormat line picks up the configured format.
	plain := writeTemp(t, "plain.mmd", "gantt\nTask :t, 2024-03-04, 2d\n")
	p, _, err := loadPlan(plain, cfg)
	if err != nil {
		t.Fatalf("loadPlan: %v", err)
	}
	if p.Layout() != "02-01-2006" {
		t.Errorf("Layout() = %q, want %q", p.Layout(), "02-01-2006")
	}

	// A declared dateFormat wins over the config.
	declared := writeTemp(t, "declared.mmd", testChart)
	p, _, err = loadPlan(declared, cfg)
	if err != nil {
		t.Fatalf("loadPlan: %v", err)
	}
	if p.Layout() != "2006-01-02" {
		t.Errorf("Layout() = %q, want declared format to win", p.Layout())
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestRunScheduleVerbose(t *testing.T) {
	src := writeTemp(t, "plan.mmd", testChart)
	viper.Set("no_color", true)
	t.Cleanup(func() {
		viper.Set("no_color", false)
		viper.Set("verbose", false)
	})

	quiet := captureStdout(t, func() {
		if err := runSchedule(scheduleCmd, []string{src}); err != nil {
			t.Errorf("runSchedule: %v", err)
		}
	})
	if strings.Contains(quiet, "loaded 3 task(s)") {
		t.Errorf("load summary printed without verbose:\n%s", quiet)
	}

	viper.Set("verbose", true)
	loud := captureStdout(t, func() {
		if err := runSchedule(scheduleCmd, []string{src}); err != nil {
			t.Errorf("runSchedule: %v", err)
		}
	})
	if !strings.Contains(loud, "loaded 3 task(s) from "+src) {
		t.Errorf("verbose run missing load summary:\n%s", loud)
	}
}

func TestRunValidate(t *testing.T) {
	good := writeTemp(t, "good.mmd", testChart)
	if err := runValidate(validateCmd, []string{good}); err != nil {
		t.Errorf("runValidate(good) = %v, want nil", err)
	}

	bad := writeTemp(t, "bad.mmd", "gantt\ndateFormat YYYY-MM-DD\nA :a, after b, 2d\nB :b, after a, 2d\n")
	if err := runValidate(validateCmd, []string{bad}); err == nil {
		t.Error("runValidate(cycle) = nil, want error")
	}
}

func TestRunScheduleWritesOutputs(t *testing.T) {
	src := writeTemp(t, "plan.mmd", testChart)
	outDir := t.TempDir()
	htmlPath := filepath.Join(outDir, "report.html")
	xlsxPath := filepath.Join(outDir, "schedule.xlsx")
	tomlPath := filepath.Join(outDir, "scheduled.toml")

	cmd := scheduleCmd
	if err := cmd.Flags().Set("html", htmlPath); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("xlsx", xlsxPath); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("out", tomlPath); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = cmd.Flags().Set("html", "")
		_ = cmd.Flags().Set("xlsx", "")
		_ = cmd.Flags().Set("out", "")
	})

	if err := runSchedule(cmd, []string{src}); err != nil {
		t.Fatalf("runSchedule: %v", err)
	}
	for _, path := range []string{htmlPath, xlsxPath, tomlPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output %s: %v", path, err)
		}
	}

	// The scheduled TOML must load back with resolved dates.
	p, _, err := loadPlan(tomlPath, config.Config{})
	if err != nil {
		t.Fatalf("loadPlan(scheduled): %v", err)
	}
	for _, task := range p.Tasks {
		if task.Start.IsZero() || task.End.IsZero() {
			t.Errorf("task %s has unresolved dates after scheduling", task.ID)
		}
	}
}
