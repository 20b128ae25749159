package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwalden/planloom/internal/config"
	"github.com/nwalden/planloom/internal/mermaid"
	"github.com/nwalden/planloom/internal/plan"
	"github.com/nwalden/planloom/internal/planfile"
	"github.com/nwalden/planloom/internal/ui"
)

// loadPlan reads a plan from path, choosing the parser by extension:
// .toml is the TOML plan format, everything else is mermaid gantt.
func loadPlan(path string, cfg config.Config) (*plan.Plan, []mermaid.Warning, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		p, err := planfile.Load(path)
		if err != nil {
			return nil, nil, err
		}
		applyConfig(p, cfg)
		return p, nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p, warnings := mermaid.Parse(string(data))
	applyConfig(p, cfg)
	return p, warnings, nil
}

// applyConfig fills plan-level settings the input file left unset.
func applyConfig(p *plan.Plan, cfg config.Config) {
	if len(p.WorkingDays) == 0 && len(cfg.WorkingDays) > 0 {
		days, err := planfile.ParseWeekdays(cfg.WorkingDays)
		if err == nil {
			p.WorkingDays = days
		}
	}
	if p.DateFormat == "" && cfg.DateFormat != "" {
		p.DateFormat = mermaid.Layout(cfg.DateFormat)
	}
}

// newPrinter builds a stdout printer honoring the no_color setting.
func newPrinter(cfg config.Config) *ui.Printer {
	return ui.New(os.Stdout, !cfg.NoColor)
}

// checkPlan runs structural validation and prints any findings.
// Returns false if the plan cannot be scheduled.
func checkPlan(p *plan.Plan, printer *ui.Printer) bool {
	errs := plan.Validate(p)
	if len(errs) == 0 {
		return true
	}
	printer.ValidationErrors(errs)
	return false
}
