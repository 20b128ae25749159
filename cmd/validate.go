package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nwalden/planloom/internal/config"
	"github.com/nwalden/planloom/internal/mermaid"
	"github.com/nwalden/planloom/internal/plan"
	"github.com/nwalden/planloom/internal/schedule"
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan file>",
	Short: "Check a plan for problems without scheduling it",
	Long: `Validate lints mermaid syntax, checks the task graph for structural
errors (duplicate ids, unknown dependencies, bad durations), and
reports scheduling problems such as dependency cycles and tasks with
no usable time information.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := newPrinter(cfg)
	path := args[0]
	ok := true

	// Mermaid inputs get a syntax lint before the structural checks.
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		issues := mermaid.Lint(string(data))
		printer.LintIssues(issues)
		if mermaid.HasErrors(issues) {
			ok = false
		}
	}

	p, warnings, err := loadPlan(path, cfg)
	if err != nil {
		return err
	}
	printer.ParseWarnings(warnings)

	if errs := plan.Validate(p); len(errs) > 0 {
		printer.ValidationErrors(errs)
		ok = false
	}

	if diags := schedule.Validate(p); len(diags) > 0 {
		printer.Diagnostics(diags)
		ok = false
	}

	if !ok {
		return fmt.Errorf("%s: validation failed", path)
	}
	printer.Success(fmt.Sprintf("%s: %d task(s), no problems found", path, len(p.Tasks)))
	return nil
}
