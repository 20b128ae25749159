package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nwalden/planloom/internal/config"
	"github.com/nwalden/planloom/internal/cpm"
	"github.com/nwalden/planloom/internal/history"
	"github.com/nwalden/planloom/internal/plan"
	"github.com/nwalden/planloom/internal/planfile"
	"github.com/nwalden/planloom/internal/render"
	"github.com/nwalden/planloom/internal/schedule"
	"github.com/nwalden/planloom/internal/stats"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <plan file>",
	Short: "Derive task dates and print the schedule",
	Long: `Schedule resolves every task's start and end date from its duration,
dependencies, and the working-day calendar, then prints the resulting
timeline with critical path markers.`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().String("html", "", "write an HTML report to this path")
	scheduleCmd.Flags().String("xlsx", "", "write the schedule as a spreadsheet to this path")
	scheduleCmd.Flags().String("out", "", "write the scheduled plan as TOML to this path")
	scheduleCmd.Flags().Bool("record", false, "record this run in the history database")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := newPrinter(cfg)

	p, warnings, err := loadPlan(args[0], cfg)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.Info(fmt.Sprintf("loaded %d task(s) from %s", len(p.Tasks), args[0]))
	}
	printer.ParseWarnings(warnings)
	if !checkPlan(p, printer) {
		return fmt.Errorf("plan has %d structural error(s)", len(plan.Validate(p)))
	}

	scheduled, err := schedule.Run(p)
	if err != nil {
		var cycleErr *schedule.CycleError
		if errors.As(err, &cycleErr) {
			return fmt.Errorf("cannot schedule: %w", cycleErr)
		}
		return err
	}

	analysis, err := cpm.Analyze(scheduled)
	if err != nil {
		// Tasks without derivable dates make slack meaningless; show
		// the schedule anyway.
		printer.Info(fmt.Sprintf("critical path unavailable: %v", err))
		analysis = nil
	}

	printer.Schedule(scheduled, analysis)
	printer.CriticalPath(analysis)

	st, err := stats.Collect(scheduled)
	if err != nil {
		return fmt.Errorf("collecting statistics: %w", err)
	}
	fmt.Println()
	printer.Stats(st, scheduled.Layout())

	htmlPath, _ := cmd.Flags().GetString("html")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	outPath, _ := cmd.Flags().GetString("out")
	record, _ := cmd.Flags().GetBool("record")

	if htmlPath != "" {
		report, err := render.HTML(scheduled, st, time.Now())
		if err != nil {
			return err
		}
		if err := os.WriteFile(htmlPath, report, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		printer.Success("report written to " + htmlPath)
	}

	if xlsxPath != "" {
		sheet, err := render.XLSX(scheduled)
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxPath, sheet, 0o644); err != nil {
			return fmt.Errorf("writing spreadsheet: %w", err)
		}
		printer.Success("spreadsheet written to " + xlsxPath)
	}

	if outPath != "" {
		data, err := planfile.Encode(scheduled)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("writing plan: %w", err)
		}
		printer.Success("scheduled plan written to " + outPath)
	}

	if record {
		store, err := history.Open(cmd.Context(), cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.Record(cmd.Context(), args[0], scheduled, st)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			printer.Info(fmt.Sprintf("recorded run %d", id))
		}
	}
	return nil
}
