package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nwalden/planloom/internal/config"
	"github.com/nwalden/planloom/internal/schedule"
	"github.com/nwalden/planloom/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats <plan file>",
	Short: "Print project statistics for a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := newPrinter(cfg)

	p, warnings, err := loadPlan(args[0], cfg)
	if err != nil {
		return err
	}
	printer.ParseWarnings(warnings)

	// Statistics are computed on the scheduled plan so durations and
	// the project span reflect derived dates.
	scheduled, err := schedule.Run(p)
	if err != nil {
		return err
	}
	st, err := stats.Collect(scheduled)
	if err != nil {
		return err
	}
	printer.Stats(st, scheduled.Layout())
	return nil
}
