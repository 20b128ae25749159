package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nwalden/planloom/internal/config"
	"github.com/nwalden/planloom/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scheduling runs",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show (0 for all)")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	printer := newPrinter(cfg)
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(cmd.Context(), cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	printer.Runs(runs)
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	printer := newPrinter(cfg)

	store, err := history.Open(cmd.Context(), cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(cmd.Context()); err != nil {
		return err
	}
	printer.Success("history cleared")
	return nil
}
