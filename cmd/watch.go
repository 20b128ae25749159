package cmd

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nwalden/planloom/internal/config"
	"github.com/nwalden/planloom/internal/cpm"
	"github.com/nwalden/planloom/internal/schedule"
	"github.com/nwalden/planloom/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <plan file>",
	Short: "Reschedule and reprint whenever the plan file changes",
	Long: `Watch monitors the plan file and reruns scheduling on every save,
so the updated timeline is always on screen while editing.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := newPrinter(cfg)
	path := args[0]

	reschedule(path, cfg, printer)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	printer.Info("watching " + path + " (ctrl-c to stop)")

	// Debounce: editors fire several events per save.
	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}
			// Some editors replace the file on save; re-add the watch.
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				_ = watcher.Add(path)
				pending = time.Now()
			}
		case now := <-ticker.C:
			if pending.IsZero() || now.Sub(pending) < debounce {
				continue
			}
			pending = time.Time{}
			reschedule(path, cfg, printer)
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

// reschedule loads, schedules, and prints the plan, reporting problems
// inline instead of exiting so the watch loop survives bad saves.
func reschedule(path string, cfg config.Config, printer *ui.Printer) {
	p, warnings, err := loadPlan(path, cfg)
	if err != nil {
		printer.Error(err.Error())
		return
	}
	printer.ParseWarnings(warnings)
	if !checkPlan(p, printer) {
		return
	}

	scheduled, err := schedule.Run(p)
	if err != nil {
		printer.Error(err.Error())
		return
	}
	analysis, err := cpm.Analyze(scheduled)
	if err != nil {
		analysis = nil
	}
	printer.Schedule(scheduled, analysis)
	printer.CriticalPath(analysis)
}
