package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/invoice-ledger/internal/watch"
)

var (
	watchDir      string
	watchSchedule string
	watchOutDir   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch an inbox folder and process new invoices on a schedule",
	Long: `watch scans an inbox folder on a cron schedule and runs the process
pipeline over every newly arrived .pdf or .txt file, one document at a
time. Files already present when the watcher starts are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initDependencies(cmd.Context())
		if err != nil {
			return err
		}
		defer deps.Cleanup()

		return runWatch(cmd.Context(), deps)
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "./inbox", "folder to watch for invoice files")
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "",
		"cron schedule for inbox scans (default: WATCH_SCHEDULE from the environment)")
	watchCmd.Flags().StringVar(&watchOutDir, "output-dir", "",
		"write one item CSV per processed invoice into this folder")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, deps *dependencies) error {
	schedule := watchSchedule
	if schedule == "" {
		schedule = deps.Config.Watch.Schedule
	}

	process := func(ctx context.Context, path string) error {
		return processDocument(ctx, deps, path, watchOutput(path))
	}

	w := watch.NewWatcher(watchDir, schedule, process, deps.Logger)
	if err := w.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	deps.Logger.Info("signal received, shutting down")
	<-w.Stop().Done()
	return nil
}

// watchOutput derives the per-invoice item file path, or "" when no
// output folder was requested.
func watchOutput(docPath string) string {
	if watchOutDir == "" {
		return ""
	}
	base := filepath.Base(docPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
	return filepath.Join(watchOutDir, name)
}
