// Package watch runs scheduled scans of an inbox folder and feeds newly
// arrived invoice files through a processing callback, one at a time.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// documentTimeout bounds one document's pipeline, pdftotext included.
const documentTimeout = 5 * time.Minute

// ProcessFunc handles one newly arrived document.
type ProcessFunc func(ctx context.Context, path string) error

// Watcher schedules inbox scans using robfig/cron. Files present when
// the watcher starts are treated as already handled; only later
// arrivals are processed. A file is attempted once, even on failure, so
// a malformed document cannot wedge the schedule.
type Watcher struct {
	dir      string
	schedule string
	process  ProcessFunc
	cron     *cron.Cron
	logger   *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewWatcher creates a watcher for dir with a standard 5-field cron
// schedule (descriptors like @every 5m also work).
func NewWatcher(dir, schedule string, process ProcessFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Watcher{
		dir:      dir,
		schedule: schedule,
		process:  process,
		cron:     c,
		logger:   logger,
		seen:     make(map[string]struct{}),
	}
}

// Start primes the seen set with the folder's current contents and
// begins scheduled scans.
func (w *Watcher) Start() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading watch dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			w.seen[entry.Name()] = struct{}{}
		}
	}

	if _, err := w.cron.AddFunc(w.schedule, func() { w.scan() }); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", w.schedule, err)
	}
	w.cron.Start()

	w.logger.Info("inbox watcher started",
		slog.String("dir", w.dir),
		slog.String("schedule", w.schedule),
		slog.Int("preexisting_files", len(w.seen)))
	return nil
}

// Stop gracefully stops the schedule; the returned context is done when
// any in-flight scan has finished.
func (w *Watcher) Stop() context.Context {
	w.logger.Info("inbox watcher stopping")
	return w.cron.Stop()
}

// RunNow performs one scan immediately and reports how many documents
// were attempted.
func (w *Watcher) RunNow() int {
	return w.scan()
}

func (w *Watcher) scan() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("inbox scan failed", slog.String("dir", w.dir), slog.Any("error", err))
		return 0
	}

	attempted := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isInvoiceFile(name) {
			continue
		}
		if _, ok := w.seen[name]; ok {
			continue
		}
		w.seen[name] = struct{}{}

		path := filepath.Join(w.dir, name)
		w.logger.Info("new invoice file", slog.String("path", path))

		ctx, cancel := context.WithTimeout(context.Background(), documentTimeout)
		if err := w.process(ctx, path); err != nil {
			w.logger.Error("invoice processing failed",
				slog.String("path", path),
				slog.Any("error", err))
		}
		cancel()
		attempted++
	}

	if attempted > 0 {
		w.logger.Info("inbox scan completed", slog.Int("documents", attempted))
	} else {
		w.logger.Debug("inbox scan completed, nothing new")
	}
	return attempted
}

func isInvoiceFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt":
		return true
	default:
		return false
	}
}
