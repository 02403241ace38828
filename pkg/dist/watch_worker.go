package dist

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
)

// Watch re-parses metadata files as they change under the scanner's
// root, emitting a fresh Report per settled change. The channel closes
// when ctx is cancelled.
func (s *Scanner) Watch(ctx context.Context) (<-chan Report, error) {
	events := make(chan Report, 16)
	w := newWatchWorker(s, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	scanner   *Scanner
	events    chan<- Report
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(scanner *Scanner, events chan<- Report) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("dist-watcher"),
		scanner:    scanner,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.scanner.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// recursiveAdd registers the root and every directory below it.
// fsnotify does not watch recursively by itself.
func (w *watchWorker) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(w.scanner.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// handleEvent filters one filesystem event and, when it concerns a
// metadata file, schedules a debounced re-parse.
func (w *watchWorker) handleEvent(ctx context.Context, event fsnotify.Event) {
	w.scanner.logger.Debug("event received", "name", event.Name, "op", event.Op)

	// Newly created directories must be watched too (e.g. a fresh
	// *.dist-info dir during an install).
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.scanner.logger.Debug("failed to watch new directory", "path", event.Name, "err", err)
			}
			return
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	rel, err := filepath.Rel(w.scanner.root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if !w.scanner.matches(rel) {
		return
	}

	w.debouncer.add(event.Name, func() {
		w.sendReport(ctx, w.scanner.parseFile(rel))
	})
}

// sendReport delivers a report, protecting against channel closure
// during shutdown.
func (w *watchWorker) sendReport(ctx context.Context, report Report) {
	defer func() {
		// Recover from panic if channel was closed (worker stopping)
		_ = recover()
	}()
	select {
	case w.events <- report:
	case <-ctx.Done():
	}
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			// Stack traces only when debug logging is on; they are
			// noise in production logs.
			var stack string
			if w.scanner.logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}
			if stack != "" {
				w.scanner.logger.Error("watcher panic", "error", panicErr, "stack", stack)
			} else {
				w.scanner.logger.Error("watcher panic", "error", panicErr)
			}
		}
	}()
	defer w.scanner.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Let in-flight debounce timers finish before the events channel
	// goes away.
	w.debouncer.stopAndWait(5 * time.Second)
	close(w.events)

	return err
}

// mainEventLoop is the core select loop over filesystem and watcher
// error events.
func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.scanner.logger.Error("fsnotify error", "error", wErr)
		}
	}
}
