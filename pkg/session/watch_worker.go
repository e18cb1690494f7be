package session

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of events an atomic rename produces.
const debounceWindow = 50 * time.Millisecond

// watchWorker is the cross-process signal channel: it watches the state
// directory and triggers a store refresh whenever the session record is
// rewritten or removed by another process. The store's own writes also
// pass through here, which is fine — refresh is idempotent.
type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("session-watcher"),
		store:      store,
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

	// Watch the directory, not the file: the record is replaced by rename
	// and may not exist yet.
	if err := watcher.Add(filepath.Dir(w.store.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch state directory: %w", err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(debounceWindow, w.store.refresh)
	w.store.setWatcherActive(true)

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

// relevant filters directory noise down to changes of the session record
// itself. Temp files from atomic writes are ignored; the rename onto the
// record surfaces as a Create of the record's own name.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(w.store.path) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			w.store.logger.Error("session watcher panic",
				"error", panicErr,
				"stack", string(debug.Stack()),
			)
		}
	}()
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()
	defer w.debouncer.stop()

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
			if w.relevant(event) {
				w.store.logger.Debug("session record changed externally", "op", event.Op.String())
				w.debouncer.trigger()
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.store.logger.Error("fsnotify error", "error", wErr)
		}
	}
}
