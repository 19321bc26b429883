package territory

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the boundary store when its source file changes. Events
// are debounced so that editors and atomic-rename writers trigger a single
// reload. A failed reload keeps the previous boundary set.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the store's boundary file. The watch is
// placed on the containing directory because most writers replace the file
// rather than writing it in place.
func NewWatcher(store *Store, debounce time.Duration) (*Watcher, error) {
	if store == nil {
		return nil, fmt.Errorf("territory: watcher requires a boundary store")
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		store:    store,
		watcher:  fsw,
		debounce: debounce,
		logger:   slog.Default().With("component", "territory.watcher"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It returns immediately; reloads happen on a
// background goroutine until Stop is called or ctx is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("territory: watcher already running")
	}

	dir := filepath.Dir(w.store.Path())
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.running = true
	go w.loop(ctx)

	w.logger.Info("boundary file watcher started",
		"path", w.store.Path(),
		"debounce", w.debounce,
	)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	target := filepath.Clean(w.store.Path())
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerCh = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("boundary watch error", "error", err)
		case <-timerCh:
			timerCh = nil
			if err := w.store.Reload(); err != nil {
				w.logger.Error("boundary reload failed, keeping previous set",
					"path", w.store.Path(),
					"error", err,
				)
				continue
			}
			w.logger.Info("boundary set reloaded",
				"path", w.store.Path(),
				"feature_count", w.store.Len(),
			)
		}
	}
}
