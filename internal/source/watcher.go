package source

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/metrics"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Store when files below its root change.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onReload func(*Source)
	recorder metrics.Recorder

	mu       sync.Mutex
	stopOnce sync.Once
	stopChan chan struct{}
	reloadCh chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithReloadHook registers fn to run after each successful reload.
func WithReloadHook(fn func(*Source)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// WithRecorder reports reload outcomes to r.
func WithRecorder(r metrics.Recorder) WatcherOption {
	return func(w *Watcher) { w.recorder = r }
}

// NewWatcher creates a watcher for the store's content root.
func NewWatcher(store *Store, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	w := &Watcher{
		store:    store,
		watcher:  fw,
		debounce: DefaultDebounce,
		recorder: metrics.NoopRecorder{},
		stopChan: make(chan struct{}),
		reloadCh: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.recorder = metrics.OrNoop(w.recorder)
	return w, nil
}

// Start registers every directory below the root and begins watching.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	root := w.store.root
	if err := w.addTree(root); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch content directory").
			WithContext("path", root).
			Build()
	}
	slog.Info("Watching content", logfields.Path(root))

	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
	})
	return err
}

// fsnotify does not recurse, so each directory is added individually.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				// New directories need their own watch.
				_ = w.addTree(event.Name)
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				slog.Debug("Content change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopChan:
			stop()
			return
		case <-w.reloadCh:
			stop()
			timer = time.AfterFunc(w.debounce, w.reload)
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reloadCh <- struct{}{}:
	default:
	}
}

func (w *Watcher) reload() {
	src, err := w.store.Reload()
	w.recorder.IncContentReload(err == nil)
	if err != nil {
		slog.Error("Failed to reload content", logfields.Error(err))
		return
	}
	slog.Info("Content reloaded", logfields.Pages(src.Len()))
	if w.onReload != nil {
		w.onReload(src)
	}
}
