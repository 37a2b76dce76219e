package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watcher watches a local manifest file and resolves it again on every write.
type Watcher struct {
	resolver *Resolver
	path     string
	onReload func(*Manifest, error)
	fsw      *fsnotify.Watcher
	current  *Manifest
	mu       sync.RWMutex
	reloads  atomic.Uint32
	reloadMu sync.Mutex // held for a whole reload, taken by Close to wait for it
	done     chan struct{}
	once     sync.Once
}

// NewWatcher resolves the manifest at path and starts watching it.
// onReload is called after every reload attempt and never after Close
// returns. It must not call Close.
func NewWatcher(ctx context.Context, resolver *Resolver, path string, onReload func(*Manifest, error)) (*Watcher, error) {
	m, err := resolver.ResolveURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial manifest: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch manifest %s: %w", path, err)
	}

	if onReload == nil {
		onReload = func(*Manifest, error) {}
	}

	w := &Watcher{
		resolver: resolver,
		path:     path,
		onReload: onReload,
		fsw:      fsw,
		current:  m,
		done:     make(chan struct{}),
	}

	go w.watch(ctx)

	return w, nil
}

// watch dispatches file events until the watcher is closed.
func (w *Watcher) watch(ctx context.Context) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Write == fsnotify.Write {
				if timer != nil {
					timer.Stop()
				}

				timer = time.AfterFunc(watchDebounce, func() {
					w.reload(ctx)
				})
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			slog.Error("Watcher error", "path", w.path, "error", err)
		}
	}
}

// reload resolves the manifest again and publishes the result.
func (w *Watcher) reload(ctx context.Context) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	count := w.reloads.Add(1)
	slog.Info("Reloading manifest", "path", w.path, "count", count)

	m, err := w.resolver.ResolveURL(ctx, w.path)
	if err != nil {
		slog.Error("Failed to reload manifest", "path", w.path, "error", err)
		w.onReload(nil, err)
		return
	}

	w.mu.Lock()
	w.current = m
	w.mu.Unlock()

	slog.Info("Manifest reloaded successfully", "path", w.path, "count", count)
	w.onReload(m, nil)
}

// Snapshot returns the last successfully resolved manifest.
func (w *Watcher) Snapshot() *Manifest {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.current
}

// ReloadCount returns the number of reload attempts.
func (w *Watcher) ReloadCount() uint32 {
	return w.reloads.Load()
}

// Close stops watching the manifest and waits for an in-flight reload.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})

	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	return err
}
