// Package activation turns external events into refresh calls, standing in
// for the "view became active" signal of a UI framework.
//
// Watcher fires once when it starts and again after the watched database
// file (or its WAL companion) changes and stays quiet for the debounce
// interval.
package activation

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before firing.
const DefaultDebounce = 150 * time.Millisecond

// Func is called on each activation.
type Func func(ctx context.Context)

// Watcher calls an activation Func when a file changes.
type Watcher struct {
	path     string
	fn       Func
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher returns a Watcher for path.
func NewWatcher(path string, fn Func, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		fn:       fn,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run activates once, then watches until ctx is cancelled.
// Returns ctx.Err() on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Watch the directory: SQLite replaces and appends through sibling files.
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.fn(ctx)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("storage changed", "file", ev.Name, "op", ev.Op.String())
			fire = time.After(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			w.fn(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(ev.Name)
	base := filepath.Base(w.path)
	if !strings.HasPrefix(name, base) {
		return false
	}
	// The shared-memory index changes on reads too.
	return !strings.HasSuffix(name, "-shm")
}
