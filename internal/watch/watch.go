// Package watch rebuilds the site when files under the content directory
// change. Events are debounced and at most one rebuild runs at a time, with
// one more queued behind it.
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

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-cheatsheets/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc rebuilds the site. Errors are logged and do not stop watching.
type RebuildFunc func(ctx context.Context) error

// Watcher watches a directory tree and runs a RebuildFunc on change.
type Watcher struct {
	root     string
	rebuild  RebuildFunc
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher over root and every directory below it.
func New(root string, rebuild RebuildFunc, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		root:     root,
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w.fsw = fsw
	if err := w.addDirsRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is canceled or the watcher is closed.
// It returns only after an in-flight rebuild has finished.
func (w *Watcher) Run(ctx context.Context) error {
	deb := NewDebouncer(w.debounce)
	defer deb.Stop()

	workerCtx, stopWorker := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunWorker(workerCtx, deb.C(), w.runRebuild)
	}()
	defer func() {
		stopWorker()
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev, deb)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) runRebuild(ctx context.Context) {
	w.logger.Info("change detected; rebuilding", logfields.Path(w.root))
	if err := w.rebuild(ctx); err != nil {
		w.logger.Warn("rebuild failed", logfields.Error(err))
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event, deb *Debouncer) {
	if ShouldIgnore(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(ev.Name)
		}
	}
	w.logger.Debug("file change detected",
		logfields.Path(ev.Name),
		logfields.Event(ev.Op.String()),
	)
	deb.Trigger()
}

func (w *Watcher) addDirsRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ShouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// ShouldIgnore reports whether a change to path should not trigger a rebuild:
// hidden files, editor swap and backup files, and OS metadata files.
func ShouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

// Debouncer coalesces bursts of triggers into one signal on C, sent once
// the delay has passed without another trigger.
type Debouncer struct {
	delay time.Duration
	out   chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, out: make(chan struct{}, 1)}
}

// C returns the signal channel. It buffers at most one signal.
func (d *Debouncer) C() <-chan struct{} {
	return d.out
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.out <- struct{}{}:
		default:
		}
	})
}

// Stop cancels a pending signal.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// RunWorker calls fn for each signal on reqs until ctx is done or reqs is
// closed. Calls never overlap. Signals that arrive while fn runs schedule
// exactly one more call after it returns.
func RunWorker(ctx context.Context, reqs <-chan struct{}, fn func(context.Context)) {
	running, pending := false, false
	finished := make(chan struct{}, 1)

	start := func() {
		running = true
		go func() {
			fn(ctx)
			finished <- struct{}{}
		}()
	}
	wait := func() {
		if running {
			<-finished
		}
	}

	for {
		select {
		case <-ctx.Done():
			wait()
			return
		case _, ok := <-reqs:
			if !ok {
				wait()
				return
			}
			if running {
				pending = true
				continue
			}
			start()
		case <-finished:
			running = false
			if pending && ctx.Err() == nil {
				pending = false
				start()
			}
		}
	}
}
