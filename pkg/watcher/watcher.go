// Package watcher monitors the open outline file for external changes,
// so edits made by other tools show up without restarting the editor.
// Changes are debounced before notification; the editor's own atomic
// save-rename shows up as a single event.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is the stat interval when polling mode is active.
const DefaultPollInterval = 2 * time.Second

var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounceDuration sets how long a burst of events is coalesced
// before a single notification fires.
func WithDebounceDuration(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the stat interval for polling mode.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.pollEvery = d }
}

// WithOnChange sets the callback invoked when the file changes.
func WithOnChange(fn func()) WatcherOption {
	return func(w *Watcher) { w.onChange = fn }
}

// WithOnError sets the callback invoked on watch errors.
func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

// WithForcePoll skips fsnotify entirely and polls. Useful on filesystems
// where inotify events are unreliable; LW_FORCE_POLL=1 does the same.
func WithForcePoll(force bool) WatcherOption {
	return func(w *Watcher) { w.forcePoll = force }
}

// Watcher reports external modifications to one file. It prefers an
// fsnotify watch on the file's parent directory, because editors and the
// editor's own save path replace the file by rename and a watch on the
// file inode itself would die on the first save. When fsnotify cannot be
// set up it degrades to stat polling.
type Watcher struct {
	path      string
	debounce  time.Duration
	pollEvery time.Duration
	onChange  func()
	onError   func(error)
	forcePoll bool

	fsw       *fsnotify.Watcher
	coalescer *Debouncer
	polling   bool
	mtime     time.Time
	size      int64

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	mu      sync.RWMutex
	changes chan struct{}
}

// NewWatcher prepares a watcher for path. Nothing runs until Start.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:      abs,
		debounce:  DefaultDebounceDuration,
		pollEvery: DefaultPollInterval,
		onChange:  func() {},
		onError:   func(error) {},
		changes:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.coalescer = NewDebouncer(w.debounce)
	return w, nil
}

// Start records the file's current state and launches the watch goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())

	if info, err := os.Stat(w.path); err == nil {
		w.mtime = info.ModTime()
		w.size = info.Size()
	} else if os.IsPermission(err) {
		return ErrPermission
	}
	// A missing file is fine: the first save creates it and the directory
	// watch picks that up.

	w.polling = w.forcePoll || envBool("LW_FORCE_POLL")
	if !w.polling {
		w.polling = !w.setupFsnotify()
	}
	if w.polling {
		go w.pollLoop()
	}

	w.started = true
	return nil
}

// setupFsnotify attaches a directory watch and starts the event loop.
// Returns false when fsnotify is unavailable, leaving polling to cover.
func (w *Watcher) setupFsnotify() bool {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return false
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return false
	}
	w.fsw = fsw
	go w.eventLoop(fsw.Events, fsw.Errors)
	return true
}

// Stop tears the watch down. The changes channel stays open: closing it
// here would race with a notification in flight, and Stop only runs at
// session end anyway.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
	w.coalescer.Cancel()
	w.started = false
}

// IsPolling reports whether the watcher fell back to stat polling.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling
}

// IsStarted reports whether Start has run and Stop has not.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed returns the notification channel. One buffered slot: a burst of
// changes while the consumer is busy collapses into one pending signal.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changes
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string {
	return w.path
}

// PollInterval returns the configured stat interval.
func (w *Watcher) PollInterval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pollEvery
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

func (w *Watcher) eventLoop(events <-chan fsnotify.Event, errs <-chan error) {
	name := filepath.Base(w.path)
	for {
		select {
		case <-w.ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				// Directory watch sees sibling files too.
				continue
			}
			if ev.Op&fsnotify.Remove != 0 {
				w.onError(ErrFileRemoved)
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.coalescer.Trigger(w.notify)
			}

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) pollLoop() {
	tick := time.NewTicker(w.pollEvery)
	defer tick.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-tick.C:
			w.pollOnce()
		}
	}
}

// pollOnce compares the current stat against the last seen one. Removal
// is only reported when the file had existed, so a document that has not
// been saved yet does not spam errors every tick.
func (w *Watcher) pollOnce() {
	info, err := os.Stat(w.path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			w.mu.RLock()
			existed := !w.mtime.IsZero()
			w.mu.RUnlock()
			if existed {
				w.onError(ErrFileRemoved)
			}
		case os.IsPermission(err):
			w.onError(ErrPermission)
		default:
			w.onError(err)
		}
		return
	}

	w.mu.Lock()
	changed := info.ModTime().After(w.mtime) || info.Size() != w.size
	if changed {
		w.mtime = info.ModTime()
		w.size = info.Size()
	}
	w.mu.Unlock()

	if changed {
		w.coalescer.Trigger(w.notify)
	}
}

// notify runs the callback and posts on the channel without blocking.
// A stopped watcher stays silent; the check is best effort and the
// callbacks are idempotent, so the small remaining race is harmless.
func (w *Watcher) notify() {
	if !w.IsStarted() {
		return
	}
	w.onChange()
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
