// pattern: Imperative Shell

package browser

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"yukari/internal/events"
	"yukari/internal/logging"
)

// DefaultDebounce coalesces bursts of events in one directory.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to the directories on screen. Events in the same
// directory within the debounce window are reported once.
type Watcher struct {
	fs       *fsnotify.Watcher
	log      *logging.ScopedLogger
	debounce time.Duration

	mu   sync.Mutex
	dirs []string
}

// NewWatcher creates an idle watcher.
func NewWatcher(log *logging.ScopedLogger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if log == nil {
		log = logging.NopLogger()
	}
	return &Watcher{fs: fw, log: log, debounce: DefaultDebounce}, nil
}

// Watch replaces the watched set with dirs. Empty names are ignored.
func (w *Watcher) Watch(dirs ...string) error {
	want := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" && !slices.Contains(want, filepath.Clean(d)) {
			want = append(want, filepath.Clean(d))
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, d := range w.dirs {
		if !slices.Contains(want, d) {
			_ = w.fs.Remove(d)
		}
	}
	var errs []error
	kept := want[:0:0]
	for _, d := range want {
		if slices.Contains(w.dirs, d) {
			kept = append(kept, d)
			continue
		}
		if err := w.fs.Add(d); err != nil {
			w.log.Warn("watch failed", "dir", d, "error", err)
			errs = append(errs, err)
			continue
		}
		kept = append(kept, d)
	}
	w.dirs = kept
	w.log.Debug("watching", "dirs", kept)
	if len(errs) > 0 {
		return fmt.Errorf("watch %d dirs: %w", len(errs), errs[0])
	}
	return nil
}

// Dirs returns the directories currently watched.
func (w *Watcher) Dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.dirs)
}

// Run forwards changes to send as events.DirChangedMsg until ctx is done or
// the watcher is closed. Watcher errors are forwarded as
// events.WatchErrorMsg.
func (w *Watcher) Run(ctx context.Context, send func(any)) {
	pending := map[string]bool{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			dir := filepath.Dir(filepath.Clean(ev.Name))
			if !w.watching(dir) {
				// The watched directory itself went away.
				dir = filepath.Clean(ev.Name)
			}
			if len(pending) == 0 {
				timer.Reset(w.debounce)
			}
			pending[dir] = true

		case <-timer.C:
			for _, dir := range slices.Sorted(maps.Keys(pending)) {
				w.log.Debug("dir changed", "dir", dir)
				send(events.DirChangedMsg{Dir: dir})
			}
			clear(pending)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", "error", err)
			send(events.WatchErrorMsg{Err: err})
		}
	}
}

func (w *Watcher) watching(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Contains(w.dirs, dir)
}

// Close stops the underlying watcher; Run returns soon after.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
