// pattern: Imperative Shell

package logging

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// tailPollInterval catches appends on filesystems that drop inotify events.
const tailPollInterval = 2 * time.Second

// ReadAll decodes every entry in the log file at path. Lines that do not
// decode are skipped.
func ReadAll(path string, emit func(LogEntry)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scanEntries(f, emit)
}

func scanEntries(r io.Reader, emit func(LogEntry)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if e, err := ParseLine(line); err == nil {
			emit(e)
		}
	}
	return sc.Err()
}

// Tailer follows a JSON-lines log file across rotation, emitting each new
// entry.
type Tailer struct {
	path    string
	emit    func(LogEntry)
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	file   *os.File
	offset int64
	closed bool
}

// NewTailer prepares to follow path. Nothing is read until Follow.
func NewTailer(path string, emit func(LogEntry)) (*Tailer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Tailer{path: path, emit: emit, watcher: w}, nil
}

// Follow emits entries appended to the file until ctx is done. With
// fromStart the existing content is emitted first; otherwise it is skipped.
// The directory is watched rather than the file so a rotated or not yet
// created log is picked up.
func (t *Tailer) Follow(ctx context.Context, fromStart bool) error {
	if err := t.watcher.Add(filepath.Dir(t.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(t.path), err)
	}

	t.mu.Lock()
	if t.open(!fromStart) == nil {
		t.readNew()
	}
	t.mu.Unlock()

	ticker := time.NewTicker(tailPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = t.Close()
			return ctx.Err()

		case ev, ok := <-t.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(t.path) {
				continue
			}
			t.mu.Lock()
			switch {
			case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
				t.closeFile()
			case ev.Has(fsnotify.Create):
				t.closeFile()
				_ = t.open(false)
				t.readNew()
			case ev.Has(fsnotify.Write):
				if t.file == nil {
					_ = t.open(false)
				}
				t.readNew()
			}
			t.mu.Unlock()

		case <-ticker.C:
			t.mu.Lock()
			if t.file == nil {
				_ = t.open(false)
			}
			t.readNew()
			t.mu.Unlock()

		case _, ok := <-t.watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

func (t *Tailer) open(atEnd bool) error {
	if t.file != nil {
		return nil
	}
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	var off int64
	if atEnd {
		if off, err = f.Seek(0, io.SeekEnd); err != nil {
			_ = f.Close()
			return err
		}
	}
	t.file, t.offset = f, off
	return nil
}

func (t *Tailer) closeFile() {
	if t.file != nil {
		_ = t.file.Close()
		t.file, t.offset = nil, 0
	}
}

// readNew emits complete lines past the saved offset. A trailing partial
// line is left for the next read.
func (t *Tailer) readNew() {
	if t.file == nil {
		return
	}
	if st, err := t.file.Stat(); err == nil && st.Size() < t.offset {
		t.offset = 0 // truncated in place
	}
	if _, err := t.file.Seek(t.offset, io.SeekStart); err != nil {
		return
	}
	data, err := io.ReadAll(t.file)
	if err != nil {
		return
	}
	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		return
	}
	_ = scanEntries(bytes.NewReader(data[:end+1]), t.emit)
	t.offset += int64(end + 1)
}

// Close stops watching and releases the file.
func (t *Tailer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.closeFile()
	return t.watcher.Close()
}
