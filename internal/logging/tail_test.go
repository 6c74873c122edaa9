// pattern: Imperative Shell

package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		t.Fatalf("WriteString() error = %v", err)
	}
}

func TestReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yukari.log")
	appendLine(t, path, `{"level":"info","logger":"app","msg":"one"}`+"\n")
	appendLine(t, path, "not json\n\n")
	appendLine(t, path, `{"level":"warn","logger":"watch","msg":"two"}`+"\n")

	var got []string
	if err := ReadAll(path, func(e LogEntry) { got = append(got, e.Message) }); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("ReadAll() messages = %v, want [one two]", got)
	}

	if err := ReadAll(filepath.Join(t.TempDir(), "missing.log"), func(LogEntry) {}); err == nil {
		t.Error("ReadAll() on a missing file should fail")
	}
}

func TestTailer_Follow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yukari.log")
	appendLine(t, path, `{"msg":"old"}`+"\n")

	entries := make(chan LogEntry, 10)
	tailer, err := NewTailer(path, func(e LogEntry) { entries <- e })
	if err != nil {
		t.Fatalf("NewTailer() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- tailer.Follow(ctx, false) }()

	// Give the watcher time to register before appending.
	time.Sleep(200 * time.Millisecond)
	appendLine(t, path, `{"msg":"partial`)
	appendLine(t, path, `"}`+"\n")

	select {
	case e := <-entries:
		if e.Message != "partial" {
			t.Errorf("first followed entry = %q, want partial (old content should be skipped)", e.Message)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for appended entry")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Follow() did not return after cancel")
	}
}

func TestTailer_FollowFromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yukari.log")
	appendLine(t, path, `{"msg":"existing"}`+"\n")

	entries := make(chan LogEntry, 10)
	tailer, err := NewTailer(path, func(e LogEntry) { entries <- e })
	if err != nil {
		t.Fatalf("NewTailer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = tailer.Follow(ctx, true) }()

	select {
	case e := <-entries:
		if e.Message != "existing" {
			t.Errorf("entry = %q, want existing", e.Message)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for existing entry")
	}
}
