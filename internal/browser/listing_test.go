package browser

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// mkTree creates files (plain names) and directories (names ending in "/")
// under a fresh temp dir.
func mkTree(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, n := range names {
		p := filepath.Join(root, n)
		if n[len(n)-1] == '/' {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestReadEntries_DirsFirstThenName(t *testing.T) {
	root := mkTree(t, "b.txt", "A.txt", "zdir/", "adir/", ".hidden", "c.txt")

	entries, err := ReadEntries(root)
	if err != nil {
		t.Fatalf("ReadEntries() error = %v", err)
	}
	want := []string{"adir", "zdir", ".hidden", "A.txt", "b.txt", "c.txt"}
	if got := names(entries); !slices.Equal(got, want) {
		t.Errorf("ReadEntries() = %v, want %v", got, want)
	}
	if !entries[0].Dir || entries[3].Dir {
		t.Errorf("Dir flags wrong: %+v", entries)
	}
	if entries[3].Size != 1 {
		t.Errorf("Size = %d, want 1", entries[3].Size)
	}
}

func TestReadEntries_SymlinkToDir(t *testing.T) {
	root := mkTree(t, "real/")
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	entries, err := ReadEntries(root)
	if err != nil {
		t.Fatalf("ReadEntries() error = %v", err)
	}
	for _, e := range entries {
		if e.Name == "link" && (!e.Link || !e.Dir) {
			t.Errorf("link entry = %+v, want Link and Dir", e)
		}
	}
}

func TestDirContents(t *testing.T) {
	root := mkTree(t, "f", "d/")
	if got := DirContents(root); !slices.Equal(got, []string{"d", "f"}) {
		t.Errorf("DirContents() = %v", got)
	}

	got := DirContents(filepath.Join(root, "missing"))
	if got == nil || len(got) != 0 {
		t.Errorf("DirContents(missing) = %#v, want empty non-nil", got)
	}
}

func TestVisible(t *testing.T) {
	entries := []Entry{{Name: ".git", Dir: true}, {Name: "main.go"}, {Name: ".env"}}
	if got := names(Visible(entries, false)); !slices.Equal(got, []string{"main.go"}) {
		t.Errorf("Visible(false) = %v", got)
	}
	if got := Visible(entries, true); len(got) != 3 {
		t.Errorf("Visible(true) = %v", got)
	}
}

func TestEntry_Display(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{Entry{Name: "src", Dir: true}, "src/"},
		{Entry{Name: "current", Link: true}, "current@"},
		{Entry{Name: "lib", Dir: true, Link: true}, "lib/"},
		{Entry{Name: "go.mod"}, "go.mod"},
	}
	for _, tt := range tests {
		if got := tt.entry.Display(); got != tt.want {
			t.Errorf("Display() = %q, want %q", got, tt.want)
		}
	}
}
