package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"yukari/internal/browser"
	"yukari/internal/config"
	"yukari/internal/logging"
)

// mkTree creates paths under a temp dir. Paths ending in "/" are
// directories, the rest empty files.
func mkTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, p)
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(filepath.Base(p)+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// newTestModel opens dir with the default config on a 62x20 window, which
// gives three 20-cell panes with one-cell bars at x=20 and x=41.
func newTestModel(t *testing.T, dir string, mutate ...func(*config.Config)) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, fn := range mutate {
		fn(&cfg)
	}
	split, err := cfg.Split()
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	m := NewModel(&cfg, split, browser.At(dir, nil), nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 62, Height: 20})
	return updated.(Model)
}

func selectedName(m Model) string {
	e, ok := m.selectedEntry()
	if !ok {
		return ""
	}
	return e.Name
}

func TestNewModel(t *testing.T) {
	root := mkTree(t, "proj/src/", "proj/README")
	m := newTestModel(t, filepath.Join(root, "proj"))

	if m.Dir() != filepath.Join(root, "proj") {
		t.Errorf("Dir() = %q", m.Dir())
	}
	if got := selectedName(m); got != "src" {
		t.Errorf("selected = %q, want src", got)
	}
	if m.dragging != -1 {
		t.Errorf("dragging = %d, want -1", m.dragging)
	}
	if len(m.ancestors) != 1 || m.ancestors[0].dir != root || m.ancestors[0].trail != "proj" {
		t.Errorf("ancestors = %+v", m.ancestors)
	}
}

func TestNewModel_FourPanes(t *testing.T) {
	root := mkTree(t, "a/b/c/")
	m := newTestModel(t, filepath.Join(root, "a", "b"), func(c *config.Config) { c.Panes = 4 })

	if len(m.ancestors) != 2 {
		t.Fatalf("ancestors = %d, want 2", len(m.ancestors))
	}
	if m.ancestors[0].dir != root || m.ancestors[0].trail != "a" {
		t.Errorf("farthest ancestor = %+v", m.ancestors[0])
	}
	if m.ancestors[1].trail != "b" {
		t.Errorf("nearest ancestor trail = %q, want b", m.ancestors[1].trail)
	}
	if m.currentPane() != 2 || m.previewPane() != 3 {
		t.Errorf("panes: current %d preview %d", m.currentPane(), m.previewPane())
	}
}

func TestNewModel_TwoPanesHasNoAncestors(t *testing.T) {
	m := newTestModel(t, mkTree(t, "x"), func(c *config.Config) { c.Panes = 2 })
	if m.ancestors != nil {
		t.Errorf("ancestors = %+v, want nil", m.ancestors)
	}
	if m.currentPane() != 0 {
		t.Errorf("currentPane() = %d, want 0", m.currentPane())
	}
}

func TestNewModel_ConfigShowsHidden(t *testing.T) {
	m := newTestModel(t, mkTree(t, ".env", "main.go"), func(c *config.Config) { c.ShowHidden = true })
	if got := len(m.rows()); got != 2 {
		t.Errorf("rows = %d, want 2", got)
	}
	if !m.Session().ShowHidden {
		t.Error("Session().ShowHidden = false, want true")
	}
}

func TestNewModel_LogsOpening(t *testing.T) {
	lm := logging.NewTestLogManager(10)
	defer func() { _ = lm.Close() }()

	cfg := config.DefaultConfig()
	split, _ := cfg.Split()
	dir := t.TempDir()
	NewModel(&cfg, split, browser.At(dir, nil), lm)

	logged := lm.Logged()
	if len(logged) != 1 || logged[0].Message != "browser opened" || logged[0].Scope != "tui" {
		t.Errorf("logged = %+v", logged)
	}
}

func TestSession(t *testing.T) {
	root := mkTree(t, "a/")
	m := newTestModel(t, root)

	st := m.Session()
	if st.Dir != root || st.Panes != 3 || st.Ratios != nil || st.ShowHidden {
		t.Errorf("Session() = %+v", st)
	}
}

func TestInit(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	if m.Init() == nil {
		t.Error("Init() should return a command")
	}
}
