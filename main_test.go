package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"yukari/internal/config"
	"yukari/internal/logging"
	"yukari/internal/ratio"
	"yukari/internal/session"
)

func TestLogManagerInitialization(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	lm, err := logging.NewManager(logging.Config{
		FilePath:       logPath,
		MaxSizeMB:      1,
		MaxBackups:     1,
		MaxAgeDays:     1,
		ChannelBufSize: 10,
		Level:          "debug",
	})
	if err != nil {
		t.Fatalf("failed to create LogManager: %v", err)
	}
	defer lm.Close()

	logger := lm.For("app")
	logger.Info("test message")

	lm.Sync()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("log file was not created")
	}

	select {
	case entry := <-lm.Entries():
		if entry.Scope != "app" {
			t.Errorf("expected scope 'app', got %q", entry.Scope)
		}
		if entry.Message != "test message" {
			t.Errorf("expected message 'test message', got %q", entry.Message)
		}
	default:
		t.Error("no log entry received on channel")
	}
}

func TestFlagsApply(t *testing.T) {
	tests := []struct {
		name       string
		flags      tuiFlags
		wantPanes  int
		wantRatios []ratio.Rational
		wantHidden bool
	}{
		{"no flags keep config", tuiFlags{}, 3, []ratio.Rational{ratio.New(1, 2)}, false},
		{"panes drop ratios", tuiFlags{panes: 4}, 4, nil, false},
		{"panes with ratios", tuiFlags{panes: 4, ratios: []string{"1/4", "0.5"}}, 4, []ratio.Rational{ratio.New(1, 4), ratio.New(1, 2)}, false},
		{"hidden", tuiFlags{hidden: true}, 3, []ratio.Rational{ratio.New(1, 2)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Ratios = []ratio.Rational{ratio.New(1, 2)}
			if err := tt.flags.apply(&cfg); err != nil {
				t.Fatalf("apply() error = %v", err)
			}
			if cfg.Panes != tt.wantPanes {
				t.Errorf("Panes = %d, want %d", cfg.Panes, tt.wantPanes)
			}
			if !slices.Equal(cfg.Ratios, tt.wantRatios) {
				t.Errorf("Ratios = %v, want %v", cfg.Ratios, tt.wantRatios)
			}
			if cfg.ShowHidden != tt.wantHidden {
				t.Errorf("ShowHidden = %v, want %v", cfg.ShowHidden, tt.wantHidden)
			}
		})
	}
}

func TestFlagsApply_BadRatio(t *testing.T) {
	cfg := config.DefaultConfig()
	err := tuiFlags{ratios: []string{"one/third"}}.apply(&cfg)
	if !errors.Is(err, ratio.ErrFormat) {
		t.Errorf("apply() error = %v, want ErrFormat", err)
	}
}

func TestRestore(t *testing.T) {
	saved := session.State{
		Dir:        "/srv/data",
		Panes:      3,
		Ratios:     []ratio.Rational{ratio.New(1, 5)},
		ShowHidden: true,
	}

	t.Run("same panes", func(t *testing.T) {
		cfg := config.DefaultConfig()
		if dir := restore(&cfg, saved, tuiFlags{}); dir != "/srv/data" {
			t.Errorf("restore() dir = %q", dir)
		}
		if !slices.Equal(cfg.Ratios, saved.Ratios) || !cfg.ShowHidden {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("different panes", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Panes = 4
		restore(&cfg, saved, tuiFlags{})
		if cfg.Ratios != nil {
			t.Errorf("Ratios = %v, want none", cfg.Ratios)
		}
	})

	t.Run("flag ratios win", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Ratios = []ratio.Rational{ratio.New(1, 3)}
		restore(&cfg, saved, tuiFlags{ratios: []string{"1/3"}})
		if !slices.Equal(cfg.Ratios, []ratio.Rational{ratio.New(1, 3)}) {
			t.Errorf("Ratios = %v", cfg.Ratios)
		}
	})

	t.Run("invalid saved ratios", func(t *testing.T) {
		cfg := config.DefaultConfig()
		bad := saved
		bad.Ratios = []ratio.Rational{ratio.New(3, 2)}
		restore(&cfg, bad, tuiFlags{})
		if cfg.Ratios != nil {
			t.Errorf("Ratios = %v, want none", cfg.Ratios)
		}
	})
}

func TestOpenState(t *testing.T) {
	dir := t.TempDir()
	if got := openState(dir, logging.NopLogger()).Current; got != dir {
		t.Errorf("openState(dir).Current = %q, want %q", got, dir)
	}

	t.Chdir(dir)
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	for _, start := range []string{"", file, filepath.Join(dir, "missing")} {
		got, _ := filepath.EvalSymlinks(openState(start, logging.NopLogger()).Current)
		if got != want {
			t.Errorf("openState(%q).Current = %q, want %q", start, got, want)
		}
	}
}
