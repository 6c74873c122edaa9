package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"yukari/internal/ratio"
	"yukari/internal/splitn"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

const fileName = "config.yaml"

// Themes lists the accepted catppuccin flavor names.
var Themes = []string{"latte", "frappe", "macchiato", "mocha"}

type Config struct {
	Theme    string `yaml:"theme"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`

	// Panes is the number of columns: parent, current, then preview panes.
	Panes  int              `yaml:"panes"`
	Ratios []ratio.Rational `yaml:"ratios,omitempty"`

	BarSize      int  `yaml:"bar_size"`
	MinPaneWidth int  `yaml:"min_pane_width"`
	Draggable    bool `yaml:"draggable"`
	SolidBar     bool `yaml:"solid_bar"`

	ShowHidden      bool `yaml:"show_hidden"`
	PreviewBytes    int  `yaml:"preview_bytes"`
	RememberSession bool `yaml:"remember_session"`
}

func DefaultConfig() Config {
	return Config{
		Theme:           "mocha",
		LogLevel:        "info",
		Panes:           3,
		BarSize:         splitn.DefaultBarSize,
		MinPaneWidth:    10,
		Draggable:       true,
		SolidBar:        true,
		PreviewBytes:    16 * 1024,
		RememberSession: true,
	}
}

// Load reads the config from the default location.
func Load() (Config, error) {
	return LoadFrom(Path(""))
}

// LoadFromDir reads config.yaml inside dir.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, fileName))
}

// LoadFrom reads configPath over the defaults. A missing file is not an
// error. On a decode error the defaults are returned with the error.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", configPath, err)
	}
	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory.
func (c Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// Validate checks the layout settings, including that the ratios produce a
// valid split for the configured pane count.
func (c Config) Validate() error {
	if c.Panes < 2 {
		return fmt.Errorf("%w: panes must be at least 2, got %d", ErrInvalid, c.Panes)
	}
	if c.BarSize < 0 || c.MinPaneWidth < 0 || c.PreviewBytes < 0 {
		return fmt.Errorf("%w: sizes must not be negative", ErrInvalid)
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalid, c.Theme)
	}
	if _, err := splitn.ComputeOffsets(c.Panes, c.Ratios); err != nil {
		return fmt.Errorf("%w: ratios: %w", ErrInvalid, err)
	}
	return nil
}

// Split builds the column split the config describes.
func (c Config) Split() (splitn.Split, error) {
	s, err := splitn.Columns(c.Panes)
	if err != nil {
		return s, err
	}
	s, err = s.WithRatios(c.Ratios)
	if err != nil {
		return s, err
	}
	return s.
		WithBarSize(c.BarSize).
		WithSolid(c.SolidBar).
		WithDraggable(c.Draggable).
		WithMinSizes(repeat(c.MinPaneWidth, c.Panes)...), nil
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Dir returns configDir if set, else $XDG_CONFIG_HOME/yukari or
// ~/.config/yukari.
func Dir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "yukari")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "yukari")
	}
	return filepath.Join(home, ".config", "yukari")
}

// Path returns the config file inside Dir(configDir).
func Path(configDir string) string {
	return filepath.Join(Dir(configDir), fileName)
}
