// pattern: Imperative Shell
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"yukari/internal/browser"
	"yukari/internal/cli"
	"yukari/internal/config"
	"yukari/internal/logging"
	"yukari/internal/ratio"
	"yukari/internal/session"
	"yukari/internal/tui"
)

var version = "dev"

// tuiFlags are the command line overrides for the browser.
type tuiFlags struct {
	dir    string
	panes  int
	ratios []string
	hidden bool
}

func main() {
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that --help after a subcommand is handled by the subcommand.
	flag.CommandLine.SetInterspersed(false)

	var opts cli.Options
	var flags tuiFlags
	flag.StringVarP(&opts.ConfigDir, "config-dir", "c", "", "config directory (default: ~/.config/yukari)")
	flag.StringVar(&opts.StateDir, "state-dir", "", "state directory for the session and log (default: ~/.local/state/yukari)")
	flag.StringVarP(&flags.dir, "dir", "d", "", "directory to open (default: last session or the working directory)")
	flag.IntVarP(&flags.panes, "panes", "n", 0, "number of panes, at least 2")
	flag.StringArrayVar(&flags.ratios, "ratio", nil, "span of a leading pane, e.g. 1/4 (repeatable)")
	flag.BoolVar(&flags.hidden, "hidden", false, "show hidden files")

	// Override flag.Usage before Parse so --help uses the CLI app's help
	flag.Usage = func() {
		app := cli.BuildApp(version, opts)
		app.PrintHelp(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	app := cli.BuildApp(version, opts)
	if app.Execute(flag.Args()) {
		runTUI(opts, flags)
	}
}

// apply writes the flag overrides into cfg. Changing the pane count drops
// the configured ratios unless new ones are given.
func (f tuiFlags) apply(cfg *config.Config) error {
	if f.panes > 0 {
		cfg.Panes = f.panes
		cfg.Ratios = nil
	}
	if len(f.ratios) > 0 {
		ratios := make([]ratio.Rational, len(f.ratios))
		for i, s := range f.ratios {
			r, err := ratio.Parse(s)
			if err != nil {
				return fmt.Errorf("--ratio %q: %w", s, err)
			}
			ratios[i] = r
		}
		cfg.Ratios = ratios
	}
	if f.hidden {
		cfg.ShowHidden = true
	}
	return nil
}

// restore applies a saved session to cfg and returns its directory. Saved
// ratios are used only for the same pane count, when none were given on
// the command line and they still form a valid split.
func restore(cfg *config.Config, st session.State, f tuiFlags) string {
	if len(f.ratios) == 0 && st.Panes == cfg.Panes && len(st.Ratios) > 0 {
		prev := cfg.Ratios
		cfg.Ratios = st.Ratios
		if cfg.Validate() != nil {
			cfg.Ratios = prev
		}
	}
	cfg.ShowHidden = cfg.ShowHidden || st.ShowHidden
	return st.Dir
}

// openState starts the browser in dir, or in the working directory when dir
// is empty or no longer a directory.
func openState(dir string, log *logging.ScopedLogger) browser.State {
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			if st, err := os.Stat(abs); err == nil && st.IsDir() {
				return browser.At(abs, log)
			}
		}
		log.Warn("start dir unavailable, using working directory", "dir", dir)
	}
	return browser.Cwd(log)
}

// runTUI launches the interactive file browser.
func runTUI(opts cli.Options, flags tuiFlags) {
	cfg, err := opts.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if err := flags.apply(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stateDir := session.Dir(opts.StateDir)

	logManager, err := logging.NewManager(logging.Config{
		FilePath:       opts.LogPath(cfg),
		MaxSizeMB:      10,
		MaxBackups:     3,
		MaxAgeDays:     7,
		ChannelBufSize: 1000,
		Level:          cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting", "version", version)

	// A second instance browses read-only: the first one owns the session.
	ownsSession := true
	fl, err := session.Lock(stateDir)
	switch {
	case errors.Is(err, session.ErrRunning):
		ownsSession = false
		appLogger.Warn("another instance is running, session will not be saved")
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	default:
		defer session.Cleanup(stateDir, fl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := session.NewStore(stateDir)
	dir := flags.dir
	if cfg.RememberSession {
		st, ok, err := store.Load(ctx)
		switch {
		case err != nil:
			appLogger.Warn("failed to load session", "path", store.Path(), "error", err)
		case ok:
			if saved := restore(&cfg, st, flags); dir == "" {
				dir = saved
			}
			appLogger.Debug("session restored", "dir", st.Dir, "saved_at", st.SavedAt)
		}
	}

	split, err := cfg.Split()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(&cfg, split, openState(dir, logManager.For("browser")), logManager)

	watcher, err := browser.NewWatcher(logManager.For("watch"))
	if err != nil {
		appLogger.Warn("live refresh disabled", "error", err)
	} else {
		defer func() { _ = watcher.Close() }()
		model.SetWatcher(watcher)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if watcher != nil {
		go watcher.Run(ctx, func(msg any) { p.Send(msg) })
	}

	final, err := p.Run()
	if err != nil {
		appLogger.Error("application exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	if ownsSession && cfg.RememberSession {
		if m, ok := final.(tui.Model); ok {
			if err := store.Save(ctx, m.Session()); err != nil {
				appLogger.Error("failed to save session", "error", err)
			}
		}
	}

	appLogger.Info("application stopped")
}
