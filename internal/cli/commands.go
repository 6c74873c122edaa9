// pattern: Imperative Shell
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"yukari/internal/browser"
	"yukari/internal/config"
	"yukari/internal/logging"
)

// Options carries the global flags every command needs.
type Options struct {
	ConfigDir string
	StateDir  string
}

// LoadConfig reads the config from opts.ConfigDir or the default location.
func (o Options) LoadConfig() (config.Config, error) {
	if o.ConfigDir != "" {
		return config.LoadFromDir(o.ConfigDir)
	}
	return config.Load()
}

// LogPath returns the configured log file, or the default one inside the
// state directory.
func (o Options) LogPath(cfg config.Config) string {
	if cfg.LogFile != "" {
		return cfg.LogFile
	}
	if o.StateDir != "" {
		return filepath.Join(o.StateDir, "yukari.log")
	}
	return logging.DefaultFilePath()
}

// BuildApp creates and configures the CLI application with all commands and groups.
func BuildApp(version string, opts Options) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:    "split",
		Summary: "Print the offsets of an N-way split",
		Usage:   splitUsage,
		Run: func(args []string) error {
			return runSplitCommand(app.Stdout, app.Stderr, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "ls",
		Summary: "List a directory the way the browser does",
		Usage:   "Usage: yukari ls [dir] [-a/--all] [--json]",
		Run: func(args []string) error {
			return runListCommand(app.Stdout, app.Stderr, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "logs",
		Summary: "Print or follow the log file",
		Usage:   logsUsage,
		Run: func(args []string) error {
			return runLogsCommand(app.Stdout, app.Stderr, opts, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: yukari version",
		Run: func(args []string) error {
			_, err := fmt.Fprintln(app.Stdout, version)
			return err
		},
	})

	RegisterConfigCommands(app, app.AddGroup("config", "Inspect and create the config file"), opts)
	RegisterSessionCommands(app, app.AddGroup("session", "Inspect the saved browsing session"), opts)

	return app
}

// newFlagSet returns a flag set that reports parse errors to stderr instead
// of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

type entryJSON struct {
	Name    string    `json:"name"`
	Dir     bool      `json:"dir"`
	Link    bool      `json:"link,omitempty"`
	Size    int64     `json:"size"`
	Mode    string    `json:"mode"`
	ModTime time.Time `json:"mod_time"`
}

// runListCommand prints a directory listing sorted like the browser's
// columns: directories first, then by name.
func runListCommand(stdout, stderr io.Writer, args []string) error {
	fs := newFlagSet("ls", stderr)
	all := fs.BoolP("all", "a", false, "include hidden entries")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("usage: yukari ls [dir] [-a/--all] [--json]")
	}

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	entries, err := browser.ReadEntries(dir)
	if err != nil {
		return err
	}
	entries = browser.Visible(entries, *all)

	if *asJSON {
		out := make([]entryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryJSON{
				Name:    e.Name,
				Dir:     e.Dir,
				Link:    e.Link,
				Size:    e.Size,
				Mode:    e.Mode.String(),
				ModTime: e.ModTime,
			})
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, e := range entries {
		if _, err := fmt.Fprintln(stdout, e.Display()); err != nil {
			return err
		}
	}
	return nil
}
