// pattern: Imperative Shell
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"yukari/internal/logging"
)

const logsUsage = "Usage: yukari logs [-f/--follow] [-n/--lines N] [-l/--level LEVEL] [-s/--scope SCOPE] [--file PATH]"

var errLogsUsage = errors.New("usage: yukari logs [-f/--follow] [-n/--lines N] [-l/--level LEVEL] [-s/--scope SCOPE] [--file PATH]")

// LogFilter selects which entries the logs command prints.
type LogFilter struct {
	Level string
	Scope string
}

// Match reports whether e passes the filter.
func (f LogFilter) Match(e logging.LogEntry) bool {
	return e.AtLeast(f.Level) && e.MatchesScope(f.Scope)
}

func runLogsCommand(stdout, stderr io.Writer, opts Options, args []string) error {
	fs := newFlagSet("logs", stderr)
	follow := fs.BoolP("follow", "f", false, "keep printing new entries")
	lines := fs.IntP("lines", "n", 50, "print the last N entries (0 for all)")
	level := fs.StringP("level", "l", "debug", "minimum level")
	scope := fs.StringP("scope", "s", "", "only scopes with this prefix")
	file := fs.String("file", "", "log file (default: from config)")
	if err := fs.Parse(args); err != nil || fs.NArg() > 0 || *lines < 0 {
		return errLogsUsage
	}

	path := *file
	if path == "" {
		cfg, err := opts.LoadConfig()
		if err != nil {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		}
		path = opts.LogPath(cfg)
	}
	filter := LogFilter{Level: logging.ParseLevel(*level), Scope: *scope}

	if err := printLastEntries(stdout, path, filter, *lines); err != nil {
		if !*follow || !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if !*follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return FollowLogs(ctx, stdout, path, filter)
}

// printLastEntries prints the last n entries of path that pass filter.
// n == 0 prints all of them.
func printLastEntries(w io.Writer, path string, filter LogFilter, n int) error {
	var kept []logging.LogEntry
	err := logging.ReadAll(path, func(e logging.LogEntry) {
		if !filter.Match(e) {
			return
		}
		kept = append(kept, e)
		if n > 0 && len(kept) > n {
			kept = kept[1:]
		}
	})
	if err != nil {
		return err
	}
	for _, e := range kept {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}

// FollowLogs prints entries appended to path until ctx is done.
func FollowLogs(ctx context.Context, w io.Writer, path string, filter LogFilter) error {
	t, err := logging.NewTailer(path, func(e logging.LogEntry) {
		if filter.Match(e) {
			_, _ = fmt.Fprintln(w, e.String())
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = t.Close() }()

	if err := t.Follow(ctx, false); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
