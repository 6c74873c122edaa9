// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"yukari/internal/session"
)

// RegisterSessionCommands registers the session command group commands.
func RegisterSessionCommands(app *App, group *Group, opts Options) {
	group.AddCommand(&Command{
		Name:    "show",
		Summary: "Print the saved session and whether an instance is running",
		Usage:   "Usage: yukari session show",
		Run: func(args []string) error {
			dir := session.Dir(opts.StateDir)
			if pid, ok, err := session.Running(dir); ok {
				if err != nil {
					fmt.Fprintf(app.Stderr, "warning: %v\n", err)
				}
				fmt.Fprintf(app.Stdout, "# running: pid %d\n", pid)
			}

			st, ok, err := session.NewStore(dir).Load(context.Background())
			if err != nil {
				return err
			}
			if !ok {
				_, err := fmt.Fprintln(app.Stdout, "No saved session.")
				return err
			}
			data, err := yaml.Marshal(st)
			if err != nil {
				return err
			}
			_, err = app.Stdout.Write(data)
			return err
		},
	})

	group.AddCommand(&Command{
		Name:    "clear",
		Summary: "Forget the saved session",
		Usage:   "Usage: yukari session clear",
		Run: func(args []string) error {
			dir := session.Dir(opts.StateDir)
			if err := session.NewStore(dir).Clear(context.Background()); err != nil {
				return err
			}
			if _, ok, _ := session.Running(dir); ok {
				fmt.Fprintln(app.Stderr, "warning: a running instance will save its session again on exit")
			}
			_, err := fmt.Fprintln(app.Stdout, "Session cleared.")
			return err
		},
	})
}
