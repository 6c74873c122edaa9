// pattern: Imperative Shell
package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"yukari/internal/config"
)

// RegisterConfigCommands registers the config command group commands.
func RegisterConfigCommands(app *App, group *Group, opts Options) {
	group.AddCommand(&Command{
		Name:    "show",
		Summary: "Print the effective configuration",
		Usage:   "Usage: yukari config show",
		Run: func(args []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = app.Stdout.Write(data)
			return err
		},
	})

	group.AddCommand(&Command{
		Name:    "path",
		Summary: "Print the config file location",
		Usage:   "Usage: yukari config path",
		Run: func(args []string) error {
			_, err := fmt.Fprintln(app.Stdout, config.Path(opts.ConfigDir))
			return err
		},
	})

	group.AddCommand(&Command{
		Name:    "validate",
		Summary: "Check the config file",
		Usage:   "Usage: yukari config validate",
		Run: func(args []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.Stdout, "ok")
			return err
		},
	})

	group.AddCommand(&Command{
		Name:    "init",
		Summary: "Write a config file with the defaults",
		Usage:   "Usage: yukari config init [--force]",
		Run: func(args []string) error {
			fs := newFlagSet("config init", app.Stderr)
			force := fs.Bool("force", false, "overwrite an existing file")
			if err := fs.Parse(args); err != nil {
				return fmt.Errorf("usage: yukari config init [--force]")
			}

			path := config.Path(opts.ConfigDir)
			if _, err := os.Stat(path); err == nil && !*force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(app.Stdout, "Wrote %s\n", path)
			return err
		},
	})
}
