// pattern: Functional Core
package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// newTestApp returns an app writing to buffers and recording exit codes.
func newTestApp() (*App, *bytes.Buffer, *bytes.Buffer, *int) {
	app := NewApp("1.0.0")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := -1
	app.Stdout, app.Stderr = stdout, stderr
	app.ExitFunc = func(c int) { code = c }
	return app, stdout, stderr, &code
}

func TestApp_PrintHelp_ShowsCommandsAndGroups(t *testing.T) {
	app, _, _, _ := newTestApp()
	app.AddCommand(&Command{Name: "version", Summary: "Print version"})
	app.AddGroup("session", "Inspect the saved session")
	app.AddGroup("config", "Manage configuration")

	buf := &bytes.Buffer{}
	app.PrintHelp(buf)
	output := buf.String()

	for _, want := range []string{"Usage: yukari", "version", "Command Groups:", "config", "session", "Launch the file browser"} {
		if !strings.Contains(output, want) {
			t.Errorf("Help missing %q, got:\n%s", want, output)
		}
	}
	if strings.Index(output, "config") > strings.Index(output, "session") {
		t.Errorf("groups should be sorted, got:\n%s", output)
	}
}

func TestApp_Execute_NoArgs_ReturnsTrueForTUI(t *testing.T) {
	app, _, _, _ := newTestApp()
	if !app.Execute(nil) {
		t.Errorf("Execute(nil) returned false, want true")
	}
}

func TestApp_Execute_UngroupedCommand_Dispatches(t *testing.T) {
	app, _, _, code := newTestApp()
	var got []string
	app.AddCommand(&Command{
		Name: "ls",
		Run: func(args []string) error {
			got = args
			return nil
		},
	})

	if app.Execute([]string{"ls", "/tmp"}) {
		t.Errorf("Execute with command returned true, want false")
	}
	if len(got) != 1 || got[0] != "/tmp" {
		t.Errorf("Command received args %v, want [/tmp]", got)
	}
	if *code != -1 {
		t.Errorf("ExitFunc called with %d", *code)
	}
}

func TestApp_Execute_GroupCommand_Dispatches(t *testing.T) {
	app, _, _, _ := newTestApp()
	group := app.AddGroup("config", "Manage configuration")
	called := false
	group.AddCommand(&Command{
		Name: "show",
		Run: func(args []string) error {
			called = true
			return nil
		},
	})

	if app.Execute([]string{"config", "show"}) {
		t.Errorf("Execute with group command returned true, want false")
	}
	if !called {
		t.Errorf("Command Run was not called")
	}
}

func TestApp_Execute_CommandError_ExitsWithCode1(t *testing.T) {
	app, _, stderr, code := newTestApp()
	app.AddCommand(&Command{
		Name: "split",
		Run:  func([]string) error { return errors.New("bad pane count") },
	})

	app.Execute([]string{"split", "0"})

	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if got := stderr.String(); got != "error: bad pane count\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestApp_Execute_Help(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantText string
	}{
		{"group help", []string{"config", "help"}, "show"},
		{"group --help", []string{"config", "--help"}, "show"},
		{"group -h", []string{"config", "-h"}, "show"},
		{"bare group", []string{"config"}, "Usage: yukari config <command>"},
		{"command --help", []string{"config", "show", "--help"}, "Usage: yukari config show"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, stderr, code := newTestApp()
			runCalled := false
			app.AddGroup("config", "Manage configuration").AddCommand(&Command{
				Name:    "show",
				Summary: "Print the effective configuration",
				Usage:   "Usage: yukari config show",
				Run: func([]string) error {
					runCalled = true
					return nil
				},
			})

			if app.Execute(tt.args) {
				t.Errorf("Execute(%v) returned true", tt.args)
			}
			if runCalled {
				t.Errorf("Run called for help request")
			}
			if *code != -1 {
				t.Errorf("ExitFunc called with %d", *code)
			}
			if !strings.Contains(stderr.String(), tt.wantText) {
				t.Errorf("stderr missing %q, got:\n%s", tt.wantText, stderr.String())
			}
		})
	}
}

func TestApp_Execute_Unknown_ExitsWithCode1(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"frobnicate"}},
		{"unknown subcommand", []string{"config", "frobnicate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, stderr, code := newTestApp()
			app.AddGroup("config", "Manage configuration")

			app.Execute(tt.args)
			if *code != 1 {
				t.Errorf("exit code = %d, want 1", *code)
			}
			if !strings.Contains(stderr.String(), "Usage: yukari") {
				t.Errorf("expected help on stderr, got:\n%s", stderr.String())
			}
		})
	}
}
