package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"hk/pkg/api"
	"hk/pkg/auth"
	"hk/pkg/plugin"
	"hk/pkg/runner"
	"hk/pkg/system"
)

const noAppMessage = "No app specified. Run this command from an app folder or specify which app to use with --app APP."

// Capabilities is everything a handler may do besides its own logic.
// Base is the live implementation; tests substitute a double.
type Capabilities interface {
	// App returns the application the command acts on.
	App() (string, error)
	// Ask reads one line of input, without the trailing newline.
	Ask() string
	Display(msg string, newline bool)
	Heroku() api.Core
	// ExtractApp finds the application from the git remotes of the working copy.
	ExtractApp() (string, error)
	// Error reports a user-facing failure. Handlers return its result.
	Error(msg string) error
	Print(line string)
	Puts(line string)
	Plugins() *plugin.Manager
	Auth() auth.Provider
}

// Base implements Capabilities against the real terminal, API and git.
type Base struct {
	Stdout        io.Writer
	Stdin         io.Reader
	Client        api.Core
	Runner        runner.CommandRunner
	Dir           string
	PluginManager *plugin.Manager
	Credentials   auth.Provider

	in *bufio.Reader
}

// NewBase wires a Base to the process's stdin and stdout.
func NewBase(client api.Core, r runner.CommandRunner, plugins *plugin.Manager, creds auth.Provider) *Base {
	return &Base{
		Credentials:   creds,
		Stdout:        os.Stdout,
		Stdin:         os.Stdin,
		Client:        client,
		Runner:        r,
		PluginManager: plugins,
	}
}

func (b *Base) App() (string, error) {
	app, err := b.ExtractApp()
	if err != nil {
		if errors.Is(err, system.ErrNoApp) {
			return "", Failedf(err, noAppMessage)
		}
		return "", Failedf(err, "%v", err)
	}
	return app, nil
}

func (b *Base) ExtractApp() (string, error) {
	remotes, err := system.ListGitRemotes(b.Runner, b.Dir)
	if err != nil {
		return "", err
	}
	return system.AppFromRemotes(remotes, b.Client.Host())
}

func (b *Base) Ask() string {
	if b.in == nil {
		b.in = bufio.NewReader(b.Stdin)
	}
	line, err := b.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

func (b *Base) Display(msg string, newline bool) {
	if newline {
		fmt.Fprintln(b.Stdout, msg)
		return
	}
	fmt.Fprint(b.Stdout, msg)
}

func (b *Base) Heroku() api.Core { return b.Client }

func (b *Base) Error(msg string) error { return Failed(msg) }

func (b *Base) Print(line string) { fmt.Fprint(b.Stdout, line) }

func (b *Base) Puts(line string) { b.Print(line + "\n") }

func (b *Base) Plugins() *plugin.Manager { return b.PluginManager }

func (b *Base) Auth() auth.Provider { return b.Credentials }
