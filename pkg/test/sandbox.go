package test

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"hk/pkg/api"
	"hk/pkg/auth"
	"hk/pkg/command"
	"hk/pkg/plugin"

	"github.com/spf13/afero"
)

// Values every sandboxed command sees.
const (
	App        = "myapp"
	Host       = "heroku.com"
	BaseURL    = "https://api.heroku.com"
	PluginHome = "/tmp/nonexistant/we/hope"
)

// Sandbox runs registered commands in isolation: output goes to a buffer,
// the network is stubbed and the filesystem is in memory. It is scoped to
// one test and resets itself in t.Cleanup.
type Sandbox struct {
	t        testing.TB
	registry *command.Registry

	transport   *StubTransport
	fs          afero.Fs
	runner      *MockCommandRunner
	logger      *MockLogger
	core        api.Core
	credentials auth.Credentials

	output strings.Builder
}

type Option func(*Sandbox)

// WithFs replaces the in-memory filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Sandbox) { s.fs = fs }
}

// WithCredentials sets the credentials commands see through Auth.
func WithCredentials(user, password string) Option {
	return func(s *Sandbox) { s.credentials = auth.Credentials{Username: user, APIKey: password} }
}

func NewSandbox(t testing.TB, reg *command.Registry, opts ...Option) *Sandbox {
	s := &Sandbox{
		t:         t,
		registry:  reg,
		transport: NewStubTransport(t),
		fs:        afero.NewMemMapFs(),
		runner:    NewMockCommandRunner(),
		logger:    NewMockLogger(slog.LevelDebug),
	}
	for _, opt := range opts {
		opt(s)
	}
	t.Cleanup(s.Reset)
	return s
}

func (s *Sandbox) Fs() afero.Fs                  { return s.fs }
func (s *Sandbox) Runner() *MockCommandRunner    { return s.runner }
func (s *Sandbox) Logger() *MockLogger           { return s.logger }
func (s *Sandbox) Transport() *StubTransport     { return s.transport }
func (s *Sandbox) Credentials() auth.Credentials { return s.credentials }

// Execute runs line and fails the test if the command reports an error.
// It returns the captured output.
func (s *Sandbox) Execute(line string) string {
	s.t.Helper()
	return s.ExecuteWith(line, false, "")
}

// ExecuteExpectingError runs line and fails the test unless the command
// reports an error, with expectedMessage when one is given.
func (s *Sandbox) ExecuteExpectingError(line string, expectedMessage ...string) string {
	s.t.Helper()
	var msg string
	if len(expectedMessage) > 0 {
		msg = expectedMessage[0]
	}
	return s.ExecuteWith(line, true, msg)
}

// ExecuteWith runs line against a fresh Double. An empty expectedMessage
// accepts any error message; otherwise every call to Error must use it.
func (s *Sandbox) ExecuteWith(line string, expectError bool, expectedMessage string) string {
	s.t.Helper()
	s.output.Reset()

	name, args, err := command.Tokenize(line)
	if err != nil {
		s.t.Errorf("cannot execute %q: %v", line, err)
		return ""
	}

	double := &Double{sandbox: s, expectError: expectError}
	resolved, err := s.registry.Prepare(name, args, double)
	if err != nil {
		s.t.Errorf("cannot execute %q: %v", line, err)
		return ""
	}

	err = resolved.Invoke()

	switch {
	case expectError && len(double.errorCalls) == 0:
		if err != nil {
			s.t.Errorf("expected %q to call Error, but it returned %v", line, err)
		} else {
			s.t.Errorf("expected %q to call Error, but it was never called", line)
		}
	case expectError && expectedMessage != "" && !allEqual(double.errorCalls, expectedMessage):
		s.t.Errorf("expected %q to call Error(%q), got Error(%q)", line, expectedMessage, strings.Join(double.errorCalls, "), Error("))
	case err != nil && !(len(double.errorCalls) > 0 && errors.Is(err, command.ErrCommandFailed)):
		s.t.Errorf("%q returned unexpected error: %v", line, err)
	}

	return s.Output()
}

// Run dispatches line through command.Run with a live Base whose stdout is
// captured. Network, filesystem and git still go through the sandbox.
func (s *Sandbox) Run(line string) (string, error) {
	s.t.Helper()

	var runErr error
	out := CaptureStdout(s.t, func() {
		base := command.NewBase(s.client(), s.runner, plugin.NewManager(s.fs, PluginHome), s.credentials)
		base.Stdin = strings.NewReader("")
		runErr = command.RunLine(s.registry, line, base, s.logger)
	})
	return out, runErr
}

// Output is the last invocation's output without its trailing newline.
func (s *Sandbox) Output() string {
	return strings.TrimSuffix(s.output.String(), "\n")
}

// StubAPIRequest intercepts method requests to path under BaseURL.
func (s *Sandbox) StubAPIRequest(method, path string) *StubbedRequest {
	return s.transport.Stub(method, BaseURL+path)
}

// AssertRequested fails the test unless method path was requested.
func (s *Sandbox) AssertRequested(method, path string) bool {
	s.t.Helper()
	if !s.transport.Requested(method, BaseURL+path) {
		s.t.Errorf("expected request %s %s", method, BaseURL+path)
		return false
	}
	return true
}

// StubCore replaces the API client with a testify mock and installs fixed
// credentials.
func (s *Sandbox) StubCore() *MockCore {
	core := &MockCore{HostName: Host}
	s.core = core
	s.credentials = auth.Credentials{Username: "user", APIKey: "apikey01"}
	return core
}

// Reset discards every binding so nothing leaks into the next test.
func (s *Sandbox) Reset() {
	s.output.Reset()
	s.transport.Reset()
	s.runner.Reset()
	s.logger.Reset()
	s.core = nil
	s.credentials = auth.Credentials{}
}

func (s *Sandbox) client() api.Core {
	if s.core != nil {
		return s.core
	}
	return api.NewClient(Host, s.credentials.User(), s.credentials.Password(),
		api.WithHTTPClient(&http.Client{Transport: s.transport}),
		api.WithLogger(s.logger),
	)
}

// Double is the capability set sandboxed commands run against.
type Double struct {
	sandbox     *Sandbox
	expectError bool
	errorCalls  []string
}

var _ command.Capabilities = (*Double)(nil)

func (d *Double) App() (string, error)        { return App, nil }
func (d *Double) Ask() string                 { return "" }
func (d *Double) Display(string, bool)        {}
func (d *Double) Heroku() api.Core            { return d.sandbox.client() }
func (d *Double) ExtractApp() (string, error) { return App, nil }
func (d *Double) Print(line string)           { d.sandbox.output.WriteString(line) }
func (d *Double) Puts(line string)            { d.Print(line + "\n") }
func (d *Double) Auth() auth.Provider         { return d.sandbox.credentials }

func (d *Double) Plugins() *plugin.Manager {
	return plugin.NewManager(d.sandbox.fs, PluginHome)
}

// Error records the call. Unless an error is expected it fails the test
// at the point of the call.
func (d *Double) Error(msg string) error {
	d.sandbox.t.Helper()
	d.errorCalls = append(d.errorCalls, msg)
	if !d.expectError {
		d.sandbox.t.Errorf("unexpected call to Error(%q)", msg)
	}
	return command.Failed(msg)
}

// ErrorCalls returns the messages passed to Error, in order.
func (d *Double) ErrorCalls() []string {
	return append([]string(nil), d.errorCalls...)
}

func allEqual(list []string, s string) bool {
	for _, v := range list {
		if v != s {
			return false
		}
	}
	return true
}
