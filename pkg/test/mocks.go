package test

import (
	"bytes"
	"fmt"
	"log/slog"

	"hk/pkg/api"
	"hk/pkg/log"

	"github.com/stretchr/testify/mock"
)

// MockCommandRunner is a shared mock implementation of runner.CommandRunner for testing.
// It tracks executed commands and allows setting up responses and errors.
type MockCommandRunner struct {
	Commands    []string            // Track executed commands
	Responses   map[string][]byte   // Response by command key (dir:command)
	Errors      map[string]error    // Error by command key
	DirCommands map[string][]string // Track commands by working directory
}

// NewMockCommandRunner creates a new MockCommandRunner with initialized maps.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Commands:    []string{},
		Responses:   make(map[string][]byte),
		Errors:      make(map[string]error),
		DirCommands: make(map[string][]string),
	}
}

// Run simulates running a command and returns configured response or error.
// A response configured with an error is returned alongside it.
func (r *MockCommandRunner) Run(dir, command string) ([]byte, error) {
	key := dir + ":" + command
	r.Commands = append(r.Commands, command)
	r.DirCommands[dir] = append(r.DirCommands[dir], command)

	resp := r.Responses[key]
	if err, ok := r.Errors[key]; ok {
		return resp, err
	}
	return resp, nil
}

// SetResponse configures a response for a specific dir:command.
func (r *MockCommandRunner) SetResponse(dir, command string, response []byte) {
	r.Responses[dir+":"+command] = response
}

// SetError configures an error for a specific dir:command.
func (r *MockCommandRunner) SetError(dir, command string, err error) {
	r.Errors[dir+":"+command] = err
}

// Reset clears all tracked commands and configurations.
func (r *MockCommandRunner) Reset() {
	r.Commands = []string{}
	r.DirCommands = make(map[string][]string)
	r.Responses = make(map[string][]byte)
	r.Errors = make(map[string]error)
}

// MockLogger is a shared mock implementation of Logger for testing.
// It captures logged messages for verification.
type MockLogger struct {
	Messages []string
	Level    slog.Level
}

// NewMockLogger creates a new MockLogger with the specified level.
func NewMockLogger(level slog.Level) *MockLogger {
	return &MockLogger{
		Messages: []string{},
		Level:    level,
	}
}

// Debug captures debug messages.
func (l *MockLogger) Debug(msg string, args ...any) {
	if l.Level <= slog.LevelDebug {
		l.captureMessage("DEBUG", msg, args...)
	}
}

// Info captures info messages.
func (l *MockLogger) Info(msg string, args ...any) {
	if l.Level <= slog.LevelInfo {
		l.captureMessage("INFO", msg, args...)
	}
}

// Warn captures warn messages.
func (l *MockLogger) Warn(msg string, args ...any) {
	if l.Level <= slog.LevelWarn {
		l.captureMessage("WARN", msg, args...)
	}
}

// Error captures error messages.
func (l *MockLogger) Error(msg string, args ...any) {
	if l.Level <= slog.LevelError {
		l.captureMessage("ERROR", msg, args...)
	}
}

func (l *MockLogger) captureMessage(level, msg string, args ...any) {
	buf := &bytes.Buffer{}
	buf.WriteString(level)
	buf.WriteString(": ")
	buf.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		buf.WriteString(" ")
		buf.WriteString(fmt.Sprint(args[i]))
		buf.WriteString("=")
		buf.WriteString(fmt.Sprintf("%v", args[i+1]))
	}
	l.Messages = append(l.Messages, buf.String())
}

// Reset clears all captured messages.
func (l *MockLogger) Reset() {
	l.Messages = []string{}
}

// HasMessage checks if any captured message contains the given substring.
func (l *MockLogger) HasMessage(substring string) bool {
	for _, msg := range l.Messages {
		if bytes.Contains([]byte(msg), []byte(substring)) {
			return true
		}
	}
	return false
}

// SlogLogger creates a real slog logger for testing (alternative to mock).
func SlogLogger(level slog.Level) log.Logger {
	buf := &bytes.Buffer{}
	return log.NewSlogLogger(level, buf)
}

// MockCore is a testify mock of api.Core. Host is not mocked.
type MockCore struct {
	mock.Mock
	HostName string
}

var _ api.Core = (*MockCore)(nil)

func (m *MockCore) Host() string { return m.HostName }

func (m *MockCore) ListApps() ([]api.App, error) {
	args := m.Called()
	apps, _ := args.Get(0).([]api.App)
	return apps, args.Error(1)
}

func (m *MockCore) GetApp(name string) (api.App, error) {
	args := m.Called(name)
	app, _ := args.Get(0).(api.App)
	return app, args.Error(1)
}

func (m *MockCore) CreateApp(name string) (api.App, error) {
	args := m.Called(name)
	app, _ := args.Get(0).(api.App)
	return app, args.Error(1)
}

func (m *MockCore) DestroyApp(name string) error {
	return m.Called(name).Error(0)
}

func (m *MockCore) ConfigVars(app string) (map[string]string, error) {
	args := m.Called(app)
	vars, _ := args.Get(0).(map[string]string)
	return vars, args.Error(1)
}

func (m *MockCore) AddConfigVars(app string, vars map[string]string) error {
	return m.Called(app, vars).Error(0)
}

func (m *MockCore) RemoveConfigVar(app, key string) error {
	return m.Called(app, key).Error(0)
}
