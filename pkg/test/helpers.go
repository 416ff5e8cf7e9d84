package test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"hk/pkg/command"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestFile creates a file with content in the test filesystem.
func CreateTestFile(t *testing.T, fs afero.Fs, path, content string) {
	err := fs.MkdirAll(filepath.Dir(path), 0755)
	require.NoError(t, err)
	err = afero.WriteFile(fs, path, []byte(content), 0644)
	require.NoError(t, err)
}

// CreateTestDir creates a directory in the test filesystem.
func CreateTestDir(t *testing.T, fs afero.Fs, path string) {
	err := fs.MkdirAll(path, 0755)
	require.NoError(t, err)
}

// AssertCommandExecuted checks that a command was executed by the mock runner.
func AssertCommandExecuted(t *testing.T, runner *MockCommandRunner, command string) {
	require.Contains(t, runner.Commands, command, "Command should have been executed: %s", command)
}

// AssertCommandNotExecuted checks that a command was not executed.
func AssertCommandNotExecuted(t *testing.T, runner *MockCommandRunner, command string) {
	require.NotContains(t, runner.Commands, command, "Command should not have been executed: %s", command)
}

// AssertLogContains checks that the logger captured a message containing the substring.
func AssertLogContains(t *testing.T, logger *MockLogger, substring string) {
	require.True(t, logger.HasMessage(substring), "Log should contain: %s", substring)
}

// AssertCommandFailed checks that err came from the error-reporting path with message.
func AssertCommandFailed(t testing.TB, err error, message string) bool {
	t.Helper()
	var failed *command.CommandFailedError
	if !errors.As(err, &failed) {
		t.Errorf("expected CommandFailedError %q, got %v", message, err)
		return false
	}
	return assert.Equal(t, message, failed.Message)
}

// AssertOutput compares command output and reports a character diff on mismatch.
func AssertOutput(t testing.TB, want, got string) bool {
	t.Helper()
	if want == got {
		return true
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(want, got, false))
	t.Errorf("output mismatch ([-missing-] {+unexpected+}):\n%s", renderDiff(diffs))
	return false
}

func renderDiff(diffs []diffmatchpatch.Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// Undent removes the first line's indentation from every line. A leading
// newline and all trailing whitespace are dropped, so an indented raw string
// can be compared with Output directly.
func Undent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(strings.TrimRight(s, " \t\n"), "\n")
	indent := len(lines[0]) - len(strings.TrimLeft(lines[0], " \t"))
	for i, line := range lines {
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if n > indent {
			n = indent
		}
		lines[i] = line[n:]
	}
	return strings.Join(lines, "\n")
}
