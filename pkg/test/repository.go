package test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"hk/pkg/runner"

	"github.com/stretchr/testify/require"
)

// SandboxDir is the pid-scoped directory WithBlankRepository works in.
func SandboxDir() string {
	return filepath.Join(os.TempDir(), "hk", strconv.Itoa(os.Getpid()))
}

// WithBlankRepository runs fn inside a freshly initialised git repository.
// The working directory is restored and the repository removed on every
// path out, including a panic in fn. It changes the process working
// directory, so callers must not run in parallel.
func WithBlankRepository(t testing.TB, r runner.CommandRunner, fn func(dir string)) {
	t.Helper()

	dir := SandboxDir()
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.MkdirAll(dir, 0755))

	oldDir, err := os.Getwd()
	require.NoError(t, err)

	defer func() {
		if err := os.Chdir(oldDir); err != nil {
			t.Errorf("cannot restore working directory %s: %v", oldDir, err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("cannot remove %s: %v", dir, err)
		}
	}()

	require.NoError(t, os.Chdir(dir))

	if out, err := r.Run(dir, "git init"); err != nil {
		t.Errorf("git init failed: %v: %s", err, out)
		return
	}

	fn(dir)
}
