package system

import (
	"os/exec"

	"hk/pkg/runner"

	"github.com/spf13/afero"
)

// CommandRunner is re-exported from pkg/runner so callers only import system.
type CommandRunner = runner.CommandRunner

// AppFs is the filesystem used when no other is supplied.
var AppFs afero.Fs = afero.NewOsFs()

// LiveCommandRunner is an implementation of CommandRunner that runs commands on the live system.
type LiveCommandRunner struct{}

// Run executes the given command and returns its output.
func (r *LiveCommandRunner) Run(dir, command string) ([]byte, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
