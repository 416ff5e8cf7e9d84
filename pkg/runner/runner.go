// Package runner defines interfaces for command execution.
// This package exists to break import cycles between testing and system packages.
package runner

// CommandRunner runs a shell command in dir and returns its combined output.
// An empty dir means the current working directory.
// This allows for mocking in tests.
type CommandRunner interface {
	Run(dir, command string) ([]byte, error)
}
