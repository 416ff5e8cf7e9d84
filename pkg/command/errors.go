package command

import (
	"errors"
	"fmt"
)

var (
	ErrCommandNotFound  = errors.New("command not found")
	ErrCommandFailed    = errors.New("command failed")
	ErrEmptyCommandLine = errors.New("empty command line")
	ErrDuplicateCommand = errors.New("command already registered")
)

// CommandNotFoundError is returned when no handler defines the named command.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s is not a hk command. See 'hk help'.", e.Name)
}

func (e *CommandNotFoundError) Is(target error) bool { return target == ErrCommandNotFound }

// CommandFailedError is what the error-reporting capability produces.
// The CLI prints Message and exits non-zero.
type CommandFailedError struct {
	Message string
	cause   error
}

// Failed returns a CommandFailedError with msg.
func Failed(msg string) error {
	return &CommandFailedError{Message: msg}
}

// Failedf is a formatted variant that wraps cause.
func Failedf(cause error, format string, args ...any) error {
	return &CommandFailedError{Message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *CommandFailedError) Error() string { return e.Message }

func (e *CommandFailedError) Unwrap() error { return e.cause }

func (e *CommandFailedError) Is(target error) bool { return target == ErrCommandFailed }
