package runner

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyCommand is returned when Run is called without a command.
var ErrEmptyCommand = errors.New("command cannot be empty")

// TimeoutError is recorded when a command exceeds its wall-clock bound.
type TimeoutError struct {
	Command  string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Duration < time.Second {
		return fmt.Sprintf("Command timed out after %s.", e.Duration)
	}
	return fmt.Sprintf("Command timed out after %d seconds.", int(e.Duration.Seconds()))
}

func (e *TimeoutError) Timeout() bool {
	return true
}

// CommandError is recorded when a command could not be started or exited non-zero.
type CommandError struct {
	Command  string
	ExitCode int
	Stage    string // "start" or "exit"
	Cause    error
}

func (e *CommandError) Error() string {
	if e.Stage == "start" {
		return fmt.Sprintf("failed to start %q: %v", e.Command, e.Cause)
	}
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}
