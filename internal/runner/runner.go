// Package runner is the only place in jarvis that spawns OS processes.
// It runs one shell command line under a wall-clock bound and reports a
// structured Outcome instead of raw process state.
package runner

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/Cyclone1070/jarvis/internal/config"
	"go.uber.org/zap"
)

// Outcome is the structured result of one bounded command invocation.
type Outcome struct {
	Succeeded bool
	ExitCode  *int
	Output    string
	TimedOut  bool

	// Err carries the TimeoutError or CommandError behind a failure. Logging only.
	Err error
}

// Runner executes host shell commands.
type Runner struct {
	successLimit int
	captureBytes int
	waitDelay    time.Duration
	elevated     func() bool
	logger       *zap.Logger
}

// Option customises a Runner.
type Option func(*Runner)

// WithElevationCheck overrides how the runner decides it already has root privileges.
func WithElevationCheck(fn func() bool) Option {
	return func(r *Runner) { r.elevated = fn }
}

// New creates a Runner from the runner section of the config.
func New(cfg config.RunnerConfig, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		successLimit: cfg.SuccessOutputLimit,
		captureBytes: int(cfg.MaxCaptureBytes),
		waitDelay:    time.Duration(cfg.WaitDelayMs) * time.Millisecond,
		elevated:     processElevated,
		logger:       logger.Named("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes command through the host shell, bounded by timeout.
//
// Timeouts and failing commands are reported in the Outcome. An error is
// returned only for an empty command or when ctx itself is cancelled, in which
// case the process group has already been killed.
func (r *Runner) Run(ctx context.Context, command string, timeout time.Duration) (*Outcome, error) {
	if command == "" {
		return nil, ErrEmptyCommand
	}
	if r.elevated() {
		command = StripElevation(command)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name, args := shellCommand(command)
	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Stdin = nil
	tree := configureProcess(cmd)
	cmd.WaitDelay = r.waitDelay

	stdout := newCollector(r.captureBytes)
	stderr := newCollector(r.captureBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	r.logger.Debug("running command", zap.String("command", command), zap.Duration("timeout", timeout))
	start := time.Now()
	err := cmd.Start()
	if err == nil {
		if attachErr := tree.attach(cmd); attachErr != nil {
			r.logger.Warn("could not track child processes", zap.String("command", command), zap.Error(attachErr))
		}
		err = cmd.Wait()
		tree.release()
	}
	elapsed := time.Since(start)

	// Session cancellation wins over the command's own deadline. A command
	// that finished cleanly before either fired keeps its result.
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		r.logger.Info("command cancelled", zap.String("command", command), zap.Duration("elapsed", elapsed))
		return nil, ctxErr
	}

	if err != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		timeoutErr := &TimeoutError{Command: command, Duration: timeout}
		r.logger.Warn("command timed out", zap.String("command", command), zap.Duration("timeout", timeout))
		return &Outcome{
			Succeeded: false,
			Output:    timeoutErr.Error(),
			TimedOut:  true,
			Err:       timeoutErr,
		}, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			r.logger.Info("command failed", zap.String("command", command), zap.Int("exit_code", code))
			return &Outcome{
				Succeeded: false,
				ExitCode:  &code,
				Output:    stderr.String(),
				Err:       &CommandError{Command: command, ExitCode: code, Stage: "exit", Cause: err},
			}, nil
		}
		r.logger.Warn("command did not start", zap.String("command", command), zap.Error(err))
		return &Outcome{
			Succeeded: false,
			Output:    err.Error(),
			Err:       &CommandError{Command: command, ExitCode: -1, Stage: "start", Cause: err},
		}, nil
	}

	if stdout.Truncated() {
		r.logger.Debug("command output truncated", zap.String("command", command), zap.Int("max_bytes", r.captureBytes))
	}
	code := 0
	return &Outcome{
		Succeeded: true,
		ExitCode:  &code,
		Output:    truncateRunes(stdout.String(), r.successLimit),
	}, nil
}
