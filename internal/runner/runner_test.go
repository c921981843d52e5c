package runner

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/jarvis/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(opts ...Option) *Runner {
	cfg := config.DefaultConfig().Runner
	cfg.WaitDelayMs = 100
	return New(cfg, nil, opts...)
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell fixtures are POSIX sh")
	}
}

func TestRun(t *testing.T) {
	skipOnWindows(t)
	r := newTestRunner(WithElevationCheck(func() bool { return false }))

	t.Run("SimpleCommand", func(t *testing.T) {
		out, err := r.Run(context.Background(), "echo hello", time.Second)
		require.NoError(t, err)
		assert.True(t, out.Succeeded)
		assert.False(t, out.TimedOut)
		require.NotNil(t, out.ExitCode)
		assert.Equal(t, 0, *out.ExitCode)
		assert.Equal(t, "hello", strings.TrimSpace(out.Output))
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, err := r.Run(context.Background(), "", time.Second)
		assert.ErrorIs(t, err, ErrEmptyCommand)
	})

	t.Run("NonZeroExitReportsStderr", func(t *testing.T) {
		out, err := r.Run(context.Background(), "echo boom >&2; exit 3", time.Second)
		require.NoError(t, err)
		assert.False(t, out.Succeeded)
		require.NotNil(t, out.ExitCode)
		assert.Equal(t, 3, *out.ExitCode)
		assert.Equal(t, "boom", strings.TrimSpace(out.Output))

		var cmdErr *CommandError
		require.True(t, errors.As(out.Err, &cmdErr))
		assert.Equal(t, "exit", cmdErr.Stage)
	})

	t.Run("SuccessOutputTruncated", func(t *testing.T) {
		out, err := r.Run(context.Background(), "printf 'x%.0s' $(seq 1 800)", time.Second)
		require.NoError(t, err)
		assert.True(t, out.Succeeded)
		assert.Len(t, out.Output, 500)
	})

	t.Run("FailureOutputNotTruncated", func(t *testing.T) {
		out, err := r.Run(context.Background(), "printf 'x%.0s' $(seq 1 800) >&2; exit 1", time.Second)
		require.NoError(t, err)
		assert.False(t, out.Succeeded)
		assert.Len(t, out.Output, 800)
	})

	t.Run("UnknownBinaryFails", func(t *testing.T) {
		out, err := r.Run(context.Background(), "definitely-not-a-real-binary-xyz", time.Second)
		require.NoError(t, err)
		assert.False(t, out.Succeeded)
		require.NotNil(t, out.ExitCode)
		assert.Equal(t, 127, *out.ExitCode)
	})
}

func TestRun_Timeout(t *testing.T) {
	skipOnWindows(t)
	r := newTestRunner()

	start := time.Now()
	out, err := r.Run(context.Background(), "sleep 10", 200*time.Millisecond)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.True(t, out.TimedOut)
	assert.False(t, out.Succeeded)
	assert.Nil(t, out.ExitCode)
	assert.Equal(t, "Command timed out after 200ms.", out.Output)

	var timeoutErr *TimeoutError
	assert.True(t, errors.As(out.Err, &timeoutErr))
}

func TestRun_TimeoutKillsChildren(t *testing.T) {
	skipOnWindows(t)
	r := newTestRunner()

	// The background sleep holds stdout open; only a group kill lets Run return promptly.
	start := time.Now()
	out, err := r.Run(context.Background(), "sleep 10 & sleep 10; wait", 200*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, out.TimedOut)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRun_ContextCancelled(t *testing.T) {
	skipOnWindows(t)
	r := newTestRunner()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	out, err := r.Run(ctx, "sleep 10", 5*time.Second)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ElevatedStripsSudo(t *testing.T) {
	skipOnWindows(t)
	r := newTestRunner(WithElevationCheck(func() bool { return true }))

	// Without stripping this would fail or prompt when sudo is absent.
	out, err := r.Run(context.Background(), "sudo echo elevated && sudo echo twice", time.Second)
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
	assert.Equal(t, "elevated\ntwice", strings.TrimSpace(out.Output))
}

func TestStripElevation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Leading", "sudo iptables -L", "iptables -L"},
		{"AfterAnd", "export X=1 && sudo apt update && sudo apt -y upgrade", "export X=1 && apt update && apt -y upgrade"},
		{"AfterPipe", "wget -q -O - https://x | sudo apt-key add -", "wget -q -O - https://x | apt-key add -"},
		{"AfterSemicolon", "true; sudo ls", "true; ls"},
		{"AfterOr", "false || sudo ls", "false || ls"},
		{"Repeated", "sudo sudo ls", "ls"},
		{"NotCommandPosition", "echo sudo ls", "echo sudo ls"},
		{"WordContainingSudo", "pseudo ls", "pseudo ls"},
		{"NoSudo", "ls -la", "ls -la"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripElevation(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, StripElevation(got), "must be idempotent")
		})
	}
}

func TestCollector(t *testing.T) {
	t.Run("UnderLimit", func(t *testing.T) {
		c := newCollector(10)
		n, err := c.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, "abc", c.String())
		assert.False(t, c.Truncated())
	})

	t.Run("OverLimit", func(t *testing.T) {
		c := newCollector(5)
		_, _ = c.Write([]byte("abcdef"))
		assert.Equal(t, "abcde", c.String())
		assert.True(t, c.Truncated())
	})

	t.Run("BinaryDetection", func(t *testing.T) {
		c := newCollector(10)
		_, _ = c.Write([]byte{'a', 0, 'b'})
		assert.Equal(t, "[Binary Content]", c.String())
		assert.True(t, c.Truncated())
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo wörld", 5))
	assert.Equal(t, "short", truncateRunes("short", 500))
	assert.Equal(t, "", truncateRunes("", 3))
}

func TestTimeoutError_NamesBound(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "Command timed out after 45 seconds."},
		{300 * time.Second, "Command timed out after 300 seconds."},
		{200 * time.Millisecond, "Command timed out after 200ms."},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			err := &TimeoutError{Command: "sleep 10", Duration: tt.d}
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
