package session

import (
	"context"
	"testing"
	"time"

	"github.com/Cyclone1070/jarvis/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type staticSampler struct{}

func (staticSampler) Sample(context.Context) (telemetry.Sample, error) {
	return telemetry.Sample{CPUPercent: 10, MemoryPercent: 20}, nil
}

func newTestSession(t *testing.T, exec *MockExecutor, heartbeat time.Duration) *Session {
	t.Helper()
	c, _ := newTestController(t, exec)
	return New(c, telemetry.NewMeter(staticSampler{}), heartbeat, nil)
}

func nextMessage(t *testing.T, ch *MockChannel) Message {
	t.Helper()
	select {
	case msg := <-ch.Sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outbound message")
		return nil
	}
}

// nextNonStats skips heartbeat pushes.
func nextNonStats(t *testing.T, ch *MockChannel) Message {
	t.Helper()
	for {
		msg := nextMessage(t, ch)
		if msg.Kind() != TypeStats {
			return msg
		}
	}
}

func TestSession_HeartbeatWithoutInput(t *testing.T) {
	s := newTestSession(t, &MockExecutor{}, 10*time.Millisecond)
	ch := NewMockChannel()
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), ch) }()

	for i := 0; i < 3; i++ {
		msg := nextMessage(t, ch)
		stats, ok := msg.(StatsMessage)
		require.True(t, ok)
		assert.Equal(t, 10.0, stats.Data.CPU)
	}

	close(ch.In)
	assert.NoError(t, <-done)
}

func TestSession_ReplyThenStats(t *testing.T) {
	s := newTestSession(t, &MockExecutor{}, time.Hour)
	ch := NewMockChannel()
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), ch) }()

	ch.In <- chat("drill")
	assert.Equal(t, TypeLog, nextMessage(t, ch).Kind())
	assert.Equal(t, TypeStats, nextMessage(t, ch).Kind())

	ch.In <- chat("yes")
	assert.Equal(t, NewAlert(AlertCritical, DrillAlertText), nextMessage(t, ch))
	assert.Equal(t, NewLog(DrillReply), nextMessage(t, ch))
	assert.Equal(t, TypeStats, nextMessage(t, ch).Kind())

	close(ch.In)
	assert.NoError(t, <-done)
}

func TestSession_DisconnectCancelsRunningCommand(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	exec := &MockExecutor{ExecuteFunc: func(ctx context.Context, _ string, _ map[string]any) (string, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	}}
	s := newTestSession(t, exec, time.Hour)
	ch := NewMockChannel()
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), ch) }()

	ch.In <- chat("check cpu")
	<-started
	close(ch.In)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("command was not cancelled on disconnect")
	}
	assert.NoError(t, <-done)
}

func TestSession_DisconnectWithQueuedFrameCancelsRunningCommand(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	exec := &MockExecutor{ExecuteFunc: func(ctx context.Context, _ string, _ map[string]any) (string, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	}}
	s := newTestSession(t, exec, time.Hour)
	ch := NewMockChannel()
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), ch) }()

	ch.In <- chat("check cpu")
	<-started
	ch.In <- chat("hello")
	close(ch.In)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("command was not cancelled on disconnect")
	}
	assert.NoError(t, <-done)
	assert.Equal(t, 1, exec.CallCount())
}

func TestSession_QueuedFramesHandledInOrder(t *testing.T) {
	release := make(chan struct{})
	exec := &MockExecutor{ExecuteFunc: func(ctx context.Context, _ string, _ map[string]any) (string, error) {
		<-release
		return "SUCCESS:\nload", nil
	}}
	s := newTestSession(t, exec, time.Hour)
	ch := NewMockChannel()
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), ch) }()

	ch.In <- chat("check cpu")
	ch.In <- chat("one")
	ch.In <- chat("two")
	close(release)

	assert.Equal(t, NewLog("SUCCESS:\nload"), nextNonStats(t, ch))
	assert.Equal(t, NewLog("standing by"), nextNonStats(t, ch))
	assert.Equal(t, NewLog("standing by"), nextNonStats(t, ch))

	close(ch.In)
	assert.NoError(t, <-done)
}

func TestInbox_PopEmptyAfterStaleSignal(t *testing.T) {
	q := newInbox()
	q.push([]byte("a"))
	q.push([]byte("b"))

	frame, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, []byte("a"), frame)
	<-q.ready

	frame, ok = q.pop()
	require.True(t, ok)
	assert.Equal(t, []byte("b"), frame)

	q.signal()
	<-q.ready
	_, ok = q.pop()
	assert.False(t, ok)
}

func TestSession_ParentCancel(t *testing.T) {
	s := newTestSession(t, &MockExecutor{}, time.Hour)
	ch := NewMockChannel()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, ch) }()

	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestSession_PendingSurvivesHeartbeats(t *testing.T) {
	exec := &MockExecutor{}
	s := newTestSession(t, exec, 5*time.Millisecond)
	ch := NewMockChannel()
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), ch) }()

	ch.In <- chat("update")
	assert.Contains(t, nextNonStats(t, ch).(LogMessage).Msg, "APPROVAL REQUIRED")
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, exec.CallCount())

	ch.In <- chat("yes")
	assert.Contains(t, nextNonStats(t, ch).(LogMessage).Msg, "Action 'update_system' Result:")
	assert.Equal(t, 1, exec.CallCount())

	close(ch.In)
	assert.NoError(t, <-done)
}

func TestSession_IDsAreUnique(t *testing.T) {
	a := newTestSession(t, &MockExecutor{}, time.Second)
	b := newTestSession(t, &MockExecutor{}, time.Second)
	assert.NotEqual(t, a.ID(), b.ID())
}
