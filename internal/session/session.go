package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Cyclone1070/jarvis/internal/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDisconnected is the cancellation cause recorded when the client goes away.
var ErrDisconnected = errors.New("client disconnected")

// Channel is a duplex message channel to one client.
type Channel interface {
	// Receive blocks for the next inbound frame. It must return once ctx is done.
	Receive(ctx context.Context) ([]byte, error)
	Send(ctx context.Context, msg Message) error
}

// Session runs the heartbeat loop for one client.
type Session struct {
	id         string
	controller *Controller
	meter      *telemetry.Meter
	heartbeat  time.Duration
	logger     *zap.Logger
}

// New creates a session with a fresh id.
func New(controller *Controller, meter *telemetry.Meter, heartbeat time.Duration, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:         id,
		controller: controller,
		meter:      meter,
		heartbeat:  heartbeat,
		logger:     logger.Named("session").With(zap.String("session_id", id)),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Run drives the session until the client disconnects or ctx is done.
//
// Each iteration waits up to one heartbeat for a frame, handles at most one,
// then pushes one telemetry snapshot. Only this goroutine writes to ch, so
// replies, alerts and stats leave in the order they were produced. A
// disconnect cancels the session context, which also kills any command the
// controller is running. Run returns nil for a client disconnect.
func (s *Session) Run(ctx context.Context, ch Channel) error {
	ctx, cancel := context.WithCancelCause(ctx)

	inbox := newInbox()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Keep reading while the loop is busy so a disconnect is seen even
		// with frames still queued.
		for {
			data, err := ch.Receive(ctx)
			if err != nil {
				cancel(errors.Join(ErrDisconnected, err))
				return
			}
			inbox.push(data)
		}
	}()
	defer func() {
		cancel(nil)
		wg.Wait()
	}()

	s.logger.Info("session started")

	timer := time.NewTimer(s.heartbeat)
	defer timer.Stop()

	for {
		timer.Reset(s.heartbeat)

		select {
		case <-ctx.Done():
			return s.finish(ctx)

		case <-inbox.ready:
			frame, ok := inbox.pop()
			if !ok {
				break
			}
			msgs, err := s.controller.Handle(ctx, frame)
			if err != nil {
				return s.finish(ctx)
			}
			for _, msg := range msgs {
				if err := ch.Send(ctx, msg); err != nil {
					s.logger.Info("send failed", zap.Error(err))
					return nil
				}
			}

		case <-timer.C:
		}

		snap, err := s.meter.Snapshot(ctx)
		if err != nil {
			s.logger.Debug("telemetry unavailable", zap.Error(err))
			continue
		}
		if err := ch.Send(ctx, NewStats(snap)); err != nil {
			s.logger.Info("send failed", zap.Error(err))
			return nil
		}
	}
}

func (s *Session) finish(ctx context.Context) error {
	cause := context.Cause(ctx)
	if errors.Is(cause, ErrDisconnected) {
		s.logger.Info("client disconnected", zap.String("state", s.controller.State().String()))
		return nil
	}
	s.logger.Info("session stopped", zap.Error(cause))
	return cause
}

// inbox is an unbounded frame queue between the reader and the loop.
type inbox struct {
	mu     sync.Mutex
	frames [][]byte
	ready  chan struct{}
}

func newInbox() *inbox {
	return &inbox{ready: make(chan struct{}, 1)}
}

func (q *inbox) push(frame []byte) {
	q.mu.Lock()
	q.frames = append(q.frames, frame)
	q.mu.Unlock()
	q.signal()
}

// pop removes the oldest frame and re-arms ready while frames remain. A
// signal left over from a push whose frame was already taken finds the queue
// empty and reports false.
func (q *inbox) pop() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.frames) == 0 {
		return nil, false
	}
	frame := q.frames[0]
	q.frames[0] = nil
	q.frames = q.frames[1:]
	if len(q.frames) > 0 {
		q.signal()
	}
	return frame, true
}

func (q *inbox) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
