package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Cyclone1070/jarvis/internal/intent"
)

// MockResolver returns a fixed intent per user text.
type MockResolver struct {
	Intents  map[string]intent.Intent
	Contexts []string
}

func (m *MockResolver) Resolve(ctx context.Context, contextSummary, userText string) (intent.Intent, error) {
	m.Contexts = append(m.Contexts, contextSummary)
	if it, ok := m.Intents[userText]; ok {
		return it, nil
	}
	return intent.Intent{Reply: "standing by"}, nil
}

type execCall struct {
	action string
	params map[string]any
}

// MockExecutor records executions.
type MockExecutor struct {
	mu          sync.Mutex
	ExecuteFunc func(ctx context.Context, action string, params map[string]any) (string, error)
	Calls       []execCall
}

func (m *MockExecutor) Execute(ctx context.Context, action string, params map[string]any) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, execCall{action: action, params: params})
	m.mu.Unlock()
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, action, params)
	}
	return "SUCCESS:\ndone", nil
}

func (m *MockExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockChannel feeds frames from In and records everything sent.
type MockChannel struct {
	In chan []byte

	mu   sync.Mutex
	sent []Message
	Sent chan Message
}

func NewMockChannel() *MockChannel {
	return &MockChannel{
		In:   make(chan []byte),
		Sent: make(chan Message, 256),
	}
}

var errClosed = errors.New("channel closed")

func (m *MockChannel) Receive(ctx context.Context) ([]byte, error) {
	select {
	case data, ok := <-m.In:
		if !ok {
			return nil, errClosed
		}
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *MockChannel) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.Sent <- msg
	return nil
}

func (m *MockChannel) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
