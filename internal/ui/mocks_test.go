package ui

import (
	"errors"
	"sync"

	"github.com/Cyclone1070/jarvis/internal/client"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type MockMarkdownRenderer struct{}

func (m *MockMarkdownRenderer) Render(content string, width int) (string, error) {
	return content, nil
}

type MockConnection struct {
	mu      sync.Mutex
	frames  chan client.Frame
	err     error
	sendErr error
	chats   []string
	modes   []string
}

func newMockConnection() *MockConnection {
	return &MockConnection{frames: make(chan client.Frame, 8)}
}

func (m *MockConnection) Frames() <-chan client.Frame { return m.frames }

func (m *MockConnection) Err() error { return m.err }

func (m *MockConnection) Chat(msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.chats = append(m.chats, msg)
	return nil
}

func (m *MockConnection) SetMode(mode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.modes = append(m.modes, mode)
	return nil
}

func (m *MockConnection) Chats() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.chats...)
}

var errSendFailed = errors.New("connection lost")

func mockSpinnerFactory() spinner.Model {
	return spinner.New()
}

// runCmd executes cmd and any batched commands, returning the produced
// messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}
