package ui

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/jarvis/internal/client"
	"github.com/Cyclone1070/jarvis/internal/session"
	"github.com/Cyclone1070/jarvis/internal/ui/models"
	"github.com/Cyclone1070/jarvis/internal/ui/services"
	"github.com/Cyclone1070/jarvis/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const helpText = `Commands:
  /mode <name>  switch the agent mode
  /clear        clear the transcript
  /quit         exit
While an action awaits approval press y to proceed or n to cancel.`

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	conn     Connection
	renderer services.MarkdownRenderer
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

func newBubbleTeaModel(
	conn Connection,
	endpoint string,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) BubbleTeaModel {
	ti := textinput.New()
	ti.Placeholder = "Ask JARVIS..."
	ti.Focus()

	return BubbleTeaModel{
		state: models.State{
			Input:     ti,
			Viewport:  viewport.New(80, 20),
			Spinner:   spinnerFactory(),
			Messages:  []models.Message{},
			Endpoint:  endpoint,
			Connected: true,
		},
		conn:     conn,
		renderer: renderer,
	}
}

// Internal messages
type frameMsg client.Frame
type connClosedMsg struct{ err error }
type sendFailedMsg struct{ err error }

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.state.Spinner.Tick,
		listenForFrames(m.conn),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width
		m.state.Viewport.Height = max(msg.Height-6, 1) // input and status
		m.state.Input.Width = max(msg.Width-6, 10)
		m.updateViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case frameMsg:
		m.handleFrame(client.Frame(msg))
		return m, listenForFrames(m.conn)

	case connClosedMsg:
		m.state.Connected = false
		m.state.Waiting = false
		m.state.PendingApproval = nil
		m.state.StatusMsg = "Disconnected"
		if msg.err != nil {
			m.state.StatusMsg = "Disconnected: " + msg.err.Error()
		}
		return m, nil

	case sendFailedMsg:
		m.state.Waiting = false
		m.appendMessage(models.RoleSystem, "Send failed: "+msg.err.Error())
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

func (m *BubbleTeaModel) handleFrame(f client.Frame) {
	switch f.Type {
	case session.TypeLog:
		if !f.IsAI {
			m.appendMessage(models.RoleSystem, f.Msg)
			return
		}
		m.state.Waiting = false
		switch {
		case services.IsApprovalRequest(f.Msg):
			m.state.PendingApproval = &models.ApprovalRequest{Prompt: services.ApprovalPrompt(f.Msg)}
		case services.KeepsApprovalPending(f.Msg):
		default:
			m.state.PendingApproval = nil
		}
		m.appendMessage(models.RoleAgent, f.Msg)

	case session.TypeStats:
		m.state.Stats = f.Data

	case session.TypeThreatAlert:
		m.state.Alert = &models.Alert{Level: f.Level, Msg: f.Msg}
		m.appendMessage(models.RoleAlert, f.Msg)
	}
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.state.PendingApproval != nil {
		if m.state.Waiting {
			return m, nil
		}
		switch msg.String() {
		case "y", "Y":
			return m.send("yes")
		case "n", "N", "esc":
			return m.send("no")
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.state.Input.Value())
		if text == "" {
			return m, nil
		}
		m.state.Input.Reset()
		if strings.HasPrefix(text, "/") {
			return m.handleCommand(text)
		}
		return m.send(text)

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

func (m BubbleTeaModel) handleCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/quit", "/exit":
		return m, tea.Quit
	case "/clear":
		m.state.Messages = []models.Message{}
		m.state.Alert = nil
		m.updateViewport()
		return m, nil
	case "/help":
		m.appendMessage(models.RoleSystem, helpText)
		return m, nil
	case "/mode":
		if len(fields) != 2 {
			m.appendMessage(models.RoleSystem, "Usage: /mode <name>")
			return m, nil
		}
		mode := strings.ToUpper(fields[1])
		m.state.Mode = mode
		m.appendMessage(models.RoleSystem, "Mode set to "+mode)
		return m, sendMode(m.conn, mode)
	default:
		m.appendMessage(models.RoleSystem, fmt.Sprintf("Unknown command %s. Type /help.", fields[0]))
		return m, nil
	}
}

func (m BubbleTeaModel) send(text string) (tea.Model, tea.Cmd) {
	if !m.state.Connected {
		m.appendMessage(models.RoleSystem, "Not connected.")
		return m, nil
	}
	m.state.Waiting = true
	m.appendMessage(models.RoleUser, text)
	return m, tea.Batch(sendChat(m.conn, text), m.state.Spinner.Tick)
}

func (m *BubbleTeaModel) appendMessage(role, content string) {
	m.state.Messages = append(m.state.Messages, models.Message{Role: role, Content: content})
	m.updateViewport()
}

func (m *BubbleTeaModel) updateViewport() {
	m.state.Viewport.SetContent(views.FormatChatContent(m.state.Messages, m.state.Viewport.Width, m.renderer))
	m.state.Viewport.GotoBottom()
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

func listenForFrames(conn Connection) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-conn.Frames()
		if !ok {
			return connClosedMsg{err: conn.Err()}
		}
		return frameMsg(f)
	}
}

func sendChat(conn Connection, text string) tea.Cmd {
	return func() tea.Msg {
		if err := conn.Chat(text); err != nil {
			return sendFailedMsg{err: err}
		}
		return nil
	}
}

func sendMode(conn Connection, mode string) tea.Cmd {
	return func() tea.Msg {
		if err := conn.SetMode(mode); err != nil {
			return sendFailedMsg{err: err}
		}
		return nil
	}
}
