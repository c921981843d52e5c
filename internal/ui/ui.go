package ui

import (
	"github.com/Cyclone1070/jarvis/internal/ui/services"
	tea "github.com/charmbracelet/bubbletea"
)

// UI is the operator console, a Bubble Tea program over one agent session.
type UI struct {
	program *tea.Program
}

// NewUI creates a new Bubble Tea UI
func NewUI(
	conn Connection,
	endpoint string,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) *UI {
	model := newBubbleTeaModel(conn, endpoint, renderer, spinnerFactory)
	return &UI{program: tea.NewProgram(model, tea.WithAltScreen())}
}

// Start runs the program until the operator quits.
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}
