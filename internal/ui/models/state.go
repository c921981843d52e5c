package models

import (
	"github.com/Cyclone1070/jarvis/internal/telemetry"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Message roles.
const (
	RoleUser   = "user"
	RoleAgent  = "agent"
	RoleAlert  = "alert"
	RoleSystem = "system"
)

// Message is one entry in the transcript.
type Message struct {
	Role    string
	Content string
}

// Alert is the threat banner shown above the transcript.
type Alert struct {
	Level string
	Msg   string
}

// ApprovalRequest is shown while the agent waits for a yes/no.
type ApprovalRequest struct {
	Prompt string
}

// State is everything the console renders.
type State struct {
	Width  int
	Height int

	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model

	Messages        []Message
	Stats           *telemetry.Snapshot
	Alert           *Alert
	PendingApproval *ApprovalRequest

	Endpoint  string
	Connected bool
	Waiting   bool
	Mode      string
	StatusMsg string
}
