package session

import "github.com/Cyclone1070/jarvis/internal/telemetry"

// Inbound message types.
const (
	TypeChat    = "chat"
	TypeControl = "control"
)

// Outbound message types.
const (
	TypeLog         = "log"
	TypeStats       = "stats"
	TypeThreatAlert = "threat_alert"
)

// Alert levels.
const (
	AlertCritical = "critical"
	AlertSafe     = "safe"
)

// Inbound is one frame received from the client.
type Inbound struct {
	Type string `json:"type"`
	Msg  string `json:"msg,omitempty"`
	Mode string `json:"mode,omitempty"`
}

// Message is one outbound frame.
type Message interface {
	Kind() string
}

// LogMessage carries a reply to the operator.
type LogMessage struct {
	Type string `json:"type"`
	User string `json:"user"`
	Msg  string `json:"msg"`
	IsAI bool   `json:"isAi"`
}

func (m LogMessage) Kind() string { return m.Type }

// StatsMessage carries one telemetry snapshot.
type StatsMessage struct {
	Type string             `json:"type"`
	Data telemetry.Snapshot `json:"data"`
}

func (m StatsMessage) Kind() string { return m.Type }

// AlertMessage raises or clears the client's threat banner.
type AlertMessage struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

func (m AlertMessage) Kind() string { return m.Type }

// NewLog builds a system reply.
func NewLog(msg string) LogMessage {
	return LogMessage{Type: TypeLog, User: "System", Msg: msg, IsAI: true}
}

// NewStats builds a telemetry push.
func NewStats(snap telemetry.Snapshot) StatsMessage {
	return StatsMessage{Type: TypeStats, Data: snap}
}

// NewAlert builds a threat alert.
func NewAlert(level, msg string) AlertMessage {
	return AlertMessage{Type: TypeThreatAlert, Level: level, Msg: msg}
}
