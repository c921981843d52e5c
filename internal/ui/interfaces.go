package ui

import "github.com/Cyclone1070/jarvis/internal/client"

// Connection is the agent session the console drives. *client.Client
// satisfies it.
type Connection interface {
	Frames() <-chan client.Frame
	Err() error
	Chat(msg string) error
	SetMode(mode string) error
}
