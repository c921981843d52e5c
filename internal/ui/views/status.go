package views

import (
	"fmt"

	"github.com/Cyclone1070/jarvis/internal/ui/models"
	"github.com/Cyclone1070/jarvis/internal/ui/services"
)

// RenderStatus renders the status bar: connection on the left, host stats on the right.
func RenderStatus(s models.State) string {
	var left string
	switch {
	case !s.Connected:
		msg := "Disconnected"
		if s.StatusMsg != "" {
			msg = s.StatusMsg
		}
		left = StatusDisconnectedStyle.Render("● " + msg)
	case s.Waiting:
		left = StatusWaitingStyle.Render(s.Spinner.View() + " Waiting for JARVIS")
	default:
		left = StatusConnectedStyle.Render("● " + s.Endpoint)
	}

	if s.Mode != "" {
		left += StatsStyle.Render("  mode " + s.Mode)
	}
	if s.Stats == nil {
		return left
	}

	right := StatsStyle.Render(fmt.Sprintf("CPU %.1f%%  RAM %.1f%%  ↑ %s  ↓ %s",
		s.Stats.CPU, s.Stats.RAM,
		services.FormatRate(s.Stats.NetSentSpeed),
		services.FormatRate(s.Stats.NetRecvSpeed),
	))
	return left + "  " + right
}
