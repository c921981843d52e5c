package views

import (
	"github.com/Cyclone1070/jarvis/internal/session"
	"github.com/Cyclone1070/jarvis/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderAlert renders the threat banner, or nothing when there is no alert.
func RenderAlert(s models.State) string {
	if s.Alert == nil {
		return ""
	}
	style := SafeBannerStyle
	text := "✔ " + s.Alert.Msg
	if s.Alert.Level == session.AlertCritical {
		style = CriticalBannerStyle
		text = "⚠ THREAT: " + s.Alert.Msg
	}
	if s.Width > 0 {
		style = style.Width(s.Width)
	}
	return style.Render(text)
}

// RenderApproval renders the approval prompt box.
func RenderApproval(s models.State) string {
	if s.PendingApproval == nil {
		return ""
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Approval required"),
		s.PendingApproval.Prompt,
		"",
		lipgloss.NewStyle().Faint(true).Render("y: approve  n: cancel"),
	)
	return ApprovalBoxStyle.Render(content)
}
