package views

import (
	"github.com/Cyclone1070/jarvis/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State) string {
	var sections []string
	if alert := RenderAlert(s); alert != "" {
		sections = append(sections, alert)
	}
	sections = append(sections, RenderChat(s))
	if approval := RenderApproval(s); approval != "" {
		sections = append(sections, approval)
	} else {
		sections = append(sections, RenderInput(s))
	}
	sections = append(sections, RenderStatus(s))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
