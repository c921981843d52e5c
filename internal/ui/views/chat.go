package views

import (
	"strings"

	"github.com/Cyclone1070/jarvis/internal/ui/models"
	"github.com/Cyclone1070/jarvis/internal/ui/services"
)

// RenderChat renders the transcript viewport.
func RenderChat(s models.State) string {
	if len(s.Messages) == 0 {
		return SystemMessageStyle.Render("Connected. Ask JARVIS something, or type /help.")
	}
	return s.Viewport.View()
}

// FormatChatContent formats the transcript for the viewport.
func FormatChatContent(messages []models.Message, width int, renderer services.MarkdownRenderer) string {
	var lines []string
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleUser:
			lines = append(lines, UserMessageStyle.Render("You: "+msg.Content))
		case models.RoleAlert:
			lines = append(lines, AlertMessageStyle.Render("! "+msg.Content))
		case models.RoleSystem:
			lines = append(lines, SystemMessageStyle.Render(msg.Content))
		default:
			rendered, err := services.RenderMarkdown(msg.Content, width, renderer)
			if err != nil {
				lines = append(lines, AgentMessageStyle.Render("JARVIS: "+msg.Content))
			} else {
				lines = append(lines, AgentMessageStyle.Render(rendered))
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
