package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary  = lipgloss.Color("39")
	ColorDanger   = lipgloss.Color("196")
	ColorSafe     = lipgloss.Color("42")
	ColorWarning  = lipgloss.Color("214")
	ColorDim      = lipgloss.Color("241")
	ColorBannerFg = lipgloss.Color("230")

	UserMessageStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	AgentMessageStyle  = lipgloss.NewStyle()
	SystemMessageStyle = lipgloss.NewStyle().Foreground(ColorDim).Italic(true)
	AlertMessageStyle  = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)

	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)

	StatusConnectedStyle    = lipgloss.NewStyle().Foreground(ColorSafe)
	StatusDisconnectedStyle = lipgloss.NewStyle().Foreground(ColorDanger)
	StatusWaitingStyle      = lipgloss.NewStyle().Foreground(ColorPrimary)
	StatsStyle              = lipgloss.NewStyle().Foreground(ColorDim)

	CriticalBannerStyle = lipgloss.NewStyle().
				Background(ColorDanger).
				Foreground(ColorBannerFg).
				Bold(true).
				Padding(0, 1)
	SafeBannerStyle = lipgloss.NewStyle().
			Background(ColorSafe).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	ApprovalBoxStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.DoubleBorder()).
				BorderForeground(ColorWarning).
				Padding(0, 1)
)
