package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Urgency colors
	OverdueColor  = lipgloss.Color("#FF6B6B") // Red
	DueTodayColor = lipgloss.Color("#FFE66D") // Yellow
	UpcomingColor = lipgloss.Color("#4ECDC4") // Teal

	// Progress tier colors, matching the web client's thresholds
	ProgressLow  = lipgloss.Color("#FF6B6B") // < 30%
	ProgressMid  = lipgloss.Color("#FFE66D") // < 70%
	ProgressHigh = lipgloss.Color("#95E1A3") // >= 70%

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	TaskPaneStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	OverdueStyle  = lipgloss.NewStyle().Foreground(OverdueColor).Bold(true)
	DueTodayStyle = lipgloss.NewStyle().Foreground(DueTodayColor).Bold(true)
	UpcomingStyle = lipgloss.NewStyle().Foreground(UpcomingColor)
)

// progressStyle picks the color tier for a completion percentage
func progressStyle(pct int) lipgloss.Style {
	switch {
	case pct < 30:
		return lipgloss.NewStyle().Foreground(ProgressLow)
	case pct < 70:
		return lipgloss.NewStyle().Foreground(ProgressMid)
	default:
		return lipgloss.NewStyle().Foreground(ProgressHigh)
	}
}
