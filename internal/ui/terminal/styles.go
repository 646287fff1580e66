package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"focusflow/internal/core/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder())

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("252"))

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	noticeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
)

// phaseColors follow the desktop palette: red focus, green short break,
// blue long break.
var phaseColors = map[engine.Phase]lipgloss.Color{
	engine.Focus:      lipgloss.Color("#EF4444"),
	engine.ShortBreak: lipgloss.Color("#10B981"),
	engine.LongBreak:  lipgloss.Color("#3B82F6"),
}
