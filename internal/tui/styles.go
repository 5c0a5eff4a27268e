package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/hypract/internal/ranker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	titleTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	activityBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("◆")
	workspaceBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("▪")
)

func badge(k ranker.Kind) string {
	if k == ranker.KindActivity {
		return activityBadge
	}
	return workspaceBadge
}

// renderStatusBar renders the top bar with the current context.
func renderStatusBar(status string, width int) string {
	text := titleStyle.Render("hypract")
	if status != "" {
		text += " " + status
	}
	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250"))
	return style.Render(text)
}

// renderHelpBar renders the bottom keybinding bar.
func renderHelpBar(width int) string {
	help := "↑/↓ ctrl-p/ctrl-n: move  enter: switch  esc/ctrl-c: quit"
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
