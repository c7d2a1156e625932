package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the navbar, the page and the status line
func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderNavbar())
	b.WriteString("\n")

	searchBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray)
	if m.focus == FocusSearch {
		searchBox = searchBox.BorderForeground(colorGreen)
	}
	b.WriteString(searchBox.Render(m.search.View()))
	b.WriteString("\n")

	gap := "\n\n"
	if m.compact {
		gap = "\n"
	}

	if m.panel != "" {
		b.WriteString(gap)
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(0, 1).
			Render(styleTitle.Render(m.panel) + "\n" + styleSubtle.Render("Nothing here yet")))
	}

	b.WriteString(gap)
	b.WriteString(styleSubtle.Render("Press Shift+? for keyboard shortcuts, Ctrl+K for the command palette"))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m *Model) renderNavbar() string {
	indicator := func(label string, on bool) string {
		if on {
			return styleSuccess.Render("● " + label)
		}
		return styleSubtle.Render("○ " + label)
	}

	items := []string{
		styleTitle.Render("deskkeys"),
		indicator("Notifications", m.notificationsOpen),
		indicator("Pins", m.pinsVisible),
		indicator("Voice", m.voiceListening),
		indicator("Compact", m.compact),
	}
	return strings.Join(items, "  ")
}

func (m *Model) renderStatusBar() string {
	focus := "Focus: " + m.focus
	if m.errorMsg != "" {
		return styleError.Render(m.errorMsg) + "  " + styleSubtle.Render(focus)
	}
	if m.lastAction == "" {
		return styleSubtle.Render(focus)
	}
	return styleWarning.Render("Last: "+m.lastAction) + "  " + m.statusMsg + "  " + styleSubtle.Render(focus)
}
