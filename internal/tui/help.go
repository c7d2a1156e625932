package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// presentHelp is the dispatcher's help presenter: it opens the help overlay
func (m *Model) presentHelp(title string, rows []shortcut.HelpRow) {
	m.helpRows = rows
	m.palette.input.Blur()
	m.mode = ModeHelp
	m.resizeHelpView()
	m.helpView.SetContent(shortcut.RenderTable(rows))
	m.helpView.GotoTop()
}

func (m *Model) resizeHelpView() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.helpView.Width = m.width - HelpViewWidthOffset
	m.helpView.Height = m.height - ContentOffsetHelp
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeNormal
		return nil
	case "ctrl+c":
		m.quitting = true
		return tea.Quit
	case "ctrl+y":
		text := shortcut.HelpTitle + "\n" + shortcut.RenderTable(m.helpRows)
		if err := clipboard.WriteAll(text); err != nil {
			m.errorMsg = fmt.Sprintf("Failed to copy: %v", err)
		} else {
			m.statusMsg = "Shortcut table copied to clipboard"
		}
		return nil
	}

	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}

// renderHelp renders the help overlay
func (m *Model) renderHelp() string {
	title := styleTitle.Render(shortcut.HelpTitle)
	footer := styleSubtle.Render("↑/↓ j/k: scroll | Ctrl+Y: copy | ESC/?: close")

	fullContent := title + "\n\n" + m.helpView.View() + "\n\n" + footer

	helpView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - ModalWidthMarginNarrow).
		Height(m.height - ModalHeightMarginMed).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpView,
	)
}
