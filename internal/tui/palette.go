package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// paletteItem is one command listed in the palette
type paletteItem struct {
	Combo       string
	Description string
}

// paletteItems implements fuzzy.Source over descriptions and combos
type paletteItems []paletteItem

func (p paletteItems) String(i int) string {
	return p[i].Description + " " + shortcut.FormatCombo(p[i].Combo)
}

func (p paletteItems) Len() int {
	return len(p)
}

type paletteState struct {
	input    textinput.Model
	items    paletteItems
	filtered []int
	index    int
}

func newPaletteState() *paletteState {
	input := textinput.New()
	input.Placeholder = "Type a command"
	input.Prompt = "> "
	return &paletteState{input: input}
}

// load lists every registered shortcut and resets the filter
func (p *paletteState) load(shortcuts []shortcut.Shortcut) {
	p.items = p.items[:0]
	for _, s := range shortcuts {
		p.items = append(p.items, paletteItem{Combo: s.Combo, Description: s.Description})
	}
	p.input.SetValue("")
	p.refilter()
}

func (p *paletteState) refilter() {
	p.index = 0
	p.filtered = p.filtered[:0]

	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		for i := range p.items {
			p.filtered = append(p.filtered, i)
		}
		return
	}

	for _, match := range fuzzy.FindFrom(query, p.items) {
		p.filtered = append(p.filtered, match.Index)
	}
}

// selected returns the highlighted item
func (p *paletteState) selected() (paletteItem, bool) {
	if p.index < 0 || p.index >= len(p.filtered) {
		return paletteItem{}, false
	}
	return p.items[p.filtered[p.index]], true
}

func (m *Model) openPalette() {
	if m.mode == ModePalette {
		return
	}
	m.palette.load(m.dispatcher.Shortcuts())
	m.mode = ModePalette
	m.pendingCmd = m.palette.input.Focus()
}

func (m *Model) closePalette() {
	if m.mode != ModePalette {
		return
	}
	m.palette.input.Blur()
	m.mode = ModeNormal
}

// runSelected closes the palette and dispatches the chosen shortcut
// as if its combo was pressed on the page
func (m *Model) runSelected() tea.Cmd {
	item, ok := m.palette.selected()
	m.closePalette()
	if !ok {
		return nil
	}

	event, ok := shortcut.EventFor(item.Combo, pageTarget)
	if !ok {
		m.errorMsg = fmt.Sprintf("%q is not a valid combo", item.Combo)
		return nil
	}

	m.fired = nil
	m.pendingCmd = nil
	if !m.dispatcher.HandleKeydown(event) {
		m.errorMsg = fmt.Sprintf("%s is no longer bound", shortcut.FormatCombo(item.Combo))
		return nil
	}
	return m.pendingCmd
}

func (m *Model) handlePaletteKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePalette()
		return nil
	case tea.KeyEnter:
		return m.runSelected()
	case tea.KeyUp, tea.KeyCtrlP:
		if m.palette.index > 0 {
			m.palette.index--
		}
		return nil
	case tea.KeyDown, tea.KeyCtrlN:
		if m.palette.index < len(m.palette.filtered)-1 {
			m.palette.index++
		}
		return nil
	}

	var cmd tea.Cmd
	m.palette.input, cmd = m.palette.input.Update(msg)
	m.palette.refilter()
	return cmd
}

// renderPalette renders the command palette centered on screen
func (m *Model) renderPalette() string {
	var content strings.Builder
	content.WriteString(styleTitle.Render("Command Palette"))
	content.WriteString("\n\n")
	content.WriteString(m.palette.input.View())
	content.WriteString("\n\n")

	if len(m.palette.filtered) == 0 {
		content.WriteString(styleSubtle.Render("No matching commands"))
	}

	start := 0
	if m.palette.index >= PaletteMaxItems {
		start = m.palette.index - PaletteMaxItems + 1
	}
	for i := start; i < len(m.palette.filtered) && i < start+PaletteMaxItems; i++ {
		item := m.palette.items[m.palette.filtered[i]]
		line := fmt.Sprintf("%-36s %s", item.Description, styleSubtle.Render(shortcut.FormatCombo(item.Combo)))
		if i == m.palette.index {
			line = styleSelected.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		content.WriteString(line + "\n")
	}

	content.WriteString("\n" + styleSubtle.Render("↑/↓: select | Enter: run | ESC: close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(PaletteWidth).
		Padding(1, 2).
		Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
