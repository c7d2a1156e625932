package tui

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// Characters a US keyboard produces with shift held. Terminals report the
// character only, so the shift flag is restored here.
const shiftedSymbols = "~!@#$%^&*()_{}|:\"<>?"

var (
	pageTarget   = shortcut.Element{Tag: "BODY"}
	searchTarget = shortcut.Element{Tag: "INPUT", AriaRole: "searchbox"}
	paletteInput = shortcut.Element{Tag: "INPUT", AriaRole: "combobox"}
)

// keySource feeds converted key messages to the dispatcher's listener
type keySource struct {
	listener func(*shortcut.KeyEvent)
}

func (s *keySource) OnKeydown(listener func(*shortcut.KeyEvent)) {
	s.listener = listener
}

func (s *keySource) emit(event *shortcut.KeyEvent) {
	if s.listener != nil {
		s.listener(event)
	}
}

// KeyEventFromMsg converts a bubbletea key message to a keydown without target.
func KeyEventFromMsg(msg tea.KeyMsg) *shortcut.KeyEvent {
	event := &shortcut.KeyEvent{}

	if msg.Type == tea.KeyRunes {
		event.Alt = msg.Alt
		key := string(msg.Runes)
		if len(msg.Runes) == 1 {
			r := msg.Runes[0]
			switch {
			case unicode.IsUpper(r):
				key = string(unicode.ToLower(r))
				event.Shift = true
			case strings.ContainsRune(shiftedSymbols, r):
				event.Shift = true
			}
		}
		event.Key = key
		return event
	}

	parts := strings.Split(msg.String(), "+")
	key := parts[len(parts)-1]
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			event.Ctrl = true
		case "alt":
			event.Alt = true
		case "shift":
			event.Shift = true
		}
	}
	event.Key = key
	return event
}

// target returns the element holding focus
func (m *Model) target() shortcut.Target {
	switch {
	case m.mode == ModePalette:
		return paletteInput
	case m.focus == FocusSearch:
		return searchTarget
	default:
		return pageTarget
	}
}

// handleKeyPress hands the key to the dispatcher, then to the focused widget
// when no shortcut fired.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	m.pendingCmd = nil
	m.fired = nil

	if m.mode == ModeHelp {
		return m.handleHelpKeys(msg)
	}

	event := KeyEventFromMsg(msg)
	event.Target = m.target()
	m.source.emit(event)

	if m.fired != nil {
		return m.pendingCmd
	}

	// Always give a way out, even while typing
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return tea.Quit
	}

	switch {
	case m.mode == ModePalette:
		return m.handlePaletteKeys(msg)
	case m.focus == FocusSearch:
		return m.handleSearchKeys(msg)
	default:
		return m.handlePageKeys(msg)
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.blurSearch()
		return nil
	case tea.KeyEnter:
		if q := m.search.Value(); q != "" {
			m.statusMsg = "Searching for " + q
		}
		m.blurSearch()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) handlePageKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab:
		m.focusSearch()
		return m.pendingCmd
	case tea.KeyEsc:
		m.panel = ""
	}
	return nil
}
