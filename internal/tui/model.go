package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/deskkeys/internal/keybinds"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModePalette
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	dispatcher *shortcut.Dispatcher
	registry   *keybinds.Registry
	source     *keySource

	mode   Mode
	focus  string
	width  int
	height int

	search textinput.Model

	palette *paletteState

	helpRows []shortcut.HelpRow
	helpView viewport.Model

	// Navbar widget state
	notificationsOpen bool
	pinsVisible       bool
	voiceListening    bool
	compact           bool
	panel             string

	// Set by the dispatcher observer while a keydown is processed
	fired      *shortcut.Shortcut
	lastAction string
	statusMsg  string
	errorMsg   string

	pendingCmd tea.Cmd
	quitting   bool
}

// New creates a TUI model wired to d. Every binding in registry whose action
// the desk implements is registered on d.
func New(d *shortcut.Dispatcher, registry *keybinds.Registry) *Model {
	search := textinput.New()
	search.Placeholder = "Search (press / to focus)"
	search.Prompt = "🔍 "
	search.CharLimit = 200

	m := &Model{
		dispatcher: d,
		registry:   registry,
		source:     &keySource{},
		mode:       ModeNormal,
		focus:      FocusPage,
		search:     search,
		palette:    newPaletteState(),
		helpView:   viewport.New(80, 20),
	}

	d.SetPresenter(shortcut.PresenterFunc(m.presentHelp))
	d.AddObserver(m.observe)

	if unbound := keybinds.Bind(d, registry, m.handlers()); len(unbound) > 0 {
		m.errorMsg = fmt.Sprintf("No desk widget for: %v", unbound)
	}
	d.Init(m.source)

	return m
}

// handlers maps each desk action to the widget callback performing it
func (m *Model) handlers() keybinds.Handlers {
	return keybinds.Handlers{
		keybinds.ActionCommandPalette:      func(*shortcut.KeyEvent) { m.openPalette() },
		keybinds.ActionCommandPaletteClose: func(*shortcut.KeyEvent) { m.closePalette() },
		keybinds.ActionShowHelp:            func(*shortcut.KeyEvent) { m.dispatcher.ShowHelp() },
		keybinds.ActionFocusSearch:         func(*shortcut.KeyEvent) { m.focusSearch() },
		keybinds.ActionNotifications: func(*shortcut.KeyEvent) {
			m.notificationsOpen = !m.notificationsOpen
		},
		keybinds.ActionPins: func(*shortcut.KeyEvent) {
			m.pinsVisible = !m.pinsVisible
		},
		keybinds.ActionVoiceSearch: func(*shortcut.KeyEvent) {
			m.voiceListening = !m.voiceListening
		},
		keybinds.ActionDensityToggle: func(*shortcut.KeyEvent) {
			m.compact = !m.compact
		},
		keybinds.ActionSavedSearches: func(*shortcut.KeyEvent) { m.togglePanel("Saved searches") },
		keybinds.ActionHistory:       func(*shortcut.KeyEvent) { m.togglePanel("Recent history") },
		keybinds.ActionQuickCreate:   func(*shortcut.KeyEvent) { m.togglePanel("Quick create") },
		keybinds.ActionQuit: func(*shortcut.KeyEvent) {
			m.quitting = true
			m.pendingCmd = tea.Quit
		},
	}
}

// observe records the shortcut that fired for the status line
func (m *Model) observe(s shortcut.Shortcut, _ *shortcut.KeyEvent) {
	fired := s
	m.fired = &fired
	m.lastAction = string(m.registry.ActionFor(s))
	if m.lastAction == "" {
		m.lastAction = s.Combo
	}
	m.statusMsg = fmt.Sprintf("%s (%s)", s.Description, shortcut.FormatCombo(s.Combo))
}

func (m *Model) focusSearch() {
	m.focus = FocusSearch
	m.pendingCmd = m.search.Focus()
}

func (m *Model) blurSearch() {
	m.focus = FocusPage
	m.search.Blur()
}

func (m *Model) togglePanel(name string) {
	if m.panel == name {
		m.panel = ""
		return
	}
	m.panel = name
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeHelpView()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)
	}

	return m, nil
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case ModePalette:
		return m.renderPalette()
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// LastAction returns the action of the most recent fired shortcut
func (m *Model) LastAction() string {
	return m.lastAction
}
