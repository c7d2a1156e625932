package tui

import (
	"io"
	"log"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/deskkeys/internal/keybinds"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

func TestNew_InitializesDefaultMode(t *testing.T) {
	m := CreateTestModel(t)

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "focus", m.focus, FocusPage)
	AssertModelField(t, "errorMsg", m.errorMsg, "")
	AssertModelField(t, "registered", len(m.dispatcher.Shortcuts()), m.registry.Len())
}

func TestShortcutFiresOnPage(t *testing.T) {
	m := CreateTestModel(t)

	SendKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true})

	AssertModelField(t, "notificationsOpen", m.notificationsOpen, true)
	AssertModelField(t, "lastAction", m.LastAction(), string(keybinds.ActionNotifications))
	if !strings.Contains(m.View(), "Last: notifications.toggle") {
		t.Error("status line should show the last action")
	}

	SendKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true})
	AssertModelField(t, "notificationsOpen", m.notificationsOpen, false)
}

func TestSearchFocusSuppressesShortcuts(t *testing.T) {
	m := CreateTestModel(t)

	SendKeys(m, Runes("/"))
	AssertModelField(t, "focus", m.focus, FocusSearch)

	// Typed into the box instead of toggling widgets
	SendKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true})
	AssertModelField(t, "notificationsOpen", m.notificationsOpen, false)

	SendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	AssertModelField(t, "mode", m.mode, ModeNormal)

	TypeText(m, "report/")
	AssertModelField(t, "search", m.search.Value(), "report/")
	AssertModelField(t, "focus", m.focus, FocusSearch)

	SendKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	AssertModelField(t, "focus", m.focus, FocusPage)

	SendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	AssertModelField(t, "mode", m.mode, ModePalette)
}

func TestPalette_FilterAndRun(t *testing.T) {
	m := CreateTestModel(t)

	SendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	AssertModelField(t, "mode", m.mode, ModePalette)
	AssertModelField(t, "items", len(m.palette.filtered), m.registry.Len())

	TypeText(m, "notif")
	if len(m.palette.filtered) == 0 {
		t.Fatal("expected a match for notif")
	}
	item, _ := m.palette.selected()
	AssertModelField(t, "selected", item.Combo, "alt+n")

	SendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "notificationsOpen", m.notificationsOpen, true)
	AssertModelField(t, "lastAction", m.LastAction(), string(keybinds.ActionNotifications))
}

func TestPalette_EscapeCloses(t *testing.T) {
	m := CreateTestModel(t)

	SendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	TypeText(m, "zzzz")
	AssertModelField(t, "filtered", len(m.palette.filtered), 0)
	if !strings.Contains(m.View(), "No matching commands") {
		t.Error("empty palette should say so")
	}

	SendKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestHelpOverlay(t *testing.T) {
	m := CreateTestModel(t)

	SendKeys(m, Runes("?"))
	AssertModelField(t, "mode", m.mode, ModeHelp)
	AssertModelField(t, "rows", len(m.helpRows), len(m.dispatcher.Shortcuts()))

	for i := 1; i < len(m.helpRows); i++ {
		if m.helpRows[i-1].Combo > m.helpRows[i].Combo {
			t.Fatalf("help rows not sorted: %q before %q", m.helpRows[i-1].Combo, m.helpRows[i].Combo)
		}
	}

	view := m.View()
	for _, want := range []string{"Keyboard Shortcuts", "CTRL+K", "Open command palette"} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q", want)
		}
	}

	// Shortcuts stay silent behind the overlay
	SendKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}, Alt: true})
	AssertModelField(t, "pinsVisible", m.pinsVisible, false)

	SendKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestPanelsToggle(t *testing.T) {
	m := CreateTestModel(t)

	SendKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}, Alt: true})
	AssertModelField(t, "panel", m.panel, "Recent history")

	SendKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	AssertModelField(t, "panel", m.panel, "Quick create")

	SendKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	AssertModelField(t, "panel", m.panel, "")
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Model)
	}{
		{"from page", func(m *Model) {}},
		{"from search", func(m *Model) { SendKeys(m, Runes("/")) }},
		{"from palette", func(m *Model) { SendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlK}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CreateTestModel(t)
			tt.setup(m)

			cmd := SendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlC})
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			AssertModelField(t, "quitting", m.quitting, true)
		})
	}
}

func TestNew_ReportsActionsWithoutWidget(t *testing.T) {
	registry := keybinds.NewDefaultRegistry()
	if err := registry.Register("alt+x", keybinds.Action("custom.export")); err != nil {
		t.Fatal(err)
	}

	d := shortcut.NewDispatcher(shortcut.WithLogger(log.New(io.Discard, "", 0)))
	m := New(d, registry)
	if !strings.Contains(m.errorMsg, "custom.export") {
		t.Errorf("errorMsg = %q, want mention of custom.export", m.errorMsg)
	}
}

func TestPalette_RunNotifiesObservers(t *testing.T) {
	m := CreateTestModel(t)

	var seen []string
	m.dispatcher.AddObserver(func(s shortcut.Shortcut, e *shortcut.KeyEvent) {
		seen = append(seen, s.Combo)
		if !e.DefaultPrevented() {
			t.Error("palette run should prevent the default like a keypress")
		}
	})

	SendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	TypeText(m, "notif")
	SendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(seen) != 1 || seen[0] != "alt+n" {
		t.Errorf("observed %v, want [alt+n]", seen)
	}
	if !strings.Contains(m.statusMsg, "ALT+N") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}
