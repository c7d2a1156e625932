package tui

import (
	"io"
	"log"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/deskkeys/internal/keybinds"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// CreateTestModel creates a Model with the default bindings and a quiet dispatcher
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	d := shortcut.NewDispatcher(shortcut.WithLogger(log.New(io.Discard, "", 0)))
	m := New(d, keybinds.NewDefaultRegistry())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// AssertModelField compares a model field with its expected value
func AssertModelField[T comparable](t *testing.T, name string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// SendKeys runs each key message through Update and returns the last command
func SendKeys(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

// Runes builds a key message for typed text
func Runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TypeText sends one key message per character
func TypeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}
