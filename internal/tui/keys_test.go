package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyEventFromMsg(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		wantCombo string
	}{
		{"plain rune", Runes("k"), "k"},
		{"uppercase rune adds shift", Runes("K"), "shift+k"},
		{"question mark adds shift", Runes("?"), "shift+?"},
		{"slash", Runes("/"), "/"},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true}, "alt+n"},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlK}, "ctrl+k"},
		{"ctrl c", tea.KeyMsg{Type: tea.KeyCtrlC}, "ctrl+c"},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, "escape"},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "enter"},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, "space"},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, "arrowup"},
		{"alt arrow", tea.KeyMsg{Type: tea.KeyUp, Alt: true}, "alt+arrowup"},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+tab"},
		{"ctrl shift arrow", tea.KeyMsg{Type: tea.KeyCtrlShiftUp}, "ctrl+shift+arrowup"},
		{"page up", tea.KeyMsg{Type: tea.KeyPgUp}, "pageup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, ok := KeyEventFromMsg(tt.msg).Combo()
			if !ok {
				t.Fatalf("Combo() returned no combo for %q", tt.msg.String())
			}
			if combo != tt.wantCombo {
				t.Errorf("combo = %q, want %q", combo, tt.wantCombo)
			}
		})
	}
}

func TestKeySource_EmitWithoutListener(t *testing.T) {
	s := &keySource{}
	s.emit(KeyEventFromMsg(Runes("k")))
}
