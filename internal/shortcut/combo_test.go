package shortcut

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		combo    string
		expected string
		ok       bool
	}{
		{name: "simple ctrl", combo: "Ctrl+K", expected: "ctrl+k", ok: true},
		{name: "cmd alias", combo: "Cmd+K", expected: "meta+k", ok: true},
		{name: "command alias", combo: "command+k", expected: "meta+k", ok: true},
		{name: "super alias", combo: "Super+K", expected: "meta+k", ok: true},
		{name: "key before modifier", combo: "K+Cmd", expected: "meta+k", ok: true},
		{name: "control alias", combo: "Control+s", expected: "ctrl+s", ok: true},
		{name: "option alias", combo: "Option+F", expected: "alt+f", ok: true},
		{name: "modifier order", combo: "Shift+Alt+Meta+Ctrl+P", expected: "ctrl+meta+alt+shift+p", ok: true},
		{name: "duplicate modifiers", combo: "ctrl+Control+k", expected: "ctrl+k", ok: true},
		{name: "whitespace", combo: " Ctrl + K ", expected: "ctrl+k", ok: true},
		{name: "esc alias", combo: "Esc", expected: "escape", ok: true},
		{name: "return alias", combo: "Return", expected: "enter", ok: true},
		{name: "spacebar alias", combo: "Ctrl+Spacebar", expected: "ctrl+space", ok: true},
		{name: "terminal arrow", combo: "alt+up", expected: "alt+arrowup", ok: true},
		{name: "browser arrow", combo: "ArrowDown", expected: "arrowdown", ok: true},
		{name: "question mark", combo: "Shift+?", expected: "shift+?", ok: true},
		{name: "last key wins", combo: "ctrl+a+b", expected: "ctrl+b", ok: true},
		{name: "empty", combo: "", ok: false},
		{name: "only modifiers", combo: "Ctrl+Shift", ok: false},
		{name: "trailing plus", combo: "Ctrl+", ok: false},
		{name: "only separators", combo: "++", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.combo)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.combo, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.combo, got, tt.expected)
			}
		})
	}
}

func TestNormalize_AliasesAreEquivalent(t *testing.T) {
	combos := []string{"Cmd+K", "Meta+K", "K+Cmd", "command+k", "k+super"}

	first, ok := Normalize(combos[0])
	if !ok {
		t.Fatalf("Normalize(%q) failed", combos[0])
	}
	for _, c := range combos[1:] {
		got, ok := Normalize(c)
		if !ok || got != first {
			t.Errorf("Normalize(%q) = %q, want %q", c, got, first)
		}
	}
}

func TestKeyEvent_Combo(t *testing.T) {
	tests := []struct {
		name     string
		event    KeyEvent
		expected string
		ok       bool
	}{
		{name: "ctrl k", event: KeyEvent{Key: "k", Ctrl: true}, expected: "ctrl+k", ok: true},
		{name: "uppercase key", event: KeyEvent{Key: "K", Meta: true}, expected: "meta+k", ok: true},
		{name: "all modifiers", event: KeyEvent{Key: "p", Shift: true, Alt: true, Meta: true, Ctrl: true}, expected: "ctrl+meta+alt+shift+p", ok: true},
		{name: "space", event: KeyEvent{Key: " "}, expected: "space", ok: true},
		{name: "escape", event: KeyEvent{Key: "Escape"}, expected: "escape", ok: true},
		{name: "no key", event: KeyEvent{Ctrl: true}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.event.Combo()
			if ok != tt.ok {
				t.Fatalf("Combo() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("Combo() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEventComboMatchesNormalize(t *testing.T) {
	event := KeyEvent{Key: "P", Ctrl: true, Shift: true}
	combo, _ := event.Combo()
	if want := MustNormalize("Shift+Ctrl+P"); combo != want {
		t.Errorf("event combo %q does not match normalized %q", combo, want)
	}
}

func TestFormatCombo(t *testing.T) {
	if got := FormatCombo("ctrl+shift+p"); got != "CTRL+SHIFT+P" {
		t.Errorf("FormatCombo() = %q, want %q", got, "CTRL+SHIFT+P")
	}
	if got := FormatCombo("escape"); got != "ESCAPE" {
		t.Errorf("FormatCombo() = %q, want %q", got, "ESCAPE")
	}
}

func TestMustNormalize_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid combo")
		}
	}()
	MustNormalize("ctrl+")
}
