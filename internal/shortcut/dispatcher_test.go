package shortcut

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// fakeSource records the listener so tests can emit events
type fakeSource struct {
	listeners []func(*KeyEvent)
}

func (s *fakeSource) OnKeydown(listener func(*KeyEvent)) {
	s.listeners = append(s.listeners, listener)
}

func (s *fakeSource) emit(e *KeyEvent) {
	for _, l := range s.listeners {
		l(e)
	}
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	d := NewDispatcher(WithLogger(log.New(&buf, "", 0)))
	return d, &buf
}

func bodyKeydown(key string, ctrl bool) *KeyEvent {
	return &KeyEvent{Key: key, Ctrl: ctrl, Target: Element{Tag: "BODY"}}
}

func TestDispatcher_RegisterAndFire(t *testing.T) {
	d, _ := newTestDispatcher(t)
	src := &fakeSource{}
	d.Init(src)

	calls := 0
	d.Register("Ctrl+K", func(e *KeyEvent) { calls++ }, "Open palette")

	src.emit(bodyKeydown("k", true))

	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
}

func TestDispatcher_ReRegisterReplacesHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	oldCalls, newCalls := 0, 0
	d.Register("Ctrl+K", func(e *KeyEvent) { oldCalls++ }, "old")
	d.HandleKeydown(bodyKeydown("k", true))

	d.Register("ctrl+k", func(e *KeyEvent) { newCalls++ }, "new")
	d.HandleKeydown(bodyKeydown("k", true))

	if oldCalls != 1 {
		t.Errorf("old handler called %d times, want 1", oldCalls)
	}
	if newCalls != 1 {
		t.Errorf("new handler called %d times, want 1", newCalls)
	}
	if got := len(d.Shortcuts()); got != 1 {
		t.Errorf("registry holds %d entries, want 1", got)
	}
	s, _ := d.Lookup("Ctrl+K")
	if s.Description != "new" {
		t.Errorf("description = %q, want %q", s.Description, "new")
	}
}

func TestDispatcher_EditableTargetSuppresses(t *testing.T) {
	targets := []Element{
		{Tag: "INPUT"},
		{Tag: "TEXTAREA"},
		{Tag: "SELECT"},
		{Tag: "DIV", ContentEditable: true},
		{Tag: "DIV", AriaRole: "textbox"},
	}

	for _, target := range targets {
		t.Run(target.Tag+"/"+target.AriaRole, func(t *testing.T) {
			d, _ := newTestDispatcher(t)
			called := false
			d.Register("Ctrl+K", func(e *KeyEvent) { called = true }, "")

			e := &KeyEvent{Key: "k", Ctrl: true, Target: target}
			if d.HandleKeydown(e) {
				t.Error("HandleKeydown reported handled for editable target")
			}
			if called {
				t.Error("handler fired for editable target")
			}
			if e.DefaultPrevented() {
				t.Error("default prevented for editable target")
			}
		})
	}
}

func TestDispatcher_PreventDefault(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		prevent bool
	}{
		{name: "default", opts: nil, prevent: true},
		{name: "explicit true", opts: []Option{WithPreventDefault(true)}, prevent: true},
		{name: "disabled", opts: []Option{WithPreventDefault(false)}, prevent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDispatcher(t)
			calls := 0
			d.Register("Esc", func(e *KeyEvent) { calls++ }, "close", tt.opts...)

			e := &KeyEvent{Key: "Escape", Target: Element{Tag: "BUTTON"}}
			d.HandleKeydown(e)

			if calls != 1 {
				t.Fatalf("handler called %d times, want 1", calls)
			}
			if e.DefaultPrevented() != tt.prevent {
				t.Errorf("DefaultPrevented() = %v, want %v", e.DefaultPrevented(), tt.prevent)
			}
			if e.PropagationStopped() != tt.prevent {
				t.Errorf("PropagationStopped() = %v, want %v", e.PropagationStopped(), tt.prevent)
			}
		})
	}
}

func TestDispatcher_Unregister(t *testing.T) {
	d, _ := newTestDispatcher(t)
	calls := 0
	d.Register("Cmd+K", func(e *KeyEvent) { calls++ }, "")

	d.Unregister("K+Meta")
	d.HandleKeydown(&KeyEvent{Key: "k", Meta: true})

	if calls != 0 {
		t.Errorf("handler called %d times after unregister, want 0", calls)
	}

	// Unknown and unparsable combos are ignored
	d.Unregister("ctrl+z")
	d.Unregister("")
}

func TestDispatcher_InvalidRegistrationIsLogged(t *testing.T) {
	tests := []struct {
		name    string
		combo   string
		handler Handler
	}{
		{name: "empty combo", combo: "", handler: func(*KeyEvent) {}},
		{name: "modifiers only", combo: "Ctrl+Shift", handler: func(*KeyEvent) {}},
		{name: "nil handler", combo: "Ctrl+K", handler: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, buf := newTestDispatcher(t)
			d.Register(tt.combo, tt.handler, "bad")

			if n := len(d.Shortcuts()); n != 0 {
				t.Errorf("registry holds %d entries, want 0", n)
			}
			if !strings.Contains(buf.String(), "invalid shortcut registration") {
				t.Errorf("expected warning, got %q", buf.String())
			}
		})
	}
}

func TestDispatcher_UnknownComboIgnored(t *testing.T) {
	d, _ := newTestDispatcher(t)
	d.Register("Ctrl+K", func(e *KeyEvent) { t.Error("unexpected call") }, "")

	e := bodyKeydown("j", true)
	if d.HandleKeydown(e) {
		t.Error("HandleKeydown reported handled for unknown combo")
	}
	if e.DefaultPrevented() {
		t.Error("default prevented for unknown combo")
	}
}

func TestDispatcher_InitIsIdempotent(t *testing.T) {
	d, _ := newTestDispatcher(t)
	src := &fakeSource{}
	d.Init(src)
	d.Init(src)
	d.Init(&fakeSource{})

	if len(src.listeners) != 1 {
		t.Fatalf("source has %d listeners, want 1", len(src.listeners))
	}

	calls := 0
	d.Register("a", func(e *KeyEvent) { calls++ }, "")
	src.emit(&KeyEvent{Key: "a"})
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestDispatcher_HandlerPanicPropagates(t *testing.T) {
	d, _ := newTestDispatcher(t)
	d.Register("x", func(e *KeyEvent) { panic("boom") }, "")

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recover() = %v, want boom", r)
		}
	}()
	d.HandleKeydown(&KeyEvent{Key: "x"})
	t.Error("expected panic to propagate")
}

func TestDispatcher_HandlerMayUnregisterItself(t *testing.T) {
	d, _ := newTestDispatcher(t)
	calls := 0
	d.Register("q", func(e *KeyEvent) {
		calls++
		d.Unregister("q")
	}, "")

	d.HandleKeydown(&KeyEvent{Key: "q"})
	d.HandleKeydown(&KeyEvent{Key: "q"})

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestDispatcher_Observer(t *testing.T) {
	d, _ := newTestDispatcher(t)
	var seen []string
	d.AddObserver(func(s Shortcut, e *KeyEvent) {
		seen = append(seen, s.Combo)
	})
	d.Register("Ctrl+K", func(e *KeyEvent) {}, "")

	d.HandleKeydown(bodyKeydown("k", true))
	d.HandleKeydown(&KeyEvent{Key: "k", Ctrl: true, Target: Element{Tag: "INPUT"}})

	if len(seen) != 1 || seen[0] != "ctrl+k" {
		t.Errorf("observer saw %v, want [ctrl+k]", seen)
	}
}

func TestDispatcher_ShowHelpSorted(t *testing.T) {
	d, _ := newTestDispatcher(t)
	var title string
	var rows []HelpRow
	d.SetPresenter(PresenterFunc(func(tl string, r []HelpRow) {
		title = tl
		rows = r
	}))

	noop := func(*KeyEvent) {}
	d.Register("Shift+?", noop, "Help")
	d.Register("Ctrl+K", noop, "Palette")
	d.Register("Alt+N", noop, "Notifications")

	d.ShowHelp()

	if title != HelpTitle {
		t.Errorf("title = %q, want %q", title, HelpTitle)
	}
	want := []string{"alt+n", "ctrl+k", "shift+?"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, combo := range want {
		if rows[i].Combo != combo {
			t.Errorf("row %d combo = %q, want %q", i, rows[i].Combo, combo)
		}
	}
	if rows[1].Display != "CTRL+K" {
		t.Errorf("display = %q, want CTRL+K", rows[1].Display)
	}
}

func TestDefaultDispatcherIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() returned different instances")
	}

	calls := 0
	Register("ctrl+alt+shift+f12", func(e *KeyEvent) { calls++ }, "test")
	t.Cleanup(func() { Unregister("ctrl+alt+shift+f12") })

	Default().HandleKeydown(&KeyEvent{Key: "F12", Ctrl: true, Alt: true, Shift: true})
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestDispatcher_SetLogger(t *testing.T) {
	var first, second bytes.Buffer
	d := NewDispatcher(WithLogger(log.New(&first, "", 0)))

	d.SetLogger(log.New(&second, "", 0))
	d.SetLogger(nil)
	d.Register("ctrl+", func(*KeyEvent) {}, "broken")

	if first.Len() != 0 {
		t.Errorf("old logger got %q", first.String())
	}
	if !strings.Contains(second.String(), "invalid shortcut registration") {
		t.Errorf("new logger got %q", second.String())
	}
}
