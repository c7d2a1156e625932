package shortcut

import "strings"

// KeyEvent is a single keydown delivered to the dispatcher.
type KeyEvent struct {
	Key    string
	Ctrl   bool
	Meta   bool
	Alt    bool
	Shift  bool
	Target Target

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the host's default action for this key as cancelled.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation stops the event from reaching other listeners.
func (e *KeyEvent) StopPropagation() {
	e.propagationStopped = true
}

func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *KeyEvent) PropagationStopped() bool {
	return e.propagationStopped
}

// Combo builds the normalized combo for this event.
// Returns false when the event carries no key.
func (e *KeyEvent) Combo() (string, bool) {
	key := NormalizeKey(e.Key)
	if key == "" {
		return "", false
	}

	modifiers := make(map[string]bool, 4)
	if e.Ctrl {
		modifiers[ModCtrl] = true
	}
	if e.Meta {
		modifiers[ModMeta] = true
	}
	if e.Alt {
		modifiers[ModAlt] = true
	}
	if e.Shift {
		modifiers[ModShift] = true
	}

	return join(modifiers, key), true
}

// EventFor builds the keydown that produces combo on target.
// Returns false when combo is not a valid combo.
func EventFor(combo string, target Target) (*KeyEvent, bool) {
	normalized, ok := Normalize(combo)
	if !ok {
		return nil, false
	}

	parts := strings.Split(normalized, "+")
	event := &KeyEvent{Key: parts[len(parts)-1], Target: target}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case ModCtrl:
			event.Ctrl = true
		case ModMeta:
			event.Meta = true
		case ModAlt:
			event.Alt = true
		case ModShift:
			event.Shift = true
		}
	}
	return event, true
}

// Source delivers keydown events to a single listener.
type Source interface {
	OnKeydown(listener func(*KeyEvent))
}
