package keybinds

import (
	"sort"

	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// Handlers maps actions to the widget callbacks that perform them
type Handlers map[Action]shortcut.Handler

// Bind registers every binding whose action has a handler on the dispatcher.
// It returns the actions that had bindings but no handler, sorted.
func Bind(d *shortcut.Dispatcher, registry *Registry, handlers Handlers) []Action {
	missing := make(map[Action]bool)

	for _, b := range registry.ListBindings() {
		h, ok := handlers[b.Action]
		if !ok || h == nil {
			missing[b.Action] = true
			continue
		}
		d.Register(b.Combo, h, b.Description, shortcut.WithPreventDefault(b.PreventDefault))
	}

	unbound := make([]Action, 0, len(missing))
	for a := range missing {
		unbound = append(unbound, a)
	}
	sort.Slice(unbound, func(i, j int) bool { return unbound[i] < unbound[j] })
	return unbound
}

// ActionFor returns the action bound to a fired shortcut
func (r *Registry) ActionFor(s shortcut.Shortcut) Action {
	if b, ok := r.bindings[s.Combo]; ok {
		return b.Action
	}
	return ""
}
