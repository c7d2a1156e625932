package keybinds

import (
	"fmt"
	"sort"
	"strings"

	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// Binding maps a normalized combo to an action
type Binding struct {
	Combo          string
	Action         Action
	Description    string
	PreventDefault bool
}

// Registry holds keybindings keyed by normalized combo
type Registry struct {
	// bindings maps normalized combo -> binding
	bindings map[string]Binding
}

// NewRegistry creates an empty keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[string]Binding),
	}
}

// Register binds combo to action with the action's default description.
// A later registration for the same combo replaces the earlier one.
func (r *Registry) Register(combo string, action Action) error {
	return r.RegisterBinding(Binding{
		Combo:          combo,
		Action:         action,
		PreventDefault: true,
	})
}

// RegisterMultiple registers several combos for the same action
func (r *Registry) RegisterMultiple(combos []string, action Action) error {
	for _, combo := range combos {
		if err := r.Register(combo, action); err != nil {
			return err
		}
	}
	return nil
}

// RegisterBinding adds b after normalizing its combo
func (r *Registry) RegisterBinding(b Binding) error {
	normalized, ok := shortcut.Normalize(b.Combo)
	if !ok {
		return fmt.Errorf("invalid combo %q", b.Combo)
	}
	if b.Action == "" {
		return fmt.Errorf("combo %q: action cannot be empty", b.Combo)
	}
	b.Combo = normalized
	if b.Description == "" {
		b.Description = b.Action.Description()
	}
	r.bindings[normalized] = b
	return nil
}

// Unregister removes the binding for combo
func (r *Registry) Unregister(combo string) {
	if normalized, ok := shortcut.Normalize(combo); ok {
		delete(r.bindings, normalized)
	}
}

// Match returns the action bound to combo
func (r *Registry) Match(combo string) (Action, bool) {
	normalized, ok := shortcut.Normalize(combo)
	if !ok {
		return "", false
	}
	b, ok := r.bindings[normalized]
	return b.Action, ok
}

// HasBinding checks if combo is bound
func (r *Registry) HasBinding(combo string) bool {
	_, ok := r.Match(combo)
	return ok
}

// GetBinding returns the sorted combos bound to action
func (r *Registry) GetBinding(action Action) []string {
	var combos []string
	for combo, b := range r.bindings {
		if b.Action == action {
			combos = append(combos, combo)
		}
	}
	sort.Strings(combos)
	return combos
}

// GetBindingString returns a human-readable list of combos bound to action
func (r *Registry) GetBindingString(action Action) string {
	combos := r.GetBinding(action)
	if len(combos) == 0 {
		return "unbound"
	}
	for i, c := range combos {
		combos[i] = shortcut.FormatCombo(c)
	}
	return strings.Join(combos, ", ")
}

// ListBindings returns all bindings sorted by combo
func (r *Registry) ListBindings() []Binding {
	bindings := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		bindings = append(bindings, b)
	}
	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].Combo < bindings[j].Combo
	})
	return bindings
}

// Len returns the number of bindings
func (r *Registry) Len() int {
	return len(r.bindings)
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	for combo, b := range r.bindings {
		clone.bindings[combo] = b
	}
	return clone
}

// Merge combines bindings from another registry, with other taking precedence
func (r *Registry) Merge(other *Registry) {
	for combo, b := range other.bindings {
		r.bindings[combo] = b
	}
}
