package shortcut

import (
	"sort"
	"strings"
)

// Modifier names in canonical order.
const (
	ModCtrl  = "ctrl"
	ModMeta  = "meta"
	ModAlt   = "alt"
	ModShift = "shift"
)

// modifierOrder defines the position of each modifier in a normalized combo
var modifierOrder = map[string]int{
	ModCtrl:  0,
	ModMeta:  1,
	ModAlt:   2,
	ModShift: 3,
}

// modifierAliases maps user-facing modifier names to canonical ones
var modifierAliases = map[string]string{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
}

// keyAliases maps key names reported by browsers and terminals to canonical ones
var keyAliases = map[string]string{
	"esc":      "escape",
	" ":        "space",
	"spacebar": "space",
	"return":   "enter",
	"up":       "arrowup",
	"down":     "arrowdown",
	"left":     "arrowleft",
	"right":    "arrowright",
	"pgup":     "pageup",
	"pgdown":   "pagedown",
	"pgdn":     "pagedown",
	"del":      "delete",
}

// NormalizeKey lower-cases a key name and resolves aliases.
// Returns "" for an empty key.
func NormalizeKey(key string) string {
	if key == "" {
		return ""
	}
	lower := strings.ToLower(key)
	if mapped, ok := keyAliases[lower]; ok {
		return mapped
	}
	return lower
}

// IsModifier reports whether name is a canonical modifier name.
func IsModifier(name string) bool {
	_, ok := modifierOrder[name]
	return ok
}

// Normalize converts a human combo like "Ctrl+Shift+P" into its canonical form.
// The second return value is false when the combo is empty or has no primary key.
func Normalize(combo string) (string, bool) {
	if combo == "" {
		return "", false
	}

	modifiers := make(map[string]bool)
	key := ""

	for _, part := range strings.Split(combo, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if mod, ok := modifierAliases[part]; ok {
			modifiers[mod] = true
			continue
		}
		// Later keys replace earlier ones
		key = NormalizeKey(part)
	}

	if key == "" {
		return "", false
	}

	return join(modifiers, key), true
}

// MustNormalize normalizes a combo and panics if it is invalid.
// Use only for known-valid combos in initialization code.
func MustNormalize(combo string) string {
	normalized, ok := Normalize(combo)
	if !ok {
		panic("invalid shortcut combo: " + combo)
	}
	return normalized
}

// join orders modifiers canonically and appends the primary key
func join(modifiers map[string]bool, key string) string {
	parts := make([]string, 0, len(modifiers)+1)
	for mod := range modifiers {
		parts = append(parts, mod)
	}
	sort.Slice(parts, func(i, j int) bool {
		return modifierOrder[parts[i]] < modifierOrder[parts[j]]
	})
	return strings.Join(append(parts, key), "+")
}

// FormatCombo returns the display form of a normalized combo ("CTRL+K").
func FormatCombo(combo string) string {
	parts := strings.Split(combo, "+")
	for i, part := range parts {
		parts[i] = strings.ToUpper(part)
	}
	return strings.Join(parts, "+")
}
