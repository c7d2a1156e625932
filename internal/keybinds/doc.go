/*
Package keybinds maps keyboard shortcuts to named desk actions.

# Overview

Desk widgets (command palette, help, search, notifications, pins, saved
searches, voice search, history, quick create, density) expose their entry
points as Actions. The keybinds package decides which combo triggers which
action and binds them onto a shortcut.Dispatcher.

# Components

Registry (registry.go):
  - Normalized combo -> binding table
  - Last registration for a combo wins
  - Lookup by combo or by action

Validator (validator.go):
  - Rejects combos without a key and unknown actions
  - Warns when a later entry replaces an earlier one with the same combo
  - Warns when reserved keys (ctrl+c) are rebound

Defaults (defaults.go):
  - Ctrl+K / Cmd+K command palette, Shift+? help, / search, Alt+<letter>
    for the navbar widgets

# Configuration File Format

Keybinds are stored as YAML, JSON or JSONC (JSON with comments):

	version: "1.0"
	shortcuts:
	  - combo: Ctrl+K
	    action: command_palette.open
	  - combo: Esc
	    action: command_palette.close
	    preventDefault: false
	  - combo: Alt+N
	    action: notifications.toggle
	    description: Show notifications

Combos are normalized on load, so "Cmd+K" and "K+Meta" name the same key.

# Example Usage

	registry, err := LoadOrDefault(path)
	if err != nil {
		return err
	}

	result := NewValidator().ValidateRegistry(registry)
	if result.HasErrors() {
		fmt.Println(result.String())
	}

	unbound := Bind(dispatcher, registry, Handlers{
		ActionCommandPalette: openPalette,
		ActionShowHelp:       func(*shortcut.KeyEvent) { dispatcher.ShowHelp() },
	})
*/
package keybinds
