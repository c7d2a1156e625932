package keybinds

import "sort"

// Action represents a desk operation that can be triggered by a shortcut
type Action string

const (
	// Command palette
	ActionCommandPalette      Action = "command_palette.open"  // Open the command palette
	ActionCommandPaletteClose Action = "command_palette.close" // Close the command palette

	// Navbar widgets
	ActionShowHelp        Action = "help.show"            // Show the shortcut table
	ActionFocusSearch     Action = "search.focus"         // Focus the awesomebar search
	ActionNotifications   Action = "notifications.toggle" // Toggle the notifications panel
	ActionPins            Action = "pins.toggle"          // Toggle the pins bar
	ActionSavedSearches   Action = "saved_searches.open"  // Open saved searches
	ActionVoiceSearch     Action = "voice_search.toggle"  // Start/stop voice search
	ActionHistory         Action = "history.open"         // Open recent navigation history
	ActionQuickCreate     Action = "quick_create.open"    // Open the quick create menu
	ActionDensityToggle   Action = "density.toggle"       // Toggle compact/comfortable density
	ActionQuit            Action = "app.quit"             // Quit the desk
)

// actionDescriptions are shown in the help table when a binding has no description
var actionDescriptions = map[Action]string{
	ActionCommandPalette:      "Open command palette",
	ActionCommandPaletteClose: "Close command palette",
	ActionShowHelp:            "Show keyboard shortcuts",
	ActionFocusSearch:         "Focus search",
	ActionNotifications:       "Toggle notifications",
	ActionPins:                "Toggle pinned items",
	ActionSavedSearches:       "Open saved searches",
	ActionVoiceSearch:         "Toggle voice search",
	ActionHistory:             "Open recent history",
	ActionQuickCreate:         "Quick create",
	ActionDensityToggle:       "Toggle density",
	ActionQuit:                "Quit",
}

// Description returns the default description for an action
func (a Action) Description() string {
	if d, ok := actionDescriptions[a]; ok {
		return d
	}
	return string(a)
}

// IsKnown reports whether the action is part of the catalog
func (a Action) IsKnown() bool {
	_, ok := actionDescriptions[a]
	return ok
}

// AllActions returns every known action sorted by name
func AllActions() []Action {
	actions := make([]Action, 0, len(actionDescriptions))
	for a := range actionDescriptions {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}
