/*
Package shortcut provides the global keyboard shortcut dispatcher.

# Overview

Widgets register key combinations with a single Dispatcher instead of each
listening for key events on their own. The dispatcher owns one table of
normalized combo -> handler and intercepts every keydown delivered by its
event source.

# Combos

Combos are written the way users type them ("Ctrl+K", "Cmd+Shift+P",
"Esc") and normalized to a canonical key:

  - parts are split on "+", trimmed and lower-cased
  - modifier aliases resolve (cmd, command, super -> meta; control -> ctrl;
    option -> alt)
  - modifiers are ordered ctrl, meta, alt, shift
  - the primary key comes last, with key aliases resolved (esc -> escape,
    return -> enter, spacebar -> space, up -> arrowup, ...)

So "K+Cmd", "cmd+k" and "Meta+K" all normalize to "meta+k".

# Registration

Registration never fails loudly. An empty or unparsable combo, or a nil
handler, is logged as a warning and dropped. Registering a combo that is
already present replaces the previous entry without notice.

# Interception

For every keydown the dispatcher:

  - ignores the event if its target is editable (input, textarea, select,
    contenteditable, role=textbox); this cannot be overridden per shortcut
  - builds the event combo and looks it up
  - calls PreventDefault and StopPropagation when the shortcut asks for it
    (the default)
  - invokes the handler synchronously with the event

Handler panics are not recovered.

# Example Usage

	shortcut.Init(source)
	shortcut.Register("Ctrl+K", openPalette, "Open command palette")
	shortcut.Register("Esc", closePalette, "Close", shortcut.WithPreventDefault(false))
	shortcut.ShowHelp()
*/
package shortcut
