/*
Package tui implements the terminal desk for deskkeys.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: desk widgets, focus and overlay state
  - Update: converts key messages into dispatcher keydowns
  - View: renders the navbar, page, overlays and status line

# Key Components

  - model.go: Model struct, widget handlers and initialization
  - keys.go: tea.KeyMsg to shortcut.KeyEvent conversion and key routing
  - palette.go: command palette with fuzzy filtering
  - help.go: help overlay fed by the dispatcher's help presenter
  - render.go: view rendering

# Focus

The desk has two focus targets. The page is a plain element, so shortcuts
fire there. The search box is a text input: keydowns still reach the
dispatcher, which ignores them because the target is editable, and the keys
are typed into the box instead. The palette input behaves the same way.
*/
package tui
