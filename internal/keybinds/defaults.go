package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerPaletteBindings(r)
	registerNavbarBindings(r)
	registerGlobalBindings(r)

	return r
}

// registerPaletteBindings covers Ctrl+K on Linux/Windows and Cmd+K on macOS
func registerPaletteBindings(r *Registry) {
	_ = r.RegisterMultiple([]string{"ctrl+k", "meta+k"}, ActionCommandPalette)
	_ = r.RegisterBinding(Binding{
		Combo:          "escape",
		Action:         ActionCommandPaletteClose,
		PreventDefault: false, // other dialogs also close on escape
	})
}

func registerNavbarBindings(r *Registry) {
	_ = r.Register("shift+?", ActionShowHelp)
	_ = r.Register("/", ActionFocusSearch)
	_ = r.Register("alt+n", ActionNotifications)
	_ = r.Register("alt+p", ActionPins)
	_ = r.Register("alt+s", ActionSavedSearches)
	_ = r.Register("alt+v", ActionVoiceSearch)
	_ = r.Register("alt+h", ActionHistory)
	_ = r.Register("alt+c", ActionQuickCreate)
	_ = r.Register("alt+d", ActionDensityToggle)
}

func registerGlobalBindings(r *Registry) {
	_ = r.Register("ctrl+c", ActionQuit)
}
