package tui

// UI Layout Constants

const (
	// Modal Dimensions
	ModalWidthMarginNarrow = 10 // m.width - 10 for the help overlay
	ModalHeightMarginMed   = 4  // m.height - 4 for the help overlay

	// ContentOffsetHelp is m.height - 10 for the help viewport
	ContentOffsetHelp = 10
	// HelpViewWidthOffset is m.width - 14 for the help viewport
	HelpViewWidthOffset = 14

	// PaletteWidth is the fixed width of the command palette
	PaletteWidth = 60
	// PaletteMaxItems caps the rows shown in the palette
	PaletteMaxItems = 10
)

// Focus targets
const (
	FocusPage   = "page"
	FocusSearch = "search"
)
