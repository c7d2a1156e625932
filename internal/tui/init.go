package tui

import (
	"fmt"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/deskkeys/internal/analytics"
	"github.com/studiowebux/deskkeys/internal/config"
	"github.com/studiowebux/deskkeys/internal/keybinds"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// RunOptions configures the desk program
type RunOptions struct {
	KeybindsPath string // empty means the local or global keybinds file
}

// Run starts the TUI
func Run(opts RunOptions) error {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	path := opts.KeybindsPath
	if path == "" {
		path = config.GetKeybindsFilePath()
	}
	registry, err := keybinds.LoadOrDefault(path)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so log to a file
	logFile, err := tea.LogToFile(filepath.Join(config.ConfigDir, "deskkeys.log"), "deskkeys")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	d := shortcut.Default()
	d.SetLogger(log.New(logFile, "[shortcut] ", log.LstdFlags))

	if settings.TrackUsage {
		mgr, err := analytics.NewManager(config.DatabasePath)
		if err != nil {
			log.Printf("usage tracking disabled: %v", err)
		} else {
			defer mgr.Close()
			d.AddObserver(mgr.Observer("tui", func(s shortcut.Shortcut) string {
				return string(registry.ActionFor(s))
			}))
		}
	}

	m := New(d, registry)

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
