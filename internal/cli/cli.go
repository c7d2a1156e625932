package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/studiowebux/deskkeys/internal/bridge"
	"github.com/studiowebux/deskkeys/internal/config"
	"github.com/studiowebux/deskkeys/internal/filter"
	"github.com/studiowebux/deskkeys/internal/keybinds"
	"github.com/studiowebux/deskkeys/internal/shortcut"
	"github.com/studiowebux/deskkeys/internal/version"
	"gopkg.in/yaml.v3"
)

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

// resolveKeybindsPath returns path, or the local/global keybinds file when empty
func resolveKeybindsPath(path string) (string, error) {
	if path == "" {
		return config.GetKeybindsFilePath(), nil
	}
	return config.ResolvePath(path)
}

// loadRegistry loads the defaults merged with the keybinds file
func loadRegistry(path string) (*keybinds.Registry, error) {
	resolved, err := resolveKeybindsPath(path)
	if err != nil {
		return nil, err
	}
	return keybinds.LoadOrDefault(resolved)
}

// listingRows describes every binding of registry, sorted by combo
func listingRows(registry *keybinds.Registry) []bridge.ListingRow {
	bindings := registry.ListBindings()
	rows := make([]bridge.ListingRow, 0, len(bindings))
	for _, b := range bindings {
		rows = append(rows, bridge.ListingRow{
			Combo:          b.Combo,
			Display:        shortcut.FormatCombo(b.Combo),
			Description:    b.Description,
			Action:         string(b.Action),
			PreventDefault: b.PreventDefault,
		})
	}
	return rows
}

// ListOptions contains options for listing shortcuts
type ListOptions struct {
	KeybindsPath string
	OutputFormat string // text, json, yaml
	Filter       string // JMESPath filter expression
	Query        string // JMESPath query or $(bash command)
	Color        bool   // syntax highlight json/yaml output
}

// List prints the effective shortcut table
func List(w io.Writer, opts ListOptions) error {
	registry, err := loadRegistry(opts.KeybindsPath)
	if err != nil {
		return err
	}
	rows := listingRows(registry)

	if opts.Filter != "" || opts.Query != "" {
		out, err := filter.ApplyTo(rows, opts.Filter, opts.Query)
		if err != nil {
			return err
		}
		if opts.Color && !filter.IsShellCommand(opts.Query) {
			return highlight(w, out, "json")
		}
		fmt.Fprintln(w, out)
		return nil
	}

	out, err := formatListing(rows, opts.OutputFormat)
	if err != nil {
		return err
	}
	if opts.Color && (opts.OutputFormat == "json" || opts.OutputFormat == "yaml") {
		return highlight(w, out, opts.OutputFormat)
	}
	fmt.Fprintln(w, out)
	return nil
}

// highlight writes source colorized for a 256 color terminal
func highlight(w io.Writer, source, lexer string) error {
	if err := quick.Highlight(w, source, lexer, "terminal256", "monokai"); err != nil {
		return fmt.Errorf("failed to highlight output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// formatListing formats the rows based on the output format
func formatListing(rows []bridge.ListingRow, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text", "":
		help := make([]shortcut.HelpRow, 0, len(rows))
		for _, r := range rows {
			help = append(help, shortcut.HelpRow{Combo: r.Combo, Display: r.Display, Description: r.Description})
		}
		return shortcut.HelpTitle + "\n" + shortcut.RenderTable(help), nil

	default:
		return "", fmt.Errorf("unknown output format %q (text/json/yaml)", format)
	}
}

// Normalize prints the canonical form of each combo. It fails if any is invalid.
func Normalize(w io.Writer, combos []string) error {
	invalid := 0
	for _, combo := range combos {
		normalized, ok := shortcut.Normalize(combo)
		if !ok {
			fmt.Fprintf(w, "%s%q: invalid combo%s\n", colorRed, combo, colorReset)
			invalid++
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", normalized, shortcut.FormatCombo(normalized))
	}

	if invalid > 0 {
		return fmt.Errorf("%d invalid combo(s)", invalid)
	}
	return nil
}

// Validate checks a keybinds file and prints the findings
func Validate(w io.Writer, path string) error {
	resolved, err := resolveKeybindsPath(path)
	if err != nil {
		return err
	}

	cfg, err := keybinds.LoadConfig(resolved)
	if err != nil {
		return err
	}

	result := keybinds.NewValidator().ValidateConfig(cfg)
	color := colorGreen
	switch {
	case result.HasErrors():
		color = colorRed
	case result.HasWarnings():
		color = colorYellow
	}
	fmt.Fprintf(w, "%s: %s%s%s\n", resolved, color, strings.TrimSpace(result.String()), colorReset)

	if result.HasErrors() {
		return fmt.Errorf("%s has %d error(s)", resolved, len(result.Errors))
	}
	return nil
}

// InitConfig writes the default keybinds to the config directory
func InitConfig(w io.Writer, format string, force bool) (string, error) {
	switch format {
	case "yaml", "json", "jsonc":
	default:
		return "", fmt.Errorf("%w: %q", keybinds.ErrUnsupportedFormat, format)
	}

	path := strings.TrimSuffix(config.KeybindsFile, filepath.Ext(config.KeybindsFile)) + "." + format
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := keybinds.CreateExampleConfig(path); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "Wrote default keybinds to %s\n", path)
	return path, nil
}

// CheckVersion reports whether a release newer than the running version exists
func CheckVersion(ctx context.Context, w io.Writer) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	release, available, err := version.NewChecker(settings).Newer(ctx, version.Version)
	if err != nil {
		return err
	}
	if available {
		fmt.Fprintf(w, "%sdeskkeys %s is available (current %s): %s%s\n", colorYellow, release.Version, version.Version, release.URL, colorReset)
		return nil
	}
	fmt.Fprintf(w, "%sdeskkeys %s is up to date%s\n", colorGreen, version.Version, colorReset)
	return nil
}

// pageHandlers returns a no-op handler for every bound action.
// Pages connected to the bridge perform the action themselves.
func pageHandlers(registry *keybinds.Registry) keybinds.Handlers {
	handlers := make(keybinds.Handlers)
	for _, b := range registry.ListBindings() {
		handlers[b.Action] = func(*shortcut.KeyEvent) {}
	}
	return handlers
}
