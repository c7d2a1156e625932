package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for keybinds files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported keybinds file format")

// ConfigVersion is written into exported keybinds files
const ConfigVersion = "1.0"

// Config represents the user's keybinding configuration
type Config struct {
	Version   string  `json:"version" yaml:"version"`
	Shortcuts []Entry `json:"shortcuts" yaml:"shortcuts"`
}

// Entry is one shortcut line of a keybinds file
type Entry struct {
	Combo          string `json:"combo" yaml:"combo"`
	Action         string `json:"action" yaml:"action"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	PreventDefault *bool  `json:"preventDefault,omitempty" yaml:"preventDefault,omitempty"`
}

// LoadConfig loads keybinding configuration from a .yaml, .yml, .json or .jsonc file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig decodes keybinding configuration in the format given by ext
func ParseConfig(data []byte, ext string) (*Config, error) {
	var config Config

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("invalid keybinds YAML: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
			return nil, fmt.Errorf("invalid keybinds JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (use .yaml, .yml, .json or .jsonc)", ErrUnsupportedFormat, ext)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration, choosing the format from the extension
func SaveConfig(config *Config, path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	case ".json", ".jsonc":
		data, err = json.MarshalIndent(config, "", "  ")
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode keybinds: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry.
// User bindings override existing bindings with the same combo.
// Invalid entries are skipped and reported in the returned error.
func ApplyConfig(registry *Registry, config *Config) error {
	var errs []error

	for i, e := range config.Shortcuts {
		b := Binding{
			Combo:          e.Combo,
			Action:         Action(e.Action),
			Description:    e.Description,
			PreventDefault: e.PreventDefault == nil || *e.PreventDefault,
		}
		if err := registry.RegisterBinding(b); err != nil {
			errs = append(errs, fmt.Errorf("shortcut %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}
	// A missing file means defaults only

	return registry, nil
}

// ExportRegistry converts a registry into a config file structure
func ExportRegistry(registry *Registry) *Config {
	config := &Config{Version: ConfigVersion}

	for _, b := range registry.ListBindings() {
		e := Entry{
			Combo:       b.Combo,
			Action:      string(b.Action),
			Description: b.Description,
		}
		if !b.PreventDefault {
			prevent := false
			e.PreventDefault = &prevent
		}
		config.Shortcuts = append(config.Shortcuts, e)
	}

	return config
}

// ExportDefaults exports default keybindings as a config file
func ExportDefaults() *Config {
	return ExportRegistry(NewDefaultRegistry())
}

// CreateExampleConfig writes the default keybindings to path
func CreateExampleConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create keybinds directory: %w", err)
	}
	return SaveConfig(ExportDefaults(), path)
}
