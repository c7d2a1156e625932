package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultListenAddr is where the bridge listens unless configured otherwise
	DefaultListenAddr = "localhost:8765"

	// DefaultReleasesURL is queried by `deskkeys version --check`
	DefaultReleasesURL = "https://api.github.com/repos/studiowebux/deskkeys/releases/latest"
)

var (
	// ConfigDir is the global configuration directory (~/.deskkeys)
	ConfigDir string

	// KeybindsFile is the user keybinds file
	KeybindsFile string

	// SettingsFile holds bridge and tracking settings
	SettingsFile string

	// DatabasePath is the SQLite database file for shortcut usage
	DatabasePath string
)

// Settings are the user-editable options stored in settings.yaml
type Settings struct {
	ListenAddr     string   `yaml:"listen_addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	TrackUsage     bool     `yaml:"track_usage"`
	ReleasesURL    string   `yaml:"releases_url,omitempty"`
}

// DefaultSettings returns the settings written on first run
func DefaultSettings() Settings {
	return Settings{
		ListenAddr:  DefaultListenAddr,
		TrackUsage:  true,
		ReleasesURL: DefaultReleasesURL,
	}
}

// Initialize sets up the configuration directory and files
// It creates ~/.deskkeys/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".deskkeys"))
}

// InitializeAt sets up the configuration rooted at dir
func InitializeAt(dir string) error {
	ConfigDir = dir
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.yaml")
	SettingsFile = filepath.Join(ConfigDir, "settings.yaml")
	DatabasePath = filepath.Join(ConfigDir, "deskkeys.db")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// LoadSettings reads settings.yaml, filling unset fields with defaults
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(SettingsFile)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("invalid settings.yaml: %w", err)
	}
	if settings.ListenAddr == "" {
		settings.ListenAddr = DefaultListenAddr
	}
	if settings.ReleasesURL == "" {
		settings.ReleasesURL = DefaultReleasesURL
	}

	return settings, nil
}

// SaveSettings writes settings.yaml
func SaveSettings(settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(SettingsFile, data, FilePermissions)
}

// ResolvePath expands a leading ~/ and makes relative paths relative to ConfigDir
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	if filepath.IsAbs(path) {
		return path, nil
	}

	// A file in the current directory wins over the config directory
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return filepath.Join(ConfigDir, path), nil
}

// GetKeybindsFilePath returns the keybinds file path (local or global)
func GetKeybindsFilePath() string {
	for _, name := range []string{".keybinds.yaml", ".keybinds.json", ".keybinds.jsonc"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return KeybindsFile
}
