// Package config handles loading and saving lw configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/lw/config.yaml
//   - State:   ~/.local/state/lw/ (recent files, view state cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultView   string `yaml:"default_view,omitempty"`    // tree or text
	ConfirmDelete bool   `yaml:"confirm_delete,omitempty"`  // Ask before deleting a subtree
	ShowLineCount bool   `yaml:"show_line_count,omitempty"` // Node count in the status bar
	IndentGuides  bool   `yaml:"indent_guides,omitempty"`   // Draw vertical guides per depth level
}

// EditorConfig holds editing behavior settings.
type EditorConfig struct {
	HistoryCapacity int           `yaml:"history_capacity,omitempty"` // Undo depth (default 50)
	AutosaveDelay   time.Duration `yaml:"autosave_delay,omitempty"`   // Debounce before writing (default 1s)
	Autosave        *bool         `yaml:"autosave,omitempty"`         // nil = enabled
}

// Config is the top-level configuration for lw.
type Config struct {
	Recent    []string       `yaml:"recent,omitempty"`    // Recently opened files, most recent first
	Favorites map[int]string `yaml:"favorites,omitempty"` // Number key (1-9) -> file path
	UI        UIConfig       `yaml:"ui,omitempty"`
	Editor    EditorConfig   `yaml:"editor,omitempty"`
}

// maxRecent bounds the recent-files list.
const maxRecent = 10

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Favorites: make(map[int]string),
		UI: UIConfig{
			DefaultView:   "tree",
			ConfirmDelete: true,
			IndentGuides:  true,
		},
		Editor: EditorConfig{
			HistoryCapacity: 50,
			AutosaveDelay:   time.Second,
		},
	}
}

// ConfigDir returns the XDG config directory for lw.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lw")
}

// StateDir returns the XDG state directory for lw.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "lw")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Favorites == nil {
		cfg.Favorites = make(map[int]string)
	}
	if cfg.Editor.HistoryCapacity < 1 {
		cfg.Editor.HistoryCapacity = 50
	}
	if cfg.Editor.AutosaveDelay <= 0 {
		cfg.Editor.AutosaveDelay = time.Second
	}

	// Expand ~ in stored paths
	for i := range cfg.Recent {
		cfg.Recent[i] = expandHome(cfg.Recent[i])
	}
	for n, p := range cfg.Favorites {
		cfg.Favorites[n] = expandHome(p)
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// AutosaveEnabled reports whether autosave is on (the default).
func (c Config) AutosaveEnabled() bool {
	return c.Editor.Autosave == nil || *c.Editor.Autosave
}

// Touch moves path to the front of the recent-files list, deduplicating
// and truncating to the retention bound.
func (c *Config) Touch(path string) {
	out := []string{path}
	for _, p := range c.Recent {
		if p != path {
			out = append(out, p)
		}
	}
	if len(out) > maxRecent {
		out = out[:maxRecent]
	}
	c.Recent = out
}

// FavoriteFile returns the file assigned to number key n (1-9), or "".
func (c Config) FavoriteFile(n int) string {
	return c.Favorites[n]
}

// SetFavorite assigns a file path to a number key (1-9).
func (c *Config) SetFavorite(n int, path string) {
	if c.Favorites == nil {
		c.Favorites = make(map[int]string)
	}
	if path == "" {
		delete(c.Favorites, n)
	} else {
		c.Favorites[n] = path
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
