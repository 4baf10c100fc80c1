// Package config loads and persists the tool configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat track configuration. Host and Token are
// required for publishing; everything else has a sensible default.
type Config struct {
	Host          string `json:"host"`                      // issue tracker base URL
	Token         string `json:"token"`                     // personal access token
	DefaultGroup  string `json:"default_group,omitempty"`   // worklog visibility group
	EpicLinkField string `json:"epic_link_field,omitempty"` // custom field id holding the epic link
	StoreDir      string `json:"store_dir,omitempty"`       // overrides the default data directory
	Editor        string `json:"editor,omitempty"`          // overrides $EDITOR for the edit command
}

// DefaultDir returns the default configuration directory, ~/.track.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".track"), nil
}

// Load reads config.json from the specified directory. Returns an error if
// no config exists - the caller decides whether to run reconfiguration.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes config.json to the directory, creating it if needed. The
// file is written with owner-only permissions since it holds the token.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// WorklogPath returns the path of the worklog file. StoreDir wins when
// set; otherwise the worklog lives next to the config.
func (c *Config) WorklogPath(configDir string) string {
	dir := c.StoreDir
	if dir == "" {
		dir = configDir
	}
	return filepath.Join(dir, "worklog.json")
}

// CachePath returns the path of the issue metadata cache database.
func (c *Config) CachePath(configDir string) string {
	dir := c.StoreDir
	if dir == "" {
		dir = configDir
	}
	return filepath.Join(dir, "issues.db")
}

// EditorCommand resolves the editor to launch for the edit command:
// the configured editor, then $EDITOR, then vi.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}
