// Package config holds application configuration, layered as
// defaults < config file < environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied when neither file nor environment overrides.
const (
	DefaultTurns    = 5
	DefaultTruncate = 500
)

// Config holds all application configuration.
type Config struct {
	// ProjectsDir is where Claude Code keeps per-project
	// transcript directories.
	ProjectsDir string `json:"projects_dir"`

	// DataDir holds cchat's own state (metadata cache).
	DataDir string `json:"data_dir"`

	// ClipboardCmd overrides the platform clipboard command; the
	// string is split shell-style.
	ClipboardCmd string `json:"clipboard_cmd"`

	// DefaultTurns is how many trailing turns view shows when no
	// count, range, or -all is given.
	DefaultTurns int `json:"default_turns"`

	// TruncateLen caps tool and thinking content in raw views.
	TruncateLen int `json:"truncate"`

	CachePath string `json:"-"`
}

// Default returns a Config with default values.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("determining home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".cchat")
	return Config{
		ProjectsDir:  filepath.Join(home, ".claude", "projects"),
		DataDir:      dataDir,
		DefaultTurns: DefaultTurns,
		TruncateLen:  DefaultTruncate,
		CachePath:    filepath.Join(dataDir, "cache.db"),
	}, nil
}

// Load builds a Config by layering: defaults, then the config
// file, then environment variables. Only values a layer actually
// sets override the layer below.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if err := cfg.loadFile(filepath.Join(cfg.DataDir, "config.json")); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	cfg.CachePath = filepath.Join(cfg.DataDir, "cache.db")
	return cfg, nil
}

// loadFile merges a JSON config file into the receiver. A missing
// file is not an error; a malformed one is, since silently
// ignoring the user's settings would be worse.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var file struct {
		ProjectsDir  *string `json:"projects_dir"`
		DataDir      *string `json:"data_dir"`
		ClipboardCmd *string `json:"clipboard_cmd"`
		DefaultTurns *int    `json:"default_turns"`
		TruncateLen  *int    `json:"truncate"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if file.ProjectsDir != nil {
		c.ProjectsDir = *file.ProjectsDir
	}
	if file.DataDir != nil {
		c.DataDir = *file.DataDir
	}
	if file.ClipboardCmd != nil {
		c.ClipboardCmd = *file.ClipboardCmd
	}
	if file.DefaultTurns != nil && *file.DefaultTurns > 0 {
		c.DefaultTurns = *file.DefaultTurns
	}
	if file.TruncateLen != nil {
		c.TruncateLen = *file.TruncateLen
	}
	return nil
}

// applyEnv merges environment overrides into the receiver.
func (c *Config) applyEnv() {
	if v := os.Getenv("CCHAT_PROJECTS_DIR"); v != "" {
		c.ProjectsDir = v
	}
	if v := os.Getenv("CCHAT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("CCHAT_CLIPBOARD_CMD"); v != "" {
		c.ClipboardCmd = v
	}
	if v := os.Getenv("CCHAT_TRUNCATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TruncateLen = n
		}
	}
}
