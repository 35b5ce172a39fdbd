// Package config loads, validates, and persists the application
// configuration as a TOML file in the user's config directory. A missing
// file yields the defaults; a malformed file is a hard error so a typo in a
// hotkey spec never silently reverts to defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/transmute/internal/hotkey"
)

// AppDirName is the directory under the user config root that holds the
// config file and plugin scripts.
const AppDirName = "transmute"

// FileName is the config file name inside the app directory.
const FileName = "config.toml"

// Window holds the persisted window geometry. Negative coordinates mean
// "let the window system choose".
type Window struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Config is the on-disk configuration schema.
type Config struct {
	// Hotkey is the global toggle combination in spec form, e.g.
	// "primary+alt+t". Stored unnormalized; Validate normalizes it.
	Hotkey string `toml:"hotkey"`

	// LastCategory is the catalog category selected when the window was
	// last hidden, restored on next show.
	LastCategory string `toml:"last_category"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// PluginDir overrides the default plugin script directory.
	PluginDir string `toml:"plugin_dir"`

	Window Window `toml:"window"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Hotkey:   hotkey.DefaultSpec,
		LogLevel: "info",
		Window: Window{
			X:      -1,
			Y:      -1,
			Width:  900,
			Height: 600,
		},
	}
}

// DefaultPath returns the per-user config file path, creating nothing.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(root, AppDirName, FileName), nil
}

// DefaultPluginDir returns the per-user plugin script directory.
func DefaultPluginDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(root, AppDirName, "plugins"), nil
}

// Load reads the config file at path. A missing file returns Default()
// without error. Malformed TOML returns a *ParseError; invalid values
// return a *ValidationError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes and checks the config in place.
func (c *Config) Validate() error {
	binding, err := hotkey.ParseBinding(c.Hotkey)
	if err != nil {
		return &ValidationError{Field: "hotkey", Value: c.Hotkey, Err: err}
	}
	c.Hotkey = binding.String()

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	case "":
		c.LogLevel = "info"
	default:
		return &ValidationError{Field: "log_level", Value: c.LogLevel, Err: errUnknownLogLevel}
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		def := Default().Window
		c.Window.Width = def.Width
		c.Window.Height = def.Height
	}

	return nil
}

// Save writes the config atomically: marshal to a temp file in the target
// directory, then rename over the destination. A crash mid-write never
// leaves a truncated config behind.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir %s: %w", dir, err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp config file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing config file %s: %w", path, err)
	}
	return nil
}
