package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cneill/drum/pkg/dispatch"
	"github.com/cneill/drum/pkg/pad"
)

const DefaultColumns = 3

// Config describes a kit: its pads and how it starts up. Zero values fall back to the built-in defaults.
type Config struct {
	Volume  *int      `toml:"volume"`
	Columns int       `toml:"columns"`
	Pads    []pad.Pad `toml:"pads"`
}

// Default returns the built-in Heater kit.
func Default() *Config {
	volume := dispatch.DefaultVolume

	return &Config{
		Volume:  &volume,
		Columns: DefaultColumns,
		Pads:    pad.DefaultKit(),
	}
}

func (c *Config) OK() error {
	if c.Columns < 0 {
		return fmt.Errorf("columns must not be negative, got %d", c.Columns)
	}

	if _, err := pad.NewRegistry(c.Pads); err != nil {
		return fmt.Errorf("error with pads: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Volume == nil {
		c.Volume = defaults.Volume
	}

	if c.Columns == 0 {
		c.Columns = defaults.Columns
	}

	if len(c.Pads) == 0 {
		c.Pads = defaults.Pads
	}
}

// resolveSources makes relative file paths in pad sources relative to dir, the directory holding the kit file. URLs
// and absolute paths are left alone.
func (c *Config) resolveSources(dir string) {
	for i, p := range c.Pads {
		if strings.Contains(p.Source, "://") || filepath.IsAbs(p.Source) {
			continue
		}

		c.Pads[i].Source = filepath.Join(dir, p.Source)
	}
}

// Load reads and parses the kit file at path. With no path, the default path is used if a file exists there, and the
// built-in kit otherwise. An explicitly supplied path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""

	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, fmt.Errorf("config file %q does not exist", path)
		}

		slog.Debug("No config file found, using built-in kit", "path", path)

		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error with config file %q: %w", path, err)
	}

	cfg.resolveSources(filepath.Dir(path))

	slog.Debug("Loaded config file", "path", path, "pads", len(cfg.Pads))

	return cfg, nil
}

// Parse decodes TOML kit data, fills in defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		slog.Warn("Ignoring unknown config keys", "keys", fmt.Sprint(undecoded))
	}

	cfg.applyDefaults()

	if err := cfg.OK(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfigDir returns $HOME/.config/drum
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Error("Failed to locate user home directory", "error", err)
		return ""
	}

	return filepath.Join(home, ".config", "drum")
}

// DefaultConfigPath returns the default kit file path ($HOME/.config/drum/config.toml)
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}

	return filepath.Join(dir, "config.toml")
}
