// Package config loads and saves the simulator's TOML-backed settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the simulator's user-adjustable settings.
type Config struct {
	// Execution settings
	Execution struct {
		MaxCycles uint64 `toml:"max_cycles"`
	} `toml:"execution"`

	// Display settings. BytesPerLine sets the row width of the d(ump)
	// command; NumberFormat is stored but no command reads it.
	Display struct {
		BytesPerLine int    `toml:"bytes_per_line"`
		NumberFormat string `toml:"number_format"` // hex, dec, both
	} `toml:"display"`

	// Sandbox restricts where l(oad) and w(rite) may touch the filesystem.
	// An empty Root imposes no restriction.
	Sandbox struct {
		Root string `toml:"root"`
	} `toml:"sandbox"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxCycles = 100000

	cfg.Display.BytesPerLine = 16
	cfg.Display.NumberFormat = "hex"

	cfg.Sandbox.Root = ""

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "dpu")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "dpu.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "dpu")

	default:
		return "dpu.toml"
	}

	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return "dpu.toml"
	}

	return filepath.Join(configDir, "dpu.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// yields defaults; a malformed one is an error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
