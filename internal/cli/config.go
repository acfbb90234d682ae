package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pagesmith/pagesmith/pkg/canvas"
)

// Config holds settings read from ~/.config/pagesmith/config.toml.
// Command-line flags override config values, which override defaults.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Server ServerConfig `toml:"server"`
	Assist AssistConfig `toml:"assist"`
}

// CanvasConfig sets the editing canvas geometry.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// ServerConfig sets serve command defaults.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	SessionBackend string `toml:"session_backend"` // memory, file, or redis
	RedisAddr      string `toml:"redis_addr"`
}

// AssistConfig points at the external text-generation service.
type AssistConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:  canvas.DefaultCanvasWidth,
			Height: canvas.DefaultCanvasHeight,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			SessionBackend: "memory",
			RedisAddr:      "localhost:6379",
		},
	}
}

// ConfigPath returns the standard config file location.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file at path, or the standard location if
// path is empty. A missing file yields the defaults without error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("canvas dimensions must be positive")
	}
	switch c.Server.SessionBackend {
	case "", "memory", "file", "redis":
	default:
		return fmt.Errorf("unknown session backend %q (must be memory, file, or redis)", c.Server.SessionBackend)
	}
	return nil
}
