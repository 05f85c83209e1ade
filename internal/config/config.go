// Package config loads server and terminal settings from the XDG config
// directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var cfgFile = "reversi/config.yaml"

// MaxDimension bounds the board so coordinates stay addressable as a-z.
const MaxDimension = 26

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type Config struct {
	Addr      string        `yaml:"addr"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	LogLevel  string        `yaml:"log_level"`
	Heartbeat time.Duration `yaml:"heartbeat"`
}

// Default returns the reference configuration: a 6x6 board served on :8080.
func Default() Config {
	return Config{
		Addr:      ":8080",
		Width:     6,
		Height:    6,
		LogLevel:  "info",
		Heartbeat: 15 * time.Second,
	}
}

// Load reads the XDG config file if one exists and validates the result.
// Without a file the defaults are returned.
func Load() (*Config, error) {
	path, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		cfg := Default()
		return &cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads settings from path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &InvalidConfig{fmt.Sprintf("board %dx%d must have positive dimensions", c.Width, c.Height)}
	}
	if c.Width > MaxDimension || c.Height > MaxDimension {
		return &InvalidConfig{fmt.Sprintf("board %dx%d exceeds %d", c.Width, c.Height, MaxDimension)}
	}
	if _, err := c.Level(); err != nil {
		return &InvalidConfig{fmt.Sprintf("log level %q: %v", c.LogLevel, err)}
	}
	if c.Heartbeat <= 0 {
		return &InvalidConfig{"heartbeat must be positive"}
	}
	return nil
}

// Level parses LogLevel for zerolog.
func (c *Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.LogLevel)
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() error {
	path, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return c.SaveFile(path, 0o644)
}

func (c *Config) SaveFile(path string, perm fs.FileMode) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// IsInvalid reports whether err came from validation.
func IsInvalid(err error) bool {
	var ic *InvalidConfig
	return errors.As(err, &ic)
}
