package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the structure of the toast-bridge config file.
type Config struct {
	AppID       string        `validate:"required"`
	Backend     string        `validate:"required,oneof=winrt log"`
	PowerShell  string        `validate:"required"`
	Group       string        `validate:"required"`
	CallTimeout time.Duration `validate:"gt=0"`
	LogLevel    string        `validate:"oneof=debug info warn error"`
}

// fileConfig is the on-disk form. Empty fields keep their defaults.
type fileConfig struct {
	AppID       string `toml:"app_id" yaml:"app_id"`
	Backend     string `toml:"backend" yaml:"backend"`
	PowerShell  string `toml:"powershell" yaml:"powershell"`
	Group       string `toml:"group" yaml:"group"`
	CallTimeout string `toml:"call_timeout" yaml:"call_timeout"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		AppID:       "SharedClipboard",
		Backend:     "winrt",
		PowerShell:  "powershell.exe",
		Group:       "toast-bridge",
		CallTimeout: 10 * time.Second,
		LogLevel:    "info",
	}
}

// Load reads a TOML or YAML config file, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			if err := cfg.merge(raw); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ResolveConfigFile returns the first existing config file in dir, trying
// config.toml, config.yaml and config.yml. It returns the TOML path if none
// exist.
func ResolveConfigFile(dir string) string {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, "config.toml")
}

func readFile(path string) (*fileConfig, error) {
	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format '%s'", ext)
	}
	return &raw, nil
}

func (c *Config) merge(raw *fileConfig) error {
	if raw.AppID != "" {
		c.AppID = raw.AppID
	}
	if raw.Backend != "" {
		c.Backend = raw.Backend
	}
	if raw.PowerShell != "" {
		c.PowerShell = raw.PowerShell
	}
	if raw.Group != "" {
		c.Group = raw.Group
	}
	if raw.LogLevel != "" {
		c.LogLevel = strings.ToLower(raw.LogLevel)
	}
	if raw.CallTimeout != "" {
		d, err := time.ParseDuration(raw.CallTimeout)
		if err != nil {
			return fmt.Errorf("invalid call_timeout '%s': %w", raw.CallTimeout, err)
		}
		c.CallTimeout = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TOAST_BRIDGE_APP_ID"); v != "" {
		c.AppID = v
	}
	if v := os.Getenv("TOAST_BRIDGE_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("TOAST_BRIDGE_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("TOAST_BRIDGE_CALL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOAST_BRIDGE_CALL_TIMEOUT '%s': %w", v, err)
		}
		c.CallTimeout = d
	}
	return nil
}
