// Package config loads and stores the persistent pptlabs settings.
//
// Settings live in a TOML file under the user's config directory
// (~/.config/pptlabs/config.toml by default). Environment variables with the
// PPTLABS_ prefix override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/VantageDataChat/pptlabs/resize"
)

const (
	// appName is used for the config directory and the env prefix.
	appName = "pptlabs"

	fileName = "config.toml"

	// KeyReferenceMode is the settable key for the reference mode.
	KeyReferenceMode = "reference-mode"
)

// ErrUnknownKey is returned by Get and Set for keys that are not settings.
var ErrUnknownKey = errors.New("unknown setting")

// Config holds the persistent settings.
type Config struct {
	// ReferenceMode is "first-selected" or "outermost".
	ReferenceMode string `toml:"reference_mode" envconfig:"REFERENCE_MODE"`

	unknown []string
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{ReferenceMode: resize.FirstSelected.String()}
}

// DefaultPath returns the settings file path, honouring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, fileName), nil
}

// Load reads the settings file at path and applies environment overrides.
// A missing file yields the defaults. Values are not validated here, so a
// file with a bad value can still be loaded and repaired with Set; RefType
// reports the error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for _, k := range md.Undecoded() {
			cfg.unknown = append(cfg.unknown, k.String())
		}
		sort.Strings(cfg.unknown)
	}

	if err := envconfig.Process(appName, cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// Save writes the settings to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// RefType returns the configured reference mode.
func (c *Config) RefType() (resize.RefType, error) {
	t, err := ParseReferenceMode(c.ReferenceMode)
	if err != nil {
		return 0, fmt.Errorf("setting %s: %w", KeyReferenceMode, err)
	}
	return t, nil
}

// UnknownKeys lists keys in the loaded file that are not settings.
func (c *Config) UnknownKeys() []string { return c.unknown }

// Get returns the value of a settable key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyReferenceMode:
		return c.ReferenceMode, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// Set validates and stores value under key. Values are normalised to their
// canonical spelling.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyReferenceMode:
		t, err := ParseReferenceMode(value)
		if err != nil {
			return err
		}
		c.ReferenceMode = t.String()
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// ParseReferenceMode parses a reference mode setting. An empty value means
// first-selected.
func ParseReferenceMode(s string) (resize.RefType, error) {
	if s == "" {
		return resize.FirstSelected, nil
	}
	t, err := resize.ParseRefType(s)
	if err != nil {
		return 0, fmt.Errorf("reference mode: %w", err)
	}
	return t, nil
}
