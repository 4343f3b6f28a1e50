// Package config provides configuration management for the RMS database tools.
//
// Config file locations (priority order):
//  1. $RMS_CONFIG, which must exist if set
//  2. ./rms.yaml
//  3. $XDG_CONFIG_HOME/rms/config.yaml, ~/.config/rms/config.yaml by default
//  4. /etc/rms/config.yaml
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path, err := FindConfigPath()
	if err != nil {
		return nil, path, err
	}

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
// Unknown keys are rejected.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, errors.Wrap(err, "can't read config")
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// Parse decodes YAML config data on top of the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty document keeps the defaults.
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "can't parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return errors.Wrap(err, "can't create config dir")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "can't marshal config")
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		// Only reachable with malformed default tags.
		panic(err)
	}

	return c
}

// Validate checks constraints in the supplied configuration and returns an error if they are violated.
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}

	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	schema := c.Database.Schema
	if schema == "" {
		schema = "(embedded)"
	}
	data := c.Database.Data
	if data == "" {
		data = "(embedded)"
	}

	return fmt.Sprintf("Database: %s, Schema: %s, Data: %s\nLogging: %s (%s)",
		c.Database.Path, schema, data, c.Logging.Level, c.Logging.Output)
}
