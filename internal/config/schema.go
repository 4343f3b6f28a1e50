package config

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Config is the root configuration structure
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig locates the SQLite file and its bootstrap scripts.
// Empty script paths select the scripts embedded in the binary.
type DatabaseConfig struct {
	Path        string        `yaml:"path" default:"db/rms.db"`
	Schema      string        `yaml:"schema,omitempty"`
	Data        string        `yaml:"data,omitempty"`
	BusyTimeout time.Duration `yaml:"busy-timeout" default:"5s"`
}

// Validate checks constraints in the database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return errors.New("database path must not be empty")
	}
	if d.BusyTimeout < 0 {
		return errors.New("database busy-timeout must not be negative")
	}

	return nil
}

// Logging outputs
const (
	OutputConsole = "console"
	OutputJSON    = "json"
)

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Output string `yaml:"output" default:"console"`
}

// Validate checks constraints in the logging configuration
func (l *LoggingConfig) Validate() error {
	var lvl zapcore.Level
	if err := lvl.Set(l.Level); err != nil {
		return errors.Wrapf(err, "invalid logging level %q", l.Level)
	}

	switch l.Output {
	case OutputConsole, OutputJSON:
	default:
		return errors.Errorf("invalid logging output %q, expected %q or %q", l.Output, OutputConsole, OutputJSON)
	}

	return nil
}
