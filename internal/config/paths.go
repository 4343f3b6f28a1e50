package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// EnvConfigPath names the environment variable holding an explicit config file
	EnvConfigPath = "RMS_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "rms.yaml"
	// ConfigDirName is the directory below the user and system config roots
	ConfigDirName = "rms"
)

// SearchPaths returns the config file candidates in priority order:
// ./rms.yaml, <user config dir>/rms/config.yaml and /etc/rms/config.yaml.
// The user config dir honors $XDG_CONFIG_HOME.
func SearchPaths() []string {
	paths := []string{ConfigFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ConfigDirName, "config.yaml"))
	}

	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the config file to load, or "" if there is none.
// $RMS_CONFIG takes precedence over SearchPaths and must name an existing file.
func FindConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if !fileExists(path) {
			return path, errors.Errorf("config file %s from $%s does not exist", path, EnvConfigPath)
		}
		return path, nil
	}

	for _, path := range SearchPaths() {
		if fileExists(path) {
			if abs, err := filepath.Abs(path); err == nil {
				return abs, nil
			}
			return path, nil
		}
	}

	return "", nil
}

// DefaultConfigPath is where `rmsdb config --write` puts a new config file:
// the user config dir if there is one, the working directory otherwise.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, ConfigDirName, "config.yaml")
	}

	return ConfigFileName
}

// EnsureConfigDir creates the directory of configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0o755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
