package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Database.Path != "db/rms.db" {
		t.Errorf("Database.Path = %s, want db/rms.db", cfg.Database.Path)
	}
	if cfg.Database.BusyTimeout != 5*time.Second {
		t.Errorf("Database.BusyTimeout = %s, want 5s", cfg.Database.BusyTimeout)
	}
	if cfg.Database.Schema != "" || cfg.Database.Data != "" {
		t.Error("bootstrap scripts should default to the embedded ones")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Output != OutputConsole {
		t.Errorf("Logging = %+v, want info/console", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestParse(t *testing.T) {
	subtests := []struct {
		name   string
		input  string
		output *Config
	}{
		{
			name:  "empty",
			input: "",
			output: func() *Config {
				c := &Config{}
				_ = defaults.Set(c)
				return c
			}(),
		},
		{
			name: "database only",
			input: `
database:
  path: /var/lib/rms/rms.db
  schema: /usr/share/rms/schema.sql
  busy-timeout: 1m
`,
			output: func() *Config {
				c := &Config{}
				_ = defaults.Set(c)
				c.Database.Path = "/var/lib/rms/rms.db"
				c.Database.Schema = "/usr/share/rms/schema.sql"
				c.Database.BusyTimeout = time.Minute
				return c
			}(),
		},
		{
			name: "logging",
			input: `
logging:
  level: debug
  output: json
`,
			output: func() *Config {
				c := &Config{}
				_ = defaults.Set(c)
				c.Logging.Level = "debug"
				c.Logging.Output = OutputJSON
				return c
			}(),
		},
		{
			name:   "unknown key",
			input:  "database:\n  path: x.db\nunknown: 42\n",
			output: nil,
		},
		{
			name:   "empty path",
			input:  "database:\n  path: \"\"\n",
			output: nil,
		},
		{
			name:   "bad level",
			input:  "logging:\n  level: loud\n",
			output: nil,
		},
		{
			name:   "bad output",
			input:  "logging:\n  output: syslog\n",
			output: nil,
		},
	}

	for _, st := range subtests {
		t.Run(st.name, func(t *testing.T) {
			actual, err := Parse([]byte(st.input))
			if st.output == nil {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, st.output, actual)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	// Create temp directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	// Create and save config
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(tmpDir, "rms.db")
	cfg.Database.Data = "seed.sql"
	cfg.Logging.Level = "warn"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Load config
	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	require.Equal(t, cfg, loaded)
}

func TestLoadFromPathMissing(t *testing.T) {
	_, path, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.NotEmpty(t, path)
}

func TestFindConfigPath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PWD", dir)
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	found, err := FindConfigPath()
	require.NoError(t, err)
	require.Empty(t, found, "nothing to find")

	cfg, path, err := Load()
	require.NoError(t, err)
	require.Empty(t, path)
	require.Equal(t, DefaultConfig(), cfg)

	// User config dir
	xdg := filepath.Join(dir, "xdg", ConfigDirName, "config.yaml")
	require.NoError(t, DefaultConfig().Save(xdg))
	found, err = FindConfigPath()
	require.NoError(t, err)
	require.Equal(t, xdg, found)
	require.Equal(t, xdg, DefaultConfigPath())

	// Working directory beats the user config dir
	require.NoError(t, DefaultConfig().Save(ConfigFileName))
	found, err = FindConfigPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, ConfigFileName), found)

	// $RMS_CONFIG beats everything and must exist
	explicit := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, DefaultConfig().Save(explicit))
	t.Setenv(EnvConfigPath, explicit)
	found, err = FindConfigPath()
	require.NoError(t, err)
	require.Equal(t, explicit, found)

	t.Setenv(EnvConfigPath, filepath.Join(dir, "missing.yaml"))
	_, err = FindConfigPath()
	require.Error(t, err)
	_, _, err = Load()
	require.Error(t, err)
}

func TestSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	require.Equal(t, []string{
		ConfigFileName,
		"/xdg/rms/config.yaml",
		"/etc/rms/config.yaml",
	}, SearchPaths())
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	require.Contains(t, cfg.Summary(), "db/rms.db")
	require.Contains(t, cfg.Summary(), "(embedded)")
}
