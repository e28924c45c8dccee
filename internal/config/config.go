// Package config handles application settings and the .workorders
// directory structure. The directory is created next to the user's home
// (or an explicit base directory) on first launch and holds the config
// file, the operation log, and an optional replacement dataset.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppDir is the name of the directory created in the base directory.
const AppDir = ".workorders"

const defaultConfigYAML = `# work order manager configuration
version: 1

# User the session starts as. Switchable at runtime from the settings screen.
default_user_id: 3

# Replacement dataset. Relative paths resolve against this directory.
# Leave empty to use the built-in demo dataset.
seed_file: ""

suggestions:
  # Environment variable holding the Gemini API key. Suggestions stay
  # disabled when the variable is empty or unset.
  api_key_env: GEMINI_API_KEY
  model: gemini-2.5-flash
  # Milliseconds of typing silence before tag suggestions fire.
  debounce_ms: 1000
  # Minimum description length before suggestions are requested.
  min_description_len: 20
`

// Suggestions configures the AI suggestion service.
type Suggestions struct {
	APIKeyEnv         string `yaml:"api_key_env"`
	Model             string `yaml:"model"`
	DebounceMS        int    `yaml:"debounce_ms"`
	MinDescriptionLen int    `yaml:"min_description_len"`
}

// File models the on-disk config.yaml.
type File struct {
	Version       int         `yaml:"version"`
	DefaultUserID int         `yaml:"default_user_id"`
	SeedFile      string      `yaml:"seed_file"`
	Suggestions   Suggestions `yaml:"suggestions"`
}

// Config holds the runtime configuration.
type Config struct {
	// BaseDir is where the .workorders directory lives.
	BaseDir string

	// AppDirPath is BaseDir/.workorders.
	AppDirPath string

	File File
}

// InitAppDir creates the .workorders directory structure and writes the
// default config file if none exists yet.
//
// Structure created:
//
//	.workorders/
//	├── config.yaml
//	└── logs/
func InitAppDir(baseDir string) error {
	appDir := filepath.Join(baseDir, AppDir)
	if err := os.MkdirAll(filepath.Join(appDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", appDir, err)
	}
	return ensureConfigFile(filepath.Join(appDir, "config.yaml"))
}

// New loads the configuration from baseDir/.workorders/config.yaml,
// overlaying the file's values on the built-in defaults.
func New(baseDir string) (*Config, error) {
	cfg := &Config{
		BaseDir:    baseDir,
		AppDirPath: filepath.Join(baseDir, AppDir),
		File:       defaultFile(),
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the on-disk location of config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.AppDirPath, "config.yaml")
}

// LogPath returns the operation log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.AppDirPath, "logs", "operations.log")
}

// SeedPath resolves the configured seed file. Empty means the built-in
// dataset; relative paths resolve against the app directory.
func (c *Config) SeedPath() string {
	p := strings.TrimSpace(c.File.SeedFile)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.AppDirPath, p)
}

// APIKey reads the Gemini key from the configured environment variable.
// An empty result means suggestions are disabled.
func (c *Config) APIKey() string {
	if c.File.Suggestions.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.File.Suggestions.APIKeyEnv))
}

func (c *Config) load() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultFile()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	c.File = parsed
	return nil
}

func defaultFile() File {
	return File{
		Version:       1,
		DefaultUserID: 3,
		Suggestions: Suggestions{
			APIKeyEnv:         "GEMINI_API_KEY",
			Model:             "gemini-2.5-flash",
			DebounceMS:        1000,
			MinDescriptionLen: 20,
		},
	}
}

func (f *File) applyDefaults() {
	def := defaultFile()
	if f.Version == 0 {
		f.Version = def.Version
	}
	if f.DefaultUserID == 0 {
		f.DefaultUserID = def.DefaultUserID
	}
	if f.Suggestions.Model == "" {
		f.Suggestions.Model = def.Suggestions.Model
	}
	if f.Suggestions.DebounceMS == 0 {
		f.Suggestions.DebounceMS = def.Suggestions.DebounceMS
	}
	if f.Suggestions.MinDescriptionLen == 0 {
		f.Suggestions.MinDescriptionLen = def.Suggestions.MinDescriptionLen
	}
}

func (f File) validate() error {
	if f.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	if f.DefaultUserID < 1 {
		return fmt.Errorf("default_user_id must be a positive user id")
	}
	if f.Suggestions.DebounceMS < 0 {
		return fmt.Errorf("suggestions.debounce_ms must not be negative")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
