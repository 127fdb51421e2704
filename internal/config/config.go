// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all addressbook configuration.
type Config struct {
	Storage   Storage   `yaml:"storage"`
	Shell     Shell     `yaml:"shell"`
	Birthdays Birthdays `yaml:"birthdays"`
	Log       Log       `yaml:"log"`
}

// Storage selects where the book is persisted between sessions.
type Storage struct {
	Backend string `yaml:"backend"` // "json" | "sqlite"
	Path    string `yaml:"path"`
}

// Shell holds interactive shell settings.
type Shell struct {
	HistoryFile string `yaml:"history_file"` // Empty disables history.
}

// Birthdays holds upcoming-birthday query settings.
type Birthdays struct {
	WindowDays int `yaml:"window_days"`
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			Backend: BackendJSON,
			Path:    ".addressbook/book.json",
		},
		Shell: Shell{
			HistoryFile: ".addressbook/history",
		},
		Birthdays: Birthdays{
			WindowDays: 7,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("config: storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("config: storage.path cannot be empty")
	}
	if c.Birthdays.WindowDays < 0 {
		return fmt.Errorf("config: birthdays.window_days must be non-negative, got %d", c.Birthdays.WindowDays)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_STORAGE_BACKEND, ADDRESSBOOK_STORAGE_PATH,
// ADDRESSBOOK_HISTORY_FILE, ADDRESSBOOK_BIRTHDAY_WINDOW, ADDRESSBOOK_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRESSBOOK_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("ADDRESSBOOK_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v, ok := os.LookupEnv("ADDRESSBOOK_HISTORY_FILE"); ok {
		c.Shell.HistoryFile = v
	}
	if v := os.Getenv("ADDRESSBOOK_BIRTHDAY_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADDRESSBOOK_BIRTHDAY_WINDOW %q: %w", v, err)
		}
		c.Birthdays.WindowDays = n
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage   *rawStorage   `yaml:"storage"`
	Shell     *rawShell     `yaml:"shell"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Log       *rawLog       `yaml:"log"`
}

type rawStorage struct {
	Backend *string `yaml:"backend"`
	Path    *string `yaml:"path"`
}

type rawShell struct {
	HistoryFile *string `yaml:"history_file"`
}

type rawBirthdays struct {
	WindowDays *int `yaml:"window_days"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if s := layer.Storage; s != nil {
		setIf(&c.Storage.Backend, s.Backend)
		setIf(&c.Storage.Path, s.Path)
	}
	if s := layer.Shell; s != nil {
		setIf(&c.Shell.HistoryFile, s.HistoryFile)
	}
	if b := layer.Birthdays; b != nil {
		setIf(&c.Birthdays.WindowDays, b.WindowDays)
	}
	if l := layer.Log; l != nil {
		setIf(&c.Log.Level, l.Level)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
