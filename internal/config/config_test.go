package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.Backend != BackendJSON {
		t.Errorf("default backend = %q, want %q", cfg.Storage.Backend, BackendJSON)
	}
	if cfg.Storage.Path != ".addressbook/book.json" {
		t.Errorf("default path = %q, want %q", cfg.Storage.Path, ".addressbook/book.json")
	}
	if cfg.Birthdays.WindowDays != 7 {
		t.Errorf("default window = %d, want 7", cfg.Birthdays.WindowDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), `
storage:
  backend: sqlite
  path: /tmp/book.db
shell:
  history_file: ""
birthdays:
  window_days: 14
log:
  level: debug
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendSQLite)
	}
	if cfg.Storage.Path != "/tmp/book.db" {
		t.Errorf("path = %q, want %q", cfg.Storage.Path, "/tmp/book.db")
	}
	if cfg.Shell.HistoryFile != "" {
		t.Errorf("history file = %q, want empty", cfg.Shell.HistoryFile)
	}
	if cfg.Birthdays.WindowDays != 14 {
		t.Errorf("window = %d, want 14", cfg.Birthdays.WindowDays)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_EmptyAndCommentOnly(t *testing.T) {
	for _, content := range []string{"", "# nothing here\n"} {
		cfg, err := Load(writeFile(t, t.TempDir(), content))
		if err != nil {
			t.Fatalf("Load(%q) error = %v", content, err)
		}
		if want := DefaultConfig(); *cfg != want {
			t.Errorf("Load(%q) = %+v, want defaults", content, *cfg)
		}
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeFile(t, t.TempDir(), "{{invalid yaml")); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeFile(t, t.TempDir(), "storage:\n  engine: postgres\n"))
	if err == nil {
		t.Fatal("Load(unknown field) should return error")
	}
	if !strings.Contains(err.Error(), "config: parsing") {
		t.Errorf("error = %v, want parsing error", err)
	}
}

func TestLoad_LayeredPriority(t *testing.T) {
	// Given a user config that sets backend and window, and a project config
	// that overrides the window only
	userCfg := writeFile(t, t.TempDir(), `
storage:
  backend: sqlite
birthdays:
  window_days: 3
`)
	projectCfg := writeFile(t, t.TempDir(), `
birthdays:
  window_days: 10
`)

	// When both are loaded
	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}

	// Then backend comes from the user layer
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendSQLite)
	}
	// And the window from the project layer
	if cfg.Birthdays.WindowDays != 10 {
		t.Errorf("window = %d, want 10", cfg.Birthdays.WindowDays)
	}
	// And the path keeps its default
	if cfg.Storage.Path != ".addressbook/book.json" {
		t.Errorf("path = %q, want default", cfg.Storage.Path)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "ADDRESSBOOK_STORAGE_BACKEND overrides backend",
			envs: map[string]string{"ADDRESSBOOK_STORAGE_BACKEND": "sqlite"},
			check: func(t *testing.T, c Config) {
				if c.Storage.Backend != "sqlite" {
					t.Errorf("backend = %q, want %q", c.Storage.Backend, "sqlite")
				}
			},
		},
		{
			name: "ADDRESSBOOK_STORAGE_PATH overrides path",
			envs: map[string]string{"ADDRESSBOOK_STORAGE_PATH": "/data/book.json"},
			check: func(t *testing.T, c Config) {
				if c.Storage.Path != "/data/book.json" {
					t.Errorf("path = %q, want %q", c.Storage.Path, "/data/book.json")
				}
			},
		},
		{
			name: "empty ADDRESSBOOK_HISTORY_FILE disables history",
			envs: map[string]string{"ADDRESSBOOK_HISTORY_FILE": ""},
			check: func(t *testing.T, c Config) {
				if c.Shell.HistoryFile != "" {
					t.Errorf("history file = %q, want empty", c.Shell.HistoryFile)
				}
			},
		},
		{
			name: "ADDRESSBOOK_BIRTHDAY_WINDOW overrides window",
			envs: map[string]string{"ADDRESSBOOK_BIRTHDAY_WINDOW": "30"},
			check: func(t *testing.T, c Config) {
				if c.Birthdays.WindowDays != 30 {
					t.Errorf("window = %d, want 30", c.Birthdays.WindowDays)
				}
			},
		},
		{
			name: "ADDRESSBOOK_LOG_LEVEL overrides level",
			envs: map[string]string{"ADDRESSBOOK_LOG_LEVEL": "debug"},
			check: func(t *testing.T, c Config) {
				if c.Log.Level != "debug" {
					t.Errorf("level = %q, want %q", c.Log.Level, "debug")
				}
			},
		},
		{
			name:    "invalid ADDRESSBOOK_BIRTHDAY_WINDOW returns error",
			envs:    map[string]string{"ADDRESSBOOK_BIRTHDAY_WINDOW": "a week"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "sqlite backend", mutate: func(c *Config) { c.Storage.Backend = BackendSQLite }},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "csv" }, wantErr: "storage.backend"},
		{name: "empty path", mutate: func(c *Config) { c.Storage.Path = "" }, wantErr: "storage.path"},
		{name: "negative window", mutate: func(c *Config) { c.Birthdays.WindowDays = -1 }, wantErr: "window_days"},
		{name: "zero window", mutate: func(c *Config) { c.Birthdays.WindowDays = 0 }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
