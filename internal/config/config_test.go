package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "play:\n  tick_rate: 60\nstorage:\n  profile: alice\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Play.TickRate != 60 || cfg.Storage.Profile != "alice" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Drag.CellWidth != 6 || cfg.Storage.DBPath != Default().Storage.DBPath {
		t.Errorf("unset values should keep defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "play: [")

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.yaml")},
		{"invalid yaml", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("no files should give defaults, got %+v", cfg)
	}

	writeFile(t, filepath.Join(work, "configs", "klotski.yaml"), "sync:\n  queue_size: 8\n")
	cfg, _ = Load("")
	if cfg.Sync.QueueSize != 8 {
		t.Errorf("local config not used: %+v", cfg.Sync)
	}

	writeFile(t, filepath.Join(home, ".klotski", "klotski.yaml"), "sync:\n  queue_size: 16\n")
	cfg, _ = Load("")
	if cfg.Sync.QueueSize != 16 {
		t.Errorf("user config should win: %+v", cfg.Sync)
	}

	writeFile(t, filepath.Join(home, ".klotski", "klotski.yaml"), "sync: [")
	cfg, _ = Load("")
	if cfg.Sync.QueueSize != 8 {
		t.Errorf("broken user config should fall through: %+v", cfg.Sync)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		check func(Config) bool
	}{
		{"zero tick rate", func(c *Config) { c.Play.TickRate = 0 }, func(c Config) bool { return c.Play.TickRate == 30 }},
		{"huge tick rate", func(c *Config) { c.Play.TickRate = 1000 }, func(c Config) bool { return c.Play.TickRate == 240 }},
		{"zero cell width", func(c *Config) { c.Drag.CellWidth = 0 }, func(c Config) bool { return c.Drag.CellWidth == 6 }},
		{"negative cell height", func(c *Config) { c.Drag.CellHeight = -2 }, func(c Config) bool { return c.Drag.CellHeight == 3 }},
		{"empty profile", func(c *Config) { c.Storage.Profile = "" }, func(c Config) bool { return c.Storage.Profile == "local" }},
		{"zero queue", func(c *Config) { c.Sync.QueueSize = 0 }, func(c Config) bool { return c.Sync.QueueSize == 64 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, func(c Config) bool { return c.Log.Level == "info" }},
		{"empty ssh address", func(c *Config) { c.SSH.Address = "" }, func(c Config) bool { return c.SSH.Address == ":23234" }},
		{"valid values kept", func(c *Config) { c.Play.TickRate = 120 }, func(c Config) bool { return c.Play.TickRate == 120 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(&cfg)
			cfg.Normalize()
			if !tt.check(cfg) {
				t.Errorf("Normalize() = %+v", cfg)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	if (LogConfig{Level: "debug"}).LogLevel() != log.DebugLevel {
		t.Error("debug should parse")
	}
	if (LogConfig{Level: "nope"}).LogLevel() != log.InfoLevel {
		t.Error("unknown level should fall back to info")
	}
}
