// Package config provides YAML-based configuration loading for the game
// and its hosts.
package config

import (
	"time"

	"github.com/charmbracelet/log"
)

// Config contains all configuration for the Klotski binary.
type Config struct {
	Play    PlayConfig    `yaml:"play"`
	Drag    DragConfig    `yaml:"drag"`
	Storage StorageConfig `yaml:"storage"`
	Levels  LevelsConfig  `yaml:"levels"`
	Sync    SyncConfig    `yaml:"sync"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// PlayConfig defines session timing.
type PlayConfig struct {
	TickRate    int  `yaml:"tick_rate"`    // Ticks per second driving the game clock
	StartPaused bool `yaml:"start_paused"` // New games open paused
}

// DragConfig defines how far the mouse travels per grid cell.
type DragConfig struct {
	CellWidth  int `yaml:"cell_width"`  // Terminal columns per grid cell
	CellHeight int `yaml:"cell_height"` // Terminal rows per grid cell
}

// StorageConfig defines where progress and records live.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	Profile string `yaml:"profile"` // Player name owning the saved game and records
}

// LevelsConfig selects the level pack.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Empty uses the embedded pack
}

// SyncConfig tunes the background record writer.
type SyncConfig struct {
	QueueSize int `yaml:"queue_size"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty logs to stderr, or nowhere while a TUI owns the terminal
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"` // Empty uses ~/.klotski/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (c SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// LogLevel parses the configured level, falling back to info.
func (c LogConfig) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Normalize replaces invalid values with defaults and clamps ranges.
func (c *Config) Normalize() {
	def := Default()

	switch {
	case c.Play.TickRate <= 0:
		c.Play.TickRate = def.Play.TickRate
	case c.Play.TickRate > 240:
		c.Play.TickRate = 240
	}
	if c.Drag.CellWidth < 1 {
		c.Drag.CellWidth = def.Drag.CellWidth
	}
	if c.Drag.CellHeight < 1 {
		c.Drag.CellHeight = def.Drag.CellHeight
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}
	if c.Storage.Profile == "" {
		c.Storage.Profile = def.Storage.Profile
	}
	if c.Sync.QueueSize < 1 {
		c.Sync.QueueSize = def.Sync.QueueSize
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		c.Log.Level = def.Log.Level
	}
	if c.SSH.Address == "" {
		c.SSH.Address = def.SSH.Address
	}
	if c.SSH.IdleTimeoutMinutes <= 0 {
		c.SSH.IdleTimeoutMinutes = def.SSH.IdleTimeoutMinutes
	}
}
