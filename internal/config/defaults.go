package config

import (
	_ "embed"
)

//go:embed defaults/klotski.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Play: PlayConfig{
			TickRate: 30,
		},
		Drag: DragConfig{
			CellWidth:  6,
			CellHeight: 3,
		},
		Storage: StorageConfig{
			DBPath:  "~/.klotski/klotski.db",
			Profile: "local",
		},
		Sync: SyncConfig{
			QueueSize: 64,
		},
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
