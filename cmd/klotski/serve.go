package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-klotski/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Klotski SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level picker. The SSH
user name is the profile: saved games and records follow it across
connections, and all users share the leaderboards.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.klotski/host_key

Examples:
  klotski serve                           # Listen on :23234 with auto-generated key
  klotski serve --ssh :2222               # Listen on port 2222
  klotski serve --host-key ./my_host_key  # Use specific host key
  klotski serve --db ./klotski.db         # Use specific database

Users can connect with:
  ssh alice@localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("ssh") {
		cfg.SSH.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.SSH.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.SSH.IdleTimeoutMinutes = flagIdleTimeout
	}
	cfg.Normalize()

	pcfg := playerConfig()
	pcfg.Profile = ""

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: expandHome(cfg.SSH.HostKey),
		DBPath:      cfg.Storage.DBPath,
		IdleTimeout: cfg.SSH.IdleTimeout(),
		TickRate:    cfg.Play.TickRate,
		Player:      pcfg,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	fmt.Printf("Starting Klotski SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
