// klotski is a sliding-block puzzle for the terminal.
//
// Usage:
//
//	klotski list              - List levels and your records
//	klotski play [level-id]   - Play a level (or continue with --continue)
//	klotski menu              - Pick levels interactively
//	klotski records [level]   - Show leaderboards
//	klotski serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.klotski, ./configs)
//	--db <path>        - Database path (default: ~/.klotski/klotski.db)
//	--profile <name>   - Player profile owning saves and records
//	--levels <dir>     - Directory of level files instead of the built-in pack
//	--fps <rate>       - Clock tick rate
//	--log-level, --log-file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-klotski/internal/config"
	"github.com/vovakirdan/tui-klotski/internal/core"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski"
	"github.com/vovakirdan/tui-klotski/internal/platform/tui"
	"github.com/vovakirdan/tui-klotski/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagProfile  string
	flagLevels   string
	flagFPS      int
	flagLogLevel string
	flagLogFile  string

	// Loaded in PersistentPreRunE
	cfg     config.Config
	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "klotski",
	Short: "Klotski - slide the big block out in your terminal",
	Long: `Klotski is the classic sliding-block puzzle: move the blocks around the
board until the big one reaches the exit.

Available commands:
  list     - Show all levels and your records
  play     - Play a level directly
  menu     - Interactive level picker
  records  - View leaderboards
  serve    - Start SSH server for remote play

Examples:
  klotski list
  klotski play classic
  klotski play --continue
  klotski menu --profile alice
  klotski serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to config YAML")
	flags.StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	flags.StringVar(&flagProfile, "profile", "", "Player profile (default from config)")
	flags.StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in pack)")
	flags.IntVar(&flagFPS, "fps", 0, "Clock tick rate (default from config)")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("profile") {
		cfg.Storage.Profile = flagProfile
	}
	if flags.Changed("levels") {
		cfg.Levels.Dir = flagLevels
	}
	if flags.Changed("fps") {
		cfg.Play.TickRate = flagFPS
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	cfg.Normalize()

	out, err := logOutput(cmd)
	if err != nil {
		return err
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           cfg.Log.LogLevel(),
	})
	return nil
}

// logOutput picks the log destination. Full-screen commands keep stderr
// clear because it shares the terminal with the UI.
func logOutput(cmd *cobra.Command) (io.Writer, error) {
	if cfg.Log.File != "" {
		path := expandHome(cfg.Log.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		return f, nil
	}
	if cmd.Annotations["tui"] == "true" {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// openStore opens the database. Interactive commands keep going without it.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open database, progress will not be kept", "path", cfg.Storage.DBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

func playerConfig() tui.PlayerConfig {
	return tui.PlayerConfig{
		Profile:   cfg.Storage.Profile,
		LevelsDir: cfg.Levels.Dir,
		QueueSize: cfg.Sync.QueueSize,
		Game: klotski.Options{
			DragCellWidth:  cfg.Drag.CellWidth,
			DragCellHeight: cfg.Drag.CellHeight,
		},
		StartPaused: cfg.Play.StartPaused,
		Logger:      logger,
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.Play.TickRate
	return rc
}
