package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
	"github.com/vovakirdan/tui-klotski/internal/platform/tui"
)

var flagContinue bool

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play a level",
	Long: `Start playing a level directly. Without an id, the first level you
have not solved yet is opened.

Controls:
  Arrows/WASD  - Move the selected block
  Tab          - Select next block
  Mouse        - Drag a block
  P/Space      - Pause
  R            - Restart level
  Enter        - Next level after a win
  Esc/B        - Leave (the game is saved)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Examples:
  klotski play
  klotski play classic
  klotski play --continue`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{"tui": "true"},
	RunE:        runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Continue the saved game")
}

func runPlay(_ *cobra.Command, args []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	player, err := tui.NewPlayer(store, playerConfig())
	if err != nil {
		return err
	}
	defer player.Close()

	switch {
	case flagContinue:
		err = player.Start(tui.ContinueIndex)
		if errors.Is(err, engine.ErrNoSavedGame) {
			return fmt.Errorf("no saved game for profile %q", player.Profile)
		}
	case len(args) == 1:
		err = player.StartByID(args[0])
		if errors.Is(err, engine.ErrUnknownLevel) {
			return fmt.Errorf("unknown level %q, run 'klotski list' to see levels", args[0])
		}
	default:
		err = player.Start(player.Catalog.FirstUnsolved())
	}
	if err != nil {
		return err
	}

	return tui.RunPlay(player, runtimeConfig())
}
