package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-klotski/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level picker",
	Long: `Start in interactive menu mode.

Pick a level or continue the saved game. Leaving a level saves it and
returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Records
  Q            - Quit

Examples:
  klotski menu
  klotski menu --profile alice
  klotski menu --db ./klotski.db`,
	Annotations: map[string]string{"tui": "true"},
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	player, err := tui.NewPlayer(store, playerConfig())
	if err != nil {
		return err
	}
	defer player.Close()

	return tui.Run(player, runtimeConfig())
}
