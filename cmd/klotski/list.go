package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski/levels"
	"github.com/vovakirdan/tui-klotski/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows the levels in play order with the board size, piece count and your best result.`,
	RunE:  runList,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runList(_ *cobra.Command, _ []string) error {
	catalog, err := levels.Load(cfg.Levels.Dir, logger)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}

	var records map[string]storage.RecordEntry
	if store, err := storage.Open(cfg.Storage.DBPath); err == nil {
		records, err = store.Records(cfg.Storage.Profile)
		if err != nil {
			logger.Warn("could not read records", "err", err)
		}
		store.Close()
	} else {
		logger.Warn("could not open database", "err", err)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("#", "ID", "Name", "Size", "Pieces", "Best").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, lvl := range catalog.Levels() {
		best := "-"
		if rec, ok := records[lvl.ID]; ok {
			best = fmt.Sprintf("%d moves, %s", rec.Moves, klotski.FormatElapsed(rec.Time))
		}
		t.Row(
			fmt.Sprintf("%d", i+1),
			lvl.ID,
			lvl.Name,
			fmt.Sprintf("%dx%d", lvl.Width, lvl.Height),
			fmt.Sprintf("%d", len(lvl.Pieces)),
			best,
		)
	}

	fmt.Fprintln(os.Stdout, t.Render())
	fmt.Println()
	fmt.Printf("Profile: %s\n", cfg.Storage.Profile)
	fmt.Println("Run 'klotski play <id>' to play a level.")
	return nil
}
