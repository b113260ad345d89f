package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski/levels"
	"github.com/vovakirdan/tui-klotski/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [level-id]",
	Short: "Show leaderboards",
	Long: `Display the fastest solutions of a level, or a summary of every level
when no id is given.

Examples:
  klotski records
  klotski records classic --limit 20
  klotski records --clear --profile alice`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the profile's records and saved game")
}

func runRecords(_ *cobra.Command, args []string) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if flagClear {
		return clearProfile(store)
	}

	catalog, err := levels.Load(cfg.Levels.Dir, logger)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}

	if len(args) == 0 {
		return printSummary(store, catalog)
	}

	lvl, ok := catalog.ByID(args[0])
	if !ok {
		return fmt.Errorf("unknown level %q, run 'klotski list' to see levels", args[0])
	}

	scores, err := store.TopScores(lvl.ID, flagLimit)
	if err != nil {
		return fmt.Errorf("read leaderboard: %w", err)
	}

	fmt.Printf("Records - %s\n\n", lvl.Name)
	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Printf("\nPlay 'klotski play %s' to set the first record!\n", lvl.ID)
		return nil
	}

	t := newTable("Rank", "Player", "Moves", "Time", "Date")
	for i, s := range scores {
		t.Row(
			fmt.Sprintf("%d", i+1),
			s.Profile,
			fmt.Sprintf("%d", s.Moves),
			klotski.FormatElapsed(s.Elapsed),
			s.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t.Render())

	if stats, err := store.GetLevelStats(lvl.ID); err == nil {
		fmt.Printf("\n%d runs by %d players, %.1f moves on average\n", stats.Runs, stats.Players, stats.AvgMoves)
	}
	return nil
}

func printSummary(store *storage.Store, catalog *levels.Catalog) error {
	records, err := store.Records(cfg.Storage.Profile)
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}

	t := newTable("Level", "Runs", "Best", "Your best")
	for _, lvl := range catalog.Levels() {
		best, mine := "-", "-"
		runs := 0
		if top, err := store.TopScores(lvl.ID, 1); err == nil && len(top) > 0 {
			best = fmt.Sprintf("%d by %s", top[0].Moves, top[0].Profile)
		}
		if stats, err := store.GetLevelStats(lvl.ID); err == nil {
			runs = stats.Runs
		}
		if rec, ok := records[lvl.ID]; ok {
			mine = fmt.Sprintf("%d moves, %s", rec.Moves, klotski.FormatElapsed(rec.Time))
		}
		t.Row(lvl.Name, fmt.Sprintf("%d", runs), best, mine)
	}

	fmt.Printf("Records - profile %s\n\n", cfg.Storage.Profile)
	fmt.Println(t.Render())
	return nil
}

func clearProfile(store *storage.Store) error {
	profile := cfg.Storage.Profile
	if err := store.ClearRecords(profile); err != nil {
		return err
	}
	if err := store.ClearSession(profile); err != nil {
		return err
	}
	logger.Info("Cleared profile", "profile", profile)
	fmt.Printf("Cleared records and saved game of %q.\n", profile)
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
