package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("alice", "classic", 81, time.Minute); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("Expected 1 score after reopen, got %d", len(scores))
	}
}

func TestStoreTopScoresOrder(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		profile string
		moves   int
		elapsed time.Duration
	}{
		{"alice", 90, 2 * time.Minute},
		{"bob", 81, 3 * time.Minute},
		{"carol", 81, time.Minute},
		{"dave", 120, 30 * time.Second},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r.profile, "classic", r.moves, r.elapsed); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("alice", "corridor", 21, time.Second); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	want := []string{"carol", "bob", "alice", "dave"}
	if len(scores) != len(want) {
		t.Fatalf("Expected %d scores, got %d", len(want), len(scores))
	}
	for i, p := range want {
		if scores[i].Profile != p {
			t.Errorf("rank %d = %s, want %s", i+1, scores[i].Profile, p)
		}
	}
	if scores[0].Elapsed != time.Minute {
		t.Errorf("Elapsed = %v, want 1m", scores[0].Elapsed)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("p", "test", (i+1)*10, time.Second)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Moves != 10 || scores[2].Moves != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("p", "classic", 100, time.Second)
	store.SaveScore("p", "corridor", 21, time.Second)

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}
	corridor, _ := store.TopScores("corridor", 10)
	if len(corridor) != 1 {
		t.Error("corridor scores should not be affected by clearing classic")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetLevelStats("classic")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestMoves != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("alice", "classic", 100, time.Minute)
	store.SaveScore("alice", "classic", 90, time.Minute)
	store.SaveScore("bob", "classic", 110, time.Minute)

	stats, err := store.GetLevelStats("classic")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Players != 2 {
		t.Errorf("Runs/Players = %d/%d, want 3/2", stats.Runs, stats.Players)
	}
	if stats.BestMoves != 90 || stats.AvgMoves != 100 {
		t.Errorf("BestMoves/AvgMoves = %d/%v, want 90/100", stats.BestMoves, stats.AvgMoves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
