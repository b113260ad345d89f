package storage

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

func TestUpsertBestKeepsMinimumPerMetric(t *testing.T) {
	store := openTestStore(t)

	steps := []struct {
		moves    int
		best     time.Duration
		wantMove int
		wantTime time.Duration
	}{
		{100, 3 * time.Minute, 100, 3 * time.Minute},
		{90, 4 * time.Minute, 90, 3 * time.Minute},
		{95, 2 * time.Minute, 90, 2 * time.Minute},
		{120, 5 * time.Minute, 90, 2 * time.Minute},
	}

	for i, st := range steps {
		if err := store.UpsertBest("alice", "classic", st.moves, st.best); err != nil {
			t.Fatalf("step %d: UpsertBest() failed: %v", i, err)
		}
		records, err := store.Records("alice")
		if err != nil {
			t.Fatalf("step %d: Records() failed: %v", i, err)
		}
		got := records["classic"]
		if got.Moves != st.wantMove || got.Time != st.wantTime {
			t.Errorf("step %d: record = %d/%v, want %d/%v", i, got.Moves, got.Time, st.wantMove, st.wantTime)
		}
	}
}

func TestUpsertBestRejectsEmptyRecord(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertBest("alice", "classic", 0, time.Second); err == nil {
		t.Error("zero moves should be rejected")
	}
}

func TestRecordsPerProfile(t *testing.T) {
	store := openTestStore(t)

	store.UpsertBest("alice", "classic", 90, time.Minute)
	store.UpsertBest("bob", "classic", 80, time.Minute)

	alice, _ := store.Records("alice")
	if len(alice) != 1 || alice["classic"].Moves != 90 {
		t.Errorf("alice records = %+v", alice)
	}

	if err := store.ClearRecords("alice"); err != nil {
		t.Fatalf("ClearRecords() failed: %v", err)
	}
	alice, _ = store.Records("alice")
	bob, _ := store.Records("bob")
	if len(alice) != 0 || len(bob) != 1 {
		t.Errorf("after clear: alice %d, bob %d records", len(alice), len(bob))
	}
}

func TestSeedLedger(t *testing.T) {
	store := openTestStore(t)

	store.UpsertBest("alice", "classic", 90, time.Minute)
	store.UpsertBest("alice", "retired", 10, time.Second)

	classic := &engine.Level{ID: "classic"}
	corridor := &engine.Level{ID: "corridor"}
	ledger := engine.NewLedger()

	if err := store.SeedLedger("alice", ledger, []*engine.Level{classic, corridor}); err != nil {
		t.Fatalf("SeedLedger() failed: %v", err)
	}

	rec, ok := ledger.Best(classic)
	if !ok || rec.Moves != 90 || rec.Time != time.Minute {
		t.Errorf("classic best = %+v, %v", rec, ok)
	}
	if _, ok := ledger.Best(corridor); ok {
		t.Error("corridor has no record")
	}
	if !classic.Solved {
		t.Error("seeded level should be marked solved")
	}
}
