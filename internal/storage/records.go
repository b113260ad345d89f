package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

// RecordEntry is the best result of one profile on one level.
type RecordEntry struct {
	Profile   string
	LevelID   string
	Moves     int
	Time      time.Duration
	UpdatedAt time.Time
}

// UpsertBest merges a best result into the records table. Each metric keeps
// the lower of the stored and the new value.
func (s *Store) UpsertBest(profile, levelID string, moves int, best time.Duration) error {
	if moves <= 0 {
		return fmt.Errorf("storage: invalid record for %s: %d moves", levelID, moves)
	}

	_, err := s.db.Exec(
		`INSERT INTO records (profile, level_id, best_moves, best_time_ns) VALUES (?, ?, ?, ?)
		 ON CONFLICT(profile, level_id) DO UPDATE SET
			best_moves = MIN(best_moves, excluded.best_moves),
			best_time_ns = MIN(best_time_ns, excluded.best_time_ns),
			updated_at = CURRENT_TIMESTAMP`,
		profile, levelID, moves, int64(best),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save record: %w", err)
	}
	return nil
}

// Records returns every best record of a profile keyed by level id.
func (s *Store) Records(profile string) (map[string]RecordEntry, error) {
	rows, err := s.db.Query(
		`SELECT profile, level_id, best_moves, best_time_ns, updated_at
		 FROM records
		 WHERE profile = ?`,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]RecordEntry)
	for rows.Next() {
		var e RecordEntry
		var ns int64
		var updatedAt any
		if err := rows.Scan(&e.Profile, &e.LevelID, &e.Moves, &ns, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Time = time.Duration(ns)
		e.UpdatedAt = parseTimestamp(updatedAt)
		records[e.LevelID] = e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SeedLedger loads a profile's records into the ledger for the given levels.
// Records of levels not in the list are ignored.
func (s *Store) SeedLedger(profile string, ledger *engine.Ledger, levels []*engine.Level) error {
	records, err := s.Records(profile)
	if err != nil {
		return err
	}
	for _, l := range levels {
		if r, ok := records[l.ID]; ok {
			ledger.Seed(l, engine.Record{Moves: r.Moves, Time: r.Time})
		}
	}
	return nil
}

// ClearRecords deletes every record of a profile.
func (s *Store) ClearRecords(profile string) error {
	if _, err := s.db.Exec("DELETE FROM records WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	return nil
}
