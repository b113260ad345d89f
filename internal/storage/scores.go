package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry is one completed run on the leaderboard.
type ScoreEntry struct {
	ID        int64
	Profile   string
	LevelID   string
	Moves     int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// SaveScore records a completed run.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(profile, levelID string, moves int, elapsed time.Duration) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (profile, level_id, moves, elapsed_ns) VALUES (?, ?, ?, ?)",
		profile, levelID, moves, int64(elapsed),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best N runs of a level.
// Fewer moves rank first; ties go to the faster run, then the earlier one.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, profile, level_id, moves, elapsed_ns, created_at
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY moves ASC, elapsed_ns ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var ns int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Profile, &e.LevelID, &e.Moves, &ns, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Elapsed = time.Duration(ns)
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes all runs of a level.
func (s *Store) ClearScores(levelID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats contains aggregated leaderboard statistics for a level.
type LevelStats struct {
	LevelID    string
	Runs       int
	Players    int
	BestMoves  int
	AvgMoves   float64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT profile), COALESCE(MIN(moves), 0), COALESCE(AVG(moves), 0)
		 FROM scores WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Players, &stats.BestMoves, &stats.AvgMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE level_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}
