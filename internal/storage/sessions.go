package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

// SaveSession replaces the saved game of a profile.
func (s *Store) SaveSession(profile string, saved engine.SavedSession) error {
	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("storage: cannot encode saved session: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saved_sessions (profile, data) VALUES (?, ?)
		 ON CONFLICT(profile) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		profile, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// LoadSession returns the saved game of a profile. ok is false when there is
// none. Undecodable data is reported with an error wrapping engine.ErrCorruptSave.
func (s *Store) LoadSession(profile string) (engine.SavedSession, bool, error) {
	var data string
	err := s.db.QueryRow(
		"SELECT data FROM saved_sessions WHERE profile = ?",
		profile,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return engine.SavedSession{}, false, nil
	}
	if err != nil {
		return engine.SavedSession{}, false, fmt.Errorf("storage: cannot load session: %w", err)
	}

	var saved engine.SavedSession
	if err := saved.UnmarshalJSON([]byte(data)); err != nil {
		return engine.SavedSession{}, false, fmt.Errorf("storage: profile %q: %w", profile, err)
	}
	return saved, true, nil
}

// ClearSession removes the saved game of a profile.
func (s *Store) ClearSession(profile string) error {
	if _, err := s.db.Exec("DELETE FROM saved_sessions WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}
	return nil
}

// Slot is the saved-game slot of one profile.
type Slot struct {
	store   *Store
	profile string
}

// Slot returns the saved-game slot of a profile.
func (s *Store) Slot(profile string) *Slot {
	if profile == "" {
		profile = DefaultProfile
	}
	return &Slot{store: s, profile: profile}
}

// Profile returns the owner of the slot.
func (sl *Slot) Profile() string {
	return sl.profile
}

// Save implements engine.Persistence.
func (sl *Slot) Save(saved engine.SavedSession) error {
	return sl.store.SaveSession(sl.profile, saved)
}

// Load implements engine.Persistence.
func (sl *Slot) Load() (engine.SavedSession, bool, error) {
	return sl.store.LoadSession(sl.profile)
}

// Clear implements engine.Persistence.
func (sl *Slot) Clear() error {
	return sl.store.ClearSession(sl.profile)
}

var _ engine.Persistence = (*Slot)(nil)
