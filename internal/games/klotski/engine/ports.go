package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Persistence stores the single in-progress game.
// Load reports ok=false when nothing is saved. A decode failure is returned as
// an error wrapping ErrCorruptSave; the session treats both as "no saved game".
type Persistence interface {
	Save(s SavedSession) error
	Load() (s SavedSession, ok bool, err error)
	Clear() error
}

// ScoreSync receives best-record updates after a win that improved a record.
// Implementations must return promptly; the session does not wait on them.
type ScoreSync interface {
	SyncBest(levelID string, bestMoves int, bestTime time.Duration)
}

// Leaderboard receives every completed run.
// Implementations must return promptly; the session does not wait on them.
type Leaderboard interface {
	Submit(levelID string, moves int, elapsed time.Duration)
}

// Collaborators are the external services a Session talks to.
// Nil fields are replaced with no-op implementations.
type Collaborators struct {
	Persistence Persistence
	ScoreSync   ScoreSync
	Leaderboard Leaderboard
	Ledger      *Ledger
	Logger      *log.Logger
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Persistence == nil {
		c.Persistence = nopPersistence{}
	}
	if c.ScoreSync == nil {
		c.ScoreSync = nopSync{}
	}
	if c.Leaderboard == nil {
		c.Leaderboard = nopSync{}
	}
	if c.Ledger == nil {
		c.Ledger = NewLedger()
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}

type nopPersistence struct{}

func (nopPersistence) Save(SavedSession) error           { return nil }
func (nopPersistence) Load() (SavedSession, bool, error) { return SavedSession{}, false, nil }
func (nopPersistence) Clear() error                      { return nil }

type nopSync struct{}

func (nopSync) SyncBest(string, int, time.Duration) {}
func (nopSync) Submit(string, int, time.Duration)   {}

// MemoryPersistence keeps the saved session in memory.
// It round-trips through the JSON codec so it behaves like durable storage.
type MemoryPersistence struct {
	data []byte
}

// Save encodes and stores the session.
func (m *MemoryPersistence) Save(s SavedSession) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// Load decodes the stored session, if any.
func (m *MemoryPersistence) Load() (SavedSession, bool, error) {
	if m.data == nil {
		return SavedSession{}, false, nil
	}
	var s SavedSession
	if err := s.UnmarshalJSON(m.data); err != nil {
		return SavedSession{}, false, err
	}
	return s, true, nil
}

// Clear drops the stored session.
func (m *MemoryPersistence) Clear() error {
	m.data = nil
	return nil
}

// SetRaw replaces the stored bytes, bypassing the encoder.
func (m *MemoryPersistence) SetRaw(data []byte) {
	m.data = data
}

// Raw returns the stored bytes.
func (m *MemoryPersistence) Raw() []byte {
	return m.data
}
