package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// SavedSession is the persisted snapshot of an unfinished game.
type SavedSession struct {
	LevelID    string
	LevelIndex int
	Moves      int
	Elapsed    time.Duration
	Paused     bool
	Pieces     []Piece
}

type savedPieceJSON struct {
	ID   *int    `json:"id"`
	Type *string `json:"type"`
	X    *int    `json:"x"`
	Y    *int    `json:"y"`
}

// savedSessionJSON uses pointers so missing fields can be told apart from zero values.
type savedSessionJSON struct {
	LevelID     *string           `json:"levelId"`
	LevelIndex  *int              `json:"levelIndex"`
	Moves       *int              `json:"moves"`
	TimeElapsed *float64          `json:"timeElapsedSeconds"`
	IsPaused    *bool             `json:"isPaused"`
	Pieces      *[]savedPieceJSON `json:"pieces"`
}

// MarshalJSON encodes the snapshot with the elapsed time in float seconds.
func (s SavedSession) MarshalJSON() ([]byte, error) {
	pieces := make([]savedPieceJSON, len(s.Pieces))
	for i := range s.Pieces {
		p := s.Pieces[i]
		typ := p.Type.DisplayID()
		pieces[i] = savedPieceJSON{ID: &p.ID, Type: &typ, X: &p.X, Y: &p.Y}
	}

	elapsed := s.Elapsed.Seconds()
	return json.Marshal(savedSessionJSON{
		LevelID:     &s.LevelID,
		LevelIndex:  &s.LevelIndex,
		Moves:       &s.Moves,
		TimeElapsed: &elapsed,
		IsPaused:    &s.Paused,
		Pieces:      &pieces,
	})
}

// maxElapsedSeconds is the largest elapsed time a time.Duration can hold.
var maxElapsedSeconds = float64(math.MaxInt64) / float64(time.Second)

// UnmarshalJSON decodes a snapshot. Any missing field, a null piece list or an
// unknown piece type yields an error wrapping ErrCorruptSave and leaves s untouched.
func (s *SavedSession) UnmarshalJSON(data []byte) error {
	var raw savedSessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	switch {
	case raw.LevelID == nil:
		return fmt.Errorf("%w: missing levelId", ErrCorruptSave)
	case raw.LevelIndex == nil:
		return fmt.Errorf("%w: missing levelIndex", ErrCorruptSave)
	case raw.Moves == nil:
		return fmt.Errorf("%w: missing moves", ErrCorruptSave)
	case raw.TimeElapsed == nil:
		return fmt.Errorf("%w: missing timeElapsedSeconds", ErrCorruptSave)
	case raw.IsPaused == nil:
		return fmt.Errorf("%w: missing isPaused", ErrCorruptSave)
	case raw.Pieces == nil:
		return fmt.Errorf("%w: missing pieces", ErrCorruptSave)
	}

	secs := *raw.TimeElapsed
	if math.IsNaN(secs) || secs < 0 || secs >= maxElapsedSeconds {
		return fmt.Errorf("%w: bad timeElapsedSeconds", ErrCorruptSave)
	}

	pieces := make([]Piece, 0, len(*raw.Pieces))
	for i, rp := range *raw.Pieces {
		if rp.ID == nil || rp.Type == nil || rp.X == nil || rp.Y == nil {
			return fmt.Errorf("%w: piece %d incomplete", ErrCorruptSave, i)
		}
		typ, ok := ParsePieceType(*rp.Type)
		if !ok {
			return fmt.Errorf("%w: piece %d has unknown type %q", ErrCorruptSave, i, *rp.Type)
		}
		pieces = append(pieces, Piece{ID: *rp.ID, Type: typ, X: *rp.X, Y: *rp.Y})
	}

	*s = SavedSession{
		LevelID:    *raw.LevelID,
		LevelIndex: *raw.LevelIndex,
		Moves:      *raw.Moves,
		Elapsed:    time.Duration(math.Round(secs * float64(time.Second))),
		Paused:     *raw.IsPaused,
		Pieces:     pieces,
	}
	return nil
}
