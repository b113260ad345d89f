package engine

import (
	"testing"
	"time"
)

// classicLevel is the Huarong Dao opening on a 4x5 board.
//
//	2113
//	2113
//	4556
//	4786
//	9..a
func classicLevel() *Level {
	return &Level{
		ID:     "classic",
		Name:   "Classic",
		Width:  4,
		Height: 5,
		Pieces: []PiecePlacement{
			{ID: 1, Type: PieceBig, X: 1, Y: 0},
			{ID: 2, Type: PieceTall, X: 0, Y: 0},
			{ID: 3, Type: PieceTall, X: 3, Y: 0},
			{ID: 4, Type: PieceTall, X: 0, Y: 2},
			{ID: 5, Type: PieceWide, X: 1, Y: 2},
			{ID: 6, Type: PieceTall, X: 3, Y: 2},
			{ID: 7, Type: PieceSmall, X: 1, Y: 3},
			{ID: 8, Type: PieceSmall, X: 2, Y: 3},
			{ID: 9, Type: PieceSmall, X: 0, Y: 4},
			{ID: 10, Type: PieceSmall, X: 3, Y: 4},
		},
		TargetPieceID: 1,
		TargetX:       1,
		TargetY:       3,
	}
}

// dropLevel has a lone 2x2 block at (1,0) that wins at (1,3).
func dropLevel() *Level {
	return &Level{
		ID:     "drop",
		Name:   "Drop",
		Width:  4,
		Height: 5,
		Pieces: []PiecePlacement{
			{ID: 1, Type: PieceBig, X: 1, Y: 0},
		},
		TargetPieceID: 1,
		TargetX:       1,
		TargetY:       3,
	}
}

// pairLevel has two adjacent 1x1 blocks in the top-left corner.
func pairLevel() *Level {
	return &Level{
		ID:     "pair",
		Name:   "Pair",
		Width:  4,
		Height: 5,
		Pieces: []PiecePlacement{
			{ID: 1, Type: PieceSmall, X: 0, Y: 0},
			{ID: 2, Type: PieceSmall, X: 1, Y: 0},
		},
		TargetPieceID: 1,
		TargetX:       3,
		TargetY:       4,
	}
}

type syncCall struct {
	levelID string
	moves   int
	elapsed time.Duration
}

// recordingSync captures fire-and-forget notifications.
type recordingSync struct {
	best   []syncCall
	submit []syncCall
}

func (r *recordingSync) SyncBest(levelID string, moves int, elapsed time.Duration) {
	r.best = append(r.best, syncCall{levelID, moves, elapsed})
}

func (r *recordingSync) Submit(levelID string, moves int, elapsed time.Duration) {
	r.submit = append(r.submit, syncCall{levelID, moves, elapsed})
}

func newTestSession(levels ...*Level) (*Session, *MemoryPersistence, *recordingSync) {
	store := &MemoryPersistence{}
	rec := &recordingSync{}
	s := NewSession(levels, Collaborators{
		Persistence: store,
		ScoreSync:   rec,
		Leaderboard: rec,
	})
	return s, store, rec
}

// checkBoard verifies the grid matches the piece list exactly.
func checkBoard(t testing.TB, s *Session) {
	t.Helper()
	want, err := BoardFor(s.Level(), s.Pieces())
	if err != nil {
		t.Fatalf("pieces do not form a valid layout: %v", err)
	}
	if !want.Equal(s.Board()) {
		t.Fatalf("board out of sync with pieces:\n%s\nwant:\n%s", s.Board(), want)
	}
}
