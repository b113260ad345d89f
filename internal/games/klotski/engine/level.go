package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-klotski/internal/core"
)

// PiecePlacement is the authored starting position of one piece.
type PiecePlacement struct {
	ID   int
	Type PieceType
	X, Y int // Top-left cell
}

// Rect returns the cells covered by the placement.
func (p PiecePlacement) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Type.Width(), p.Type.Height())
}

// Level is a board size, a starting layout and a win condition.
// Only BestMoves, BestTime and Solved change after load, through the Ledger.
type Level struct {
	ID     string
	Name   string
	Width  int
	Height int
	Pieces []PiecePlacement

	TargetPieceID int
	TargetX       int
	TargetY       int

	BestMoves int
	BestTime  time.Duration
	Solved    bool // BestMoves and BestTime hold a record
}

// Placement returns the placement with the given piece id.
func (l *Level) Placement(id int) (PiecePlacement, bool) {
	for _, p := range l.Pieces {
		if p.ID == id {
			return p, true
		}
	}
	return PiecePlacement{}, false
}

// TargetRect returns the rectangle the target piece must occupy to win.
func (l *Level) TargetRect() core.Rect {
	p, ok := l.Placement(l.TargetPieceID)
	if !ok {
		return core.NewRect(l.TargetX, l.TargetY, 0, 0)
	}
	return core.NewRect(l.TargetX, l.TargetY, p.Type.Width(), p.Type.Height())
}

// NewPieces returns fresh live pieces at their initial positions.
func (l *Level) NewPieces() []Piece {
	pieces := make([]Piece, len(l.Pieces))
	for i, p := range l.Pieces {
		pieces[i] = Piece{ID: p.ID, Type: p.Type, X: p.X, Y: p.Y}
	}
	return pieces
}

// Clone returns a deep copy of the level.
func (l *Level) Clone() *Level {
	c := *l
	c.Pieces = append([]PiecePlacement(nil), l.Pieces...)
	return &c
}

// IsWin reports whether the given pieces satisfy the level's win condition.
func (l *Level) IsWin(pieces []Piece) bool {
	for _, p := range pieces {
		if p.ID == l.TargetPieceID {
			return p.X == l.TargetX && p.Y == l.TargetY
		}
	}
	return false
}

// Validate checks the authoring invariants: positive size, unique piece ids,
// every placement inside the board, no overlaps, a reachable target
// rectangle, and a layout that is not already solved.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return ValidationError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("level %q: board size %dx%d", l.ID, l.Width, l.Height),
		}
	}

	seen := make(map[int]bool, len(l.Pieces))
	for i, p := range l.Pieces {
		if p.ID < 0 {
			return ValidationError{
				Code:    "BAD_PIECE_ID",
				Message: fmt.Sprintf("level %q: piece id %d is negative", l.ID, p.ID),
			}
		}
		if seen[p.ID] {
			return ValidationError{
				Code:    "DUPLICATE_PIECE",
				Message: fmt.Sprintf("level %q: piece id %d used twice", l.ID, p.ID),
			}
		}
		seen[p.ID] = true

		if !p.Type.Valid() {
			return ValidationError{
				Code:    "BAD_PIECE_TYPE",
				Message: fmt.Sprintf("level %q: piece %d has unknown type", l.ID, p.ID),
			}
		}

		r := p.Rect()
		if !r.Within(l.Width, l.Height) {
			return ValidationError{
				Code: "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("level %q: piece %d at (%d,%d) size %dx%d exceeds %dx%d board",
					l.ID, p.ID, p.X, p.Y, r.W, r.H, l.Width, l.Height),
			}
		}

		for _, other := range l.Pieces[:i] {
			if r.Intersects(other.Rect()) {
				return ValidationError{
					Code:    "OVERLAP",
					Message: fmt.Sprintf("level %q: pieces %d and %d overlap", l.ID, other.ID, p.ID),
				}
			}
		}
	}

	target, ok := l.Placement(l.TargetPieceID)
	if !ok {
		return ValidationError{
			Code:    "UNKNOWN_TARGET",
			Message: fmt.Sprintf("level %q: target piece %d not in layout", l.ID, l.TargetPieceID),
		}
	}
	if !l.TargetRect().Within(l.Width, l.Height) {
		return ValidationError{
			Code:    "TARGET_OUT_OF_BOUNDS",
			Message: fmt.Sprintf("level %q: target (%d,%d) does not fit the board", l.ID, l.TargetX, l.TargetY),
		}
	}
	if target.X == l.TargetX && target.Y == l.TargetY {
		return ValidationError{
			Code:    "ALREADY_SOLVED",
			Message: fmt.Sprintf("level %q: target piece starts on the exit", l.ID),
		}
	}

	return nil
}
