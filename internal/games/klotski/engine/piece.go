// Package engine implements the sliding-block puzzle rules: piece shapes,
// level layouts, the occupancy board, move validation, drag reconciliation,
// the play session lifecycle and best-record bookkeeping.
//
// The package performs no I/O of its own. Storage, score sync and leaderboard
// submission are reached through the narrow interfaces in ports.go.
package engine

import (
	"strings"

	"github.com/vovakirdan/tui-klotski/internal/core"
)

// PieceType is the shape kind of a block.
type PieceType uint8

const (
	PieceSmall PieceType = iota // 1x1
	PieceTall                   // 1x2
	PieceWide                   // 2x1
	PieceBig                    // 2x2
)

type pieceShape struct {
	width     int
	height    int
	displayID string
	glyph     rune
}

var pieceShapes = [...]pieceShape{
	PieceSmall: {width: 1, height: 1, displayID: "small", glyph: '▪'},
	PieceTall:  {width: 1, height: 2, displayID: "tall", glyph: '▮'},
	PieceWide:  {width: 2, height: 1, displayID: "wide", glyph: '▬'},
	PieceBig:   {width: 2, height: 2, displayID: "big", glyph: '█'},
}

var pieceAliases = map[string]PieceType{
	"small":      PieceSmall,
	"1x1":        PieceSmall,
	"tall":       PieceTall,
	"vertical":   PieceTall,
	"1x2":        PieceTall,
	"wide":       PieceWide,
	"horizontal": PieceWide,
	"2x1":        PieceWide,
	"big":        PieceBig,
	"large":      PieceBig,
	"2x2":        PieceBig,
}

// PieceTypes returns every piece type in catalog order.
func PieceTypes() []PieceType {
	return []PieceType{PieceSmall, PieceTall, PieceWide, PieceBig}
}

// ParsePieceType resolves a display id or alias (case-insensitive).
func ParsePieceType(s string) (PieceType, bool) {
	t, ok := pieceAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// Valid reports whether t is a known piece type.
func (t PieceType) Valid() bool {
	return int(t) < len(pieceShapes)
}

// Width returns the piece width in grid cells.
func (t PieceType) Width() int {
	if !t.Valid() {
		return 0
	}
	return pieceShapes[t].width
}

// Height returns the piece height in grid cells.
func (t PieceType) Height() int {
	if !t.Valid() {
		return 0
	}
	return pieceShapes[t].height
}

// DisplayID returns the stable identifier used in level files and saves.
func (t PieceType) DisplayID() string {
	if !t.Valid() {
		return "unknown"
	}
	return pieceShapes[t].displayID
}

// Glyph returns the rune used to draw the piece in a terminal.
func (t PieceType) Glyph() rune {
	if !t.Valid() {
		return '?'
	}
	return pieceShapes[t].glyph
}

func (t PieceType) String() string {
	return t.DisplayID()
}

// Piece is a live block on the board of the running session.
type Piece struct {
	ID   int
	Type PieceType
	X, Y int
}

// Rect returns the cells covered by the piece.
func (p Piece) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Type.Width(), p.Type.Height())
}

// At returns a copy of the piece moved to (x, y).
func (p Piece) At(x, y int) Piece {
	p.X, p.Y = x, y
	return p
}

// Shift returns a copy of the piece moved by the offset.
func (p Piece) Shift(o Offset) Piece {
	return p.At(p.X+o.DX, p.Y+o.DY)
}
