package engine

import (
	"math"
	"testing"
)

func boardOf(t *testing.T, l *Level) (*Board, []Piece) {
	t.Helper()
	pieces := l.NewPieces()
	b, err := BoardFor(l, pieces)
	if err != nil {
		t.Fatalf("BoardFor(%s): %v", l.ID, err)
	}
	return b, pieces
}

func TestCanMove(t *testing.T) {
	classic, classicPieces := boardOf(t, classicLevel())
	drop, dropPieces := boardOf(t, dropLevel())
	pair, pairPieces := boardOf(t, pairLevel())

	tests := []struct {
		name   string
		b      *Board
		p      Piece
		dx, dy int
		want   bool
	}{
		{"zero offset", classic, classicPieces[0], 0, 0, true},
		{"big block up off the board", drop, dropPieces[0], 0, -1, false},
		{"big block down", drop, dropPieces[0], 0, 1, true},
		{"big block into its own cells", drop, dropPieces[0], 1, 0, true},
		{"big block off the right edge", drop, dropPieces[0], 2, 0, false},
		{"small onto neighbour", pair, pairPieces[0], 1, 0, false},
		{"small down", pair, pairPieces[0], 0, 1, true},
		{"small into empty gap", classic, classicPieces[6], 0, 1, true},
		{"small right into empty gap", classic, classicPieces[8], 1, 0, true},
		{"wide into small", classic, classicPieces[4], 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.b.Clone()
			if got := CanMove(tt.p, tt.dx, tt.dy, tt.b); got != tt.want {
				t.Errorf("CanMove(%d, %d, %d) = %v, want %v", tt.p.ID, tt.dx, tt.dy, got, tt.want)
			}
			if !before.Equal(tt.b) {
				t.Error("CanMove modified the board")
			}
		})
	}
}

func TestCanSlideRefusesJumpOver(t *testing.T) {
	// 1 . 2 .  on a 4x1 strip: piece 1 cannot hop over piece 2.
	l := &Level{
		ID: "strip", Width: 4, Height: 1,
		Pieces: []PiecePlacement{
			{ID: 1, Type: PieceSmall, X: 0, Y: 0},
			{ID: 2, Type: PieceSmall, X: 2, Y: 0},
		},
		TargetPieceID: 1, TargetX: 3,
	}
	b, pieces := boardOf(t, l)

	if !CanMove(pieces[0], 3, 0, b) {
		t.Fatal("endpoint check alone should accept (3,0)")
	}
	if CanSlide(pieces[0], 3, 0, b) {
		t.Error("CanSlide must reject a slide through an occupied cell")
	}
	if !CanSlide(pieces[0], 1, 0, b) {
		t.Error("CanSlide should accept a slide into the free cell")
	}
	if CanSlide(pieces[1], -2, 0, b) {
		t.Error("CanSlide must reject sliding back over piece 1")
	}
}

func TestHugeOffsetsAreRejected(t *testing.T) {
	b, pieces := boardOf(t, dropLevel())
	p := pieces[0]

	tests := []struct {
		name   string
		dx, dy int
	}{
		{"max right", math.MaxInt, 0},
		{"min left", math.MinInt, 0},
		{"max down", 0, math.MaxInt},
		{"min up", 0, math.MinInt},
		{"both max", math.MaxInt, math.MaxInt},
		{"both min", math.MinInt, math.MinInt},
		{"far but allocatable", 1 << 33, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CanMove(p, tt.dx, tt.dy, b) {
				t.Errorf("CanMove(%d, %d) = true, want false", tt.dx, tt.dy)
			}
			if CanSlide(p, tt.dx, tt.dy, b) {
				t.Errorf("CanSlide(%d, %d) = true, want false", tt.dx, tt.dy)
			}
		})
	}
}

func TestCanSlideDiagonal(t *testing.T) {
	// 1 2
	// . .
	l := &Level{
		ID: "corner", Width: 2, Height: 2,
		Pieces: []PiecePlacement{
			{ID: 1, Type: PieceSmall, X: 0, Y: 0},
			{ID: 2, Type: PieceSmall, X: 1, Y: 0},
		},
		TargetPieceID: 1, TargetX: 1, TargetY: 1,
	}
	b, pieces := boardOf(t, l)

	if !CanSlide(pieces[0], 1, 1, b) {
		t.Error("vertical-first path is clear, slide should be allowed")
	}
	if !CanSlide(pieces[1], -1, 1, b) {
		t.Error("vertical-first path is clear, slide should be allowed")
	}

	_ = b.Rebuild([]Piece{pieces[0], pieces[1], {ID: 3, Type: PieceSmall, X: 0, Y: 1}})
	if CanSlide(pieces[0], 1, 1, b) {
		t.Error("both L paths are blocked, slide should be refused")
	}
}

func TestCanFollow(t *testing.T) {
	b, pieces := boardOf(t, pairLevel())
	p := pieces[0]

	net, ok := CanFollow(p, []Offset{StepDown, StepRight, StepRight, StepUp}, b)
	if !ok {
		t.Fatal("detour around piece 2 should be legal")
	}
	if net != (Offset{DX: 2}) {
		t.Errorf("net = %+v, want {2 0}", net)
	}

	if _, ok := CanFollow(p, []Offset{StepRight}, b); ok {
		t.Error("step into piece 2 should fail")
	}
	if _, ok := CanFollow(p, []Offset{{DX: 2}}, b); ok {
		t.Error("non-unit step should fail")
	}
}

func TestLegalSteps(t *testing.T) {
	b, pieces := boardOf(t, classicLevel())

	if steps := LegalSteps(pieces[0], b); len(steps) != 0 {
		t.Errorf("big block should be stuck, got %v", steps)
	}
	steps := LegalSteps(pieces[6], b)
	if len(steps) != 1 || steps[0] != StepDown {
		t.Errorf("piece 7 steps = %v, want [down]", steps)
	}
}
