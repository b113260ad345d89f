package engine

import "testing"

func TestPieceTypeShapes(t *testing.T) {
	tests := []struct {
		typ  PieceType
		w, h int
		id   string
	}{
		{PieceSmall, 1, 1, "small"},
		{PieceTall, 1, 2, "tall"},
		{PieceWide, 2, 1, "wide"},
		{PieceBig, 2, 2, "big"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if tt.typ.Width() != tt.w || tt.typ.Height() != tt.h {
				t.Errorf("%s size = %dx%d, want %dx%d", tt.id, tt.typ.Width(), tt.typ.Height(), tt.w, tt.h)
			}
			if tt.typ.DisplayID() != tt.id {
				t.Errorf("DisplayID() = %q, want %q", tt.typ.DisplayID(), tt.id)
			}
			got, ok := ParsePieceType(tt.id)
			if !ok || got != tt.typ {
				t.Errorf("ParsePieceType(%q) = %v, %v", tt.id, got, ok)
			}
		})
	}

	if len(PieceTypes()) != 4 {
		t.Errorf("PieceTypes() has %d entries, want 4", len(PieceTypes()))
	}
}

func TestParsePieceTypeAliases(t *testing.T) {
	tests := map[string]PieceType{
		"1x1":        PieceSmall,
		"Vertical":   PieceTall,
		"horizontal": PieceWide,
		" LARGE ":    PieceBig,
		"2x2":        PieceBig,
	}
	for in, want := range tests {
		got, ok := ParsePieceType(in)
		if !ok || got != want {
			t.Errorf("ParsePieceType(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}

	if _, ok := ParsePieceType("3x3"); ok {
		t.Error("ParsePieceType(3x3) should fail")
	}
}

func TestInvalidPieceType(t *testing.T) {
	bad := PieceType(42)
	if bad.Valid() {
		t.Error("PieceType(42) should be invalid")
	}
	if bad.Width() != 0 || bad.Height() != 0 {
		t.Error("invalid type should have zero size")
	}
	if bad.Glyph() != '?' {
		t.Errorf("Glyph() = %q, want '?'", bad.Glyph())
	}
}

func TestPieceShift(t *testing.T) {
	p := Piece{ID: 3, Type: PieceWide, X: 1, Y: 1}
	moved := p.Shift(Offset{DX: 2, DY: -1})

	if moved.X != 3 || moved.Y != 0 {
		t.Errorf("Shift = (%d,%d), want (3,0)", moved.X, moved.Y)
	}
	if p.X != 1 || p.Y != 1 {
		t.Error("Shift must not modify the receiver")
	}
	if r := moved.Rect(); r.W != 2 || r.H != 1 {
		t.Errorf("Rect size = %dx%d, want 2x1", r.W, r.H)
	}
}
