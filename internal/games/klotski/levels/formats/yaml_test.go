package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

func TestParseYAMLPieces(t *testing.T) {
	data := []byte(`
id: drop
name: Drop
order: 3
size: {w: 4, h: 5}
target: {piece: 0, x: 1, y: 3}
pieces:
  - {id: 0, type: 2x2, x: 1, y: 0}
  - {id: 4, type: vertical, x: 0, y: 3}
metadata:
  difficulty: easy
`)

	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	if lvl.ID != "drop" || lvl.Name != "Drop" || lvl.Order != 3 {
		t.Errorf("header = %q %q %d", lvl.ID, lvl.Name, lvl.Order)
	}
	if lvl.Width != 4 || lvl.Height != 5 {
		t.Errorf("size = %dx%d, want 4x5", lvl.Width, lvl.Height)
	}
	if lvl.TargetPieceID != 0 || lvl.TargetX != 1 || lvl.TargetY != 3 {
		t.Errorf("target = %d at (%d,%d)", lvl.TargetPieceID, lvl.TargetX, lvl.TargetY)
	}
	want := []engine.PiecePlacement{
		{ID: 0, Type: engine.PieceBig, X: 1, Y: 0},
		{ID: 4, Type: engine.PieceTall, X: 0, Y: 3},
	}
	if len(lvl.Pieces) != len(want) {
		t.Fatalf("got %d pieces, want %d", len(lvl.Pieces), len(want))
	}
	for i := range want {
		if lvl.Pieces[i] != want[i] {
			t.Errorf("piece %d = %+v, want %+v", i, lvl.Pieces[i], want[i])
		}
	}
	if lvl.Metadata["difficulty"] != "easy" {
		t.Errorf("metadata = %v", lvl.Metadata)
	}

	if err := lvl.ToEngine().Validate(); err != nil {
		t.Errorf("parsed level should validate: %v", err)
	}
}

func TestParseYAMLLayout(t *testing.T) {
	data := []byte(`
id: classic
target: {glyph: A, x: 1, y: 3}
layout:
  - "BAAC"
  - "BAAC"
  - "DEEF"
  - "DGHF"
  - "I..J"
`)

	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	if lvl.Name != "classic" {
		t.Errorf("Name should default to the id, got %q", lvl.Name)
	}
	if lvl.Width != 4 || lvl.Height != 5 {
		t.Errorf("size = %dx%d, want 4x5", lvl.Width, lvl.Height)
	}
	if len(lvl.Pieces) != 10 {
		t.Fatalf("got %d pieces, want 10", len(lvl.Pieces))
	}

	// Ids follow the first appearance of each glyph: B, A, C, D, E, F, G, H, I, J.
	if lvl.TargetPieceID != 2 {
		t.Errorf("target id = %d, want 2", lvl.TargetPieceID)
	}
	checks := map[int]engine.PiecePlacement{
		1:  {ID: 1, Type: engine.PieceTall, X: 0, Y: 0},
		2:  {ID: 2, Type: engine.PieceBig, X: 1, Y: 0},
		5:  {ID: 5, Type: engine.PieceWide, X: 1, Y: 2},
		10: {ID: 10, Type: engine.PieceSmall, X: 3, Y: 4},
	}
	for _, p := range lvl.Pieces {
		if want, ok := checks[p.ID]; ok && p != want {
			t.Errorf("piece %d = %+v, want %+v", p.ID, p, want)
		}
	}

	b, err := engine.BoardFor(lvl.ToEngine(), lvl.ToEngine().NewPieces())
	if err != nil {
		t.Fatalf("BoardFor: %v", err)
	}
	if b.EmptyCount() != 2 {
		t.Errorf("EmptyCount() = %d, want 2", b.EmptyCount())
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "id: [", "yaml unmarshal"},
		{"no id", "name: x\n", "no id"},
		{"both forms", "id: a\ntarget: {piece: 1}\npieces: [{id: 1, type: small}]\nlayout: [\"A\"]\n", "both"},
		{"missing target piece", "id: a\npieces: [{id: 1, type: small}]\n", "target.piece"},
		{"unknown type", "id: a\ntarget: {piece: 1}\npieces: [{id: 1, type: huge}]\n", "unknown type"},
		{"ragged layout", "id: a\ntarget: {glyph: A}\nlayout: [\"AA\", \"A\"]\n", "row 1"},
		{"size mismatch", "id: a\nsize: {w: 3, h: 1}\ntarget: {glyph: A}\nlayout: [\"A.\"]\n", "size says"},
		{"l-shaped glyph", "id: a\ntarget: {glyph: A}\nlayout: [\"AA\", \"A.\"]\n", "solid rectangle"},
		{"too large", "id: a\ntarget: {glyph: A}\nlayout: [\"AAA\"]\n", "unsupported size"},
		{"missing glyph", "id: a\ntarget: {glyph: Z}\nlayout: [\"A.\"]\n", "not in layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestParseYAMLNegativeIDFailsValidation(t *testing.T) {
	data := []byte(`
id: strip
size: {w: 4, h: 1}
target: {piece: 2, x: 3, y: 0}
pieces:
  - {id: -1, type: small, x: 1, y: 0}
  - {id: 2, type: small, x: 0, y: 0}
`)

	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	var verr engine.ValidationError
	if err := lvl.ToEngine().Validate(); !errors.As(err, &verr) || verr.Code != "BAD_PIECE_ID" {
		t.Fatalf("Validate() = %v, want BAD_PIECE_ID", err)
	}
}
