// Package formats provides level file parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
	"gopkg.in/yaml.v3"
)

// EmptyGlyph marks a free cell in a layout drawing.
const EmptyGlyph = '.'

// YAMLLevel represents the YAML structure for a level file.
// A level lists its pieces explicitly or draws them as a layout, not both.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Order    int               `yaml:"order,omitempty"`
	Size     YAMLSize          `yaml:"size,omitempty"`
	Target   YAMLTarget        `yaml:"target"`
	Pieces   []YAMLPiece       `yaml:"pieces,omitempty"`
	Layout   []string          `yaml:"layout,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLTarget is the win condition. Piece is used with explicit pieces,
// Glyph with a layout.
type YAMLTarget struct {
	Piece *int   `yaml:"piece,omitempty"`
	Glyph string `yaml:"glyph,omitempty"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}

// YAMLPiece is one explicit placement.
type YAMLPiece struct {
	ID   int    `yaml:"id"`
	Type string `yaml:"type"` // small, tall, wide, big or an alias
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID            string
	Name          string
	Order         int
	Width         int
	Height        int
	Pieces        []engine.PiecePlacement
	TargetPieceID int
	TargetX       int
	TargetY       int
	Metadata      map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if strings.TrimSpace(yl.ID) == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Order:    yl.Order,
		Width:    yl.Size.W,
		Height:   yl.Size.H,
		TargetX:  yl.Target.X,
		TargetY:  yl.Target.Y,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	switch {
	case len(yl.Layout) > 0 && len(yl.Pieces) > 0:
		return Level{}, fmt.Errorf("level %s: both pieces and layout given", yl.ID)
	case len(yl.Layout) > 0:
		if err := level.fromLayout(yl.Layout, yl.Target.Glyph); err != nil {
			return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
		}
	default:
		if err := level.fromPieces(yl.Pieces, yl.Target.Piece); err != nil {
			return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
		}
	}

	return level, nil
}

func (l *Level) fromPieces(pieces []YAMLPiece, target *int) error {
	if target == nil {
		return fmt.Errorf("target.piece is required with explicit pieces")
	}
	l.TargetPieceID = *target

	for _, p := range pieces {
		typ, ok := engine.ParsePieceType(p.Type)
		if !ok {
			return fmt.Errorf("piece %d: unknown type %q", p.ID, p.Type)
		}
		l.Pieces = append(l.Pieces, engine.PiecePlacement{ID: p.ID, Type: typ, X: p.X, Y: p.Y})
	}
	return nil
}

// fromLayout reads a drawing where each glyph other than '.' is one piece.
// Piece ids are assigned from 1 in reading order of each glyph's first cell.
func (l *Level) fromLayout(rows []string, targetGlyph string) error {
	height := len(rows)
	width := len([]rune(rows[0]))
	for y, row := range rows {
		if n := len([]rune(row)); n != width {
			return fmt.Errorf("layout row %d has %d cells, want %d", y, n, width)
		}
	}
	if l.Width == 0 && l.Height == 0 {
		l.Width, l.Height = width, height
	}
	if l.Width != width || l.Height != height {
		return fmt.Errorf("layout is %dx%d but size says %dx%d", width, height, l.Width, l.Height)
	}

	type extent struct {
		minX, minY, maxX, maxY int
		cells                  int
	}
	var order []rune
	extents := make(map[rune]*extent)
	for y, row := range rows {
		for x, g := range []rune(row) {
			if g == EmptyGlyph {
				continue
			}
			e, ok := extents[g]
			if !ok {
				e = &extent{minX: x, minY: y, maxX: x, maxY: y}
				extents[g] = e
				order = append(order, g)
			}
			e.minX, e.maxX = min(e.minX, x), max(e.maxX, x)
			e.minY, e.maxY = min(e.minY, y), max(e.maxY, y)
			e.cells++
		}
	}

	targetFound := false
	for i, g := range order {
		e := extents[g]
		w, h := e.maxX-e.minX+1, e.maxY-e.minY+1
		if w*h != e.cells {
			return fmt.Errorf("glyph %q is not a solid rectangle", g)
		}
		typ, ok := engine.ParsePieceType(fmt.Sprintf("%dx%d", w, h))
		if !ok {
			return fmt.Errorf("glyph %q has unsupported size %dx%d", g, w, h)
		}

		id := i + 1
		l.Pieces = append(l.Pieces, engine.PiecePlacement{ID: id, Type: typ, X: e.minX, Y: e.minY})
		if string(g) == targetGlyph {
			l.TargetPieceID = id
			targetFound = true
		}
	}

	if !targetFound {
		return fmt.Errorf("target glyph %q not in layout", targetGlyph)
	}
	return nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// ToEngine converts the parsed level into an engine level.
func (l *Level) ToEngine() *engine.Level {
	return &engine.Level{
		ID:            l.ID,
		Name:          l.Name,
		Width:         l.Width,
		Height:        l.Height,
		Pieces:        append([]engine.PiecePlacement(nil), l.Pieces...),
		TargetPieceID: l.TargetPieceID,
		TargetX:       l.TargetX,
		TargetY:       l.TargetY,
	}
}
