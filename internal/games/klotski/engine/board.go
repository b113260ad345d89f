package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-klotski/internal/core"
)

// emptyCell marks a cell with no occupant. Piece ids may be any non-negative int.
const emptyCell = -1

// Board is the occupancy grid derived from the live piece list.
// Cells are stored in row-major order: index = y*Width + x.
// The piece list is the source of truth; the grid only speeds up lookups.
type Board struct {
	Width  int
	Height int
	cells  []int
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	b := &Board{
		Width:  width,
		Height: height,
		cells:  make([]int, width*height),
	}
	b.clear()
	return b
}

// BoardFor creates a board sized for the level and fills it from pieces.
// The returned error, if any, comes from Rebuild; the board is usable either way.
func BoardFor(l *Level, pieces []Piece) (*Board, error) {
	b := NewBoard(l.Width, l.Height)
	return b, b.Rebuild(pieces)
}

func (b *Board) clear() {
	for i := range b.cells {
		b.cells[i] = emptyCell
	}
}

// InBounds returns true if the cell is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Rebuild recomputes the grid from scratch. Cells outside the board and cells
// already claimed by an earlier piece are left as they are and reported; every
// other cell is still filled so the board stays usable.
func (b *Board) Rebuild(pieces []Piece) error {
	b.clear()

	var errs []error
	for _, p := range pieces {
		var outside, clashes int
		p.Rect().Each(func(x, y int) {
			if !b.InBounds(x, y) {
				outside++
				return
			}
			i := y*b.Width + x
			if b.cells[i] != emptyCell {
				clashes++
				return
			}
			b.cells[i] = p.ID
		})
		if outside > 0 {
			errs = append(errs, fmt.Errorf("%w: piece %d at (%d,%d), %d cells outside %dx%d",
				ErrOutOfBounds, p.ID, p.X, p.Y, outside, b.Width, b.Height))
		}
		if clashes > 0 {
			errs = append(errs, fmt.Errorf("%w: piece %d at (%d,%d), %d cells taken",
				ErrOverlap, p.ID, p.X, p.Y, clashes))
		}
	}
	return errors.Join(errs...)
}

// Occupant returns the id of the piece covering (x, y).
// Empty and out-of-range cells report false.
func (b *Board) Occupant(x, y int) (int, bool) {
	if !b.InBounds(x, y) {
		return 0, false
	}
	id := b.cells[y*b.Width+x]
	if id == emptyCell {
		return 0, false
	}
	return id, true
}

// ApplyMove clears the cells of from held by id and writes id into to.
// It does no validation; callers check legality first.
func (b *Board) ApplyMove(id int, from, to core.Rect) {
	from.Each(func(x, y int) {
		if b.InBounds(x, y) && b.cells[y*b.Width+x] == id {
			b.cells[y*b.Width+x] = emptyCell
		}
	})
	to.Each(func(x, y int) {
		if b.InBounds(x, y) {
			b.cells[y*b.Width+x] = id
		}
	})
}

// EmptyCount returns the number of unoccupied cells.
func (b *Board) EmptyCount() int {
	n := 0
	for _, c := range b.cells {
		if c == emptyCell {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return &Board{Width: b.Width, Height: b.Height, cells: cells}
}

// Equal returns true if two boards have the same size and occupancy.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for i, c := range b.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as rows of piece ids, '.' for empty cells.
// Ids above 35 are shown as '#'.
func (b *Board) String() string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.Width; x++ {
			id := b.cells[y*b.Width+x]
			switch {
			case id == emptyCell:
				sb.WriteByte('.')
			case id >= 0 && id < len(digits):
				sb.WriteByte(digits[id])
			default:
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}
