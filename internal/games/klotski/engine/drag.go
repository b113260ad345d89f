package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-klotski/internal/core"
)

// DragHost is what a Drag needs from the session it steers.
type DragHost interface {
	CanInteract() bool
	Piece(id int) (Piece, bool)
	Board() *Board
	CommitPath(id int, steps []Offset) bool
}

// Drag turns a continuous pointer displacement into validated unit steps.
//
// Steps are only recorded while the gesture is live. The board is touched once,
// at End, when the recorded path is handed to the host. Until then the board
// keeps showing the last committed position, so Cancel has nothing to undo.
type Drag struct {
	host DragHost

	active    bool
	pieceID   int
	origin    Piece
	committed Offset
	path      []Offset
}

// NewDrag creates a reconciler bound to host.
func NewDrag(host DragHost) *Drag {
	return &Drag{host: host}
}

// Begin starts a gesture on the given piece.
func (d *Drag) Begin(pieceID int) error {
	if d.active {
		return fmt.Errorf("%w: drag already in progress on piece %d", ErrStateViolation, d.pieceID)
	}
	if !d.host.CanInteract() {
		return fmt.Errorf("%w: session is not running", ErrStateViolation)
	}
	p, ok := d.host.Piece(pieceID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPiece, pieceID)
	}

	d.active = true
	d.pieceID = pieceID
	d.origin = p
	d.committed = Offset{}
	d.path = d.path[:0]
	return nil
}

// Update feeds the total displacement since Begin, in fractional grid units.
// Each axis advances at most one cell toward the rounded target, horizontal
// first. A blocked step leaves its axis where it was. Returns the committed offset.
func (d *Drag) Update(fx, fy float64) Offset {
	if !d.active || !d.host.CanInteract() {
		return d.committed
	}

	target := Offset{DX: int(math.Round(fx)), DY: int(math.Round(fy))}
	if step := (Offset{DX: core.Sign(target.DX - d.committed.DX)}); !step.IsZero() {
		d.try(step)
	}
	if step := (Offset{DY: core.Sign(target.DY - d.committed.DY)}); !step.IsZero() {
		d.try(step)
	}
	return d.committed
}

func (d *Drag) try(step Offset) {
	at := d.origin.Shift(d.committed)
	if !CanMove(at, step.DX, step.DY, d.host.Board()) {
		return
	}
	d.committed = d.committed.Add(step)
	d.path = append(d.path, step)
}

// End finishes the gesture. A non-zero committed offset is handed to the host
// as the recorded step path; a zero offset snaps back without a move.
// Reports whether a move was committed.
func (d *Drag) End() bool {
	if !d.active {
		return false
	}
	id, committed := d.pieceID, d.committed
	path := append([]Offset(nil), d.path...)
	d.reset()

	if committed.IsZero() {
		return false
	}
	return d.host.CommitPath(id, path)
}

// Cancel drops the gesture. The board is untouched.
func (d *Drag) Cancel() {
	d.reset()
}

func (d *Drag) reset() {
	d.active = false
	d.committed = Offset{}
	d.path = d.path[:0]
}

// Active reports whether a gesture is in progress.
func (d *Drag) Active() bool { return d.active }

// PieceID returns the dragged piece id.
func (d *Drag) PieceID() int { return d.pieceID }

// Committed returns the validated offset so far.
func (d *Drag) Committed() Offset { return d.committed }

// Origin returns the dragged piece as it was at Begin.
func (d *Drag) Origin() Piece { return d.origin }

// Preview returns the dragged piece at its committed position.
func (d *Drag) Preview() (Piece, bool) {
	if !d.active {
		return Piece{}, false
	}
	return d.origin.Shift(d.committed), true
}
