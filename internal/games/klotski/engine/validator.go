package engine

import "github.com/vovakirdan/tui-klotski/internal/core"

// Offset is an integer grid displacement.
type Offset struct {
	DX, DY int
}

// Manhattan returns |DX| + |DY|.
func (o Offset) Manhattan() int {
	return core.Abs(o.DX) + core.Abs(o.DY)
}

// IsZero reports whether the offset is (0, 0).
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0
}

// IsUnit reports whether the offset is a single axis-aligned cell step.
func (o Offset) IsUnit() bool {
	return o.Manhattan() == 1
}

// Add returns the sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{DX: o.DX + other.DX, DY: o.DY + other.DY}
}

// Unit steps in the four directions.
var (
	StepLeft  = Offset{DX: -1}
	StepRight = Offset{DX: 1}
	StepUp    = Offset{DY: -1}
	StepDown  = Offset{DY: 1}
)

// CanMove reports whether p may occupy its rectangle shifted by (dx, dy).
// Only the endpoint is checked: the shifted rectangle must be on the board and
// each of its cells must be empty or already held by p. (0, 0) is always legal.
// The board is never modified.
func CanMove(p Piece, dx, dy int, b *Board) bool {
	if dx == 0 && dy == 0 {
		return true
	}

	if !fits(p, dx, dy, b) {
		return false
	}

	target := p.Rect().Translate(dx, dy)
	for y := target.Y; y < target.Bottom(); y++ {
		for x := target.X; x < target.Right(); x++ {
			if id, ok := b.Occupant(x, y); ok && id != p.ID {
				return false
			}
		}
	}
	return true
}

// CanSlide reports whether p may slide by (dx, dy) in one go without passing
// through any occupied cell. Every intermediate unit step is checked with
// CanMove from the running position. A slide along both axes is accepted when
// either L-shaped path (horizontal first or vertical first) is clear.
func CanSlide(p Piece, dx, dy int, b *Board) bool {
	if !fits(p, dx, dy, b) {
		return false
	}
	if dx == 0 || dy == 0 {
		_, ok := walk(p, dx, dy, b)
		return ok
	}

	if q, ok := walk(p, dx, 0, b); ok {
		if _, ok := walk(q, 0, dy, b); ok {
			return true
		}
	}
	q, ok := walk(p, 0, dy, b)
	if !ok {
		return false
	}
	_, ok = walk(q, dx, 0, b)
	return ok
}

// CanFollow replays unit steps from p's position, validating each with CanMove.
// It returns the net offset and false at the first step that is not a unit
// step or is not legal.
func CanFollow(p Piece, steps []Offset, b *Board) (Offset, bool) {
	var net Offset
	for _, step := range steps {
		if !step.IsUnit() {
			return net, false
		}
		if !CanMove(p.Shift(net), step.DX, step.DY, b) {
			return net, false
		}
		net = net.Add(step)
	}
	return net, true
}

// LegalSteps returns the unit steps p can make right now.
func LegalSteps(p Piece, b *Board) []Offset {
	var steps []Offset
	for _, step := range []Offset{StepUp, StepDown, StepLeft, StepRight} {
		if CanMove(p, step.DX, step.DY, b) {
			steps = append(steps, step)
		}
	}
	return steps
}

// fits reports whether p shifted by (dx, dy) stays on the board. The offset
// is compared against the free room on each side so huge values cannot wrap.
func fits(p Piece, dx, dy int, b *Board) bool {
	r := p.Rect()
	return dx >= -r.X && dx <= b.Width-r.Right() &&
		dy >= -r.Y && dy <= b.Height-r.Bottom()
}

// walk moves p one unit step at a time along a single axis, checking each
// step with CanMove. One of dx, dy is expected to be zero and the offset to
// be on the board already.
func walk(p Piece, dx, dy int, b *Board) (Piece, bool) {
	step := Offset{DX: core.Sign(dx), DY: core.Sign(dy)}
	for n := core.Abs(dx) + core.Abs(dy); n > 0; n-- {
		if !CanMove(p, step.DX, step.DY, b) {
			return p, false
		}
		p = p.Shift(step)
	}
	return p, true
}
