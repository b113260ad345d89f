package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is a bounds or occupancy violation.
	ErrInvalidMove = errors.New("invalid move")
	// ErrCorruptSave is a snapshot with missing or undecodable fields.
	ErrCorruptSave = errors.New("corrupt saved session")
	// ErrUnknownLevel is a level id or index that is not in the catalog.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrStateViolation is an operation attempted in a state that forbids it.
	ErrStateViolation = errors.New("operation not allowed in current state")
	// ErrOutOfBounds is a piece that does not fit on the board.
	ErrOutOfBounds = errors.New("piece out of bounds")
	// ErrOverlap is two pieces claiming the same cell.
	ErrOverlap = errors.New("pieces overlap")
	// ErrUnknownPiece is a piece id that is not on the board.
	ErrUnknownPiece = errors.New("unknown piece")
	// ErrNoSavedGame means persistence holds no usable snapshot.
	ErrNoSavedGame = errors.New("no saved game")
)

// ValidationError describes why a level definition was rejected.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
