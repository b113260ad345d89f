package core

// Game is the contract between a game and the platform.
// Games hold pure logic with no terminal dependencies; the platform handles
// input mapping, timing and rendering.
type Game interface {
	// ID returns a stable identifier used for storage keys and CLI commands.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset applies the runtime configuration (screen size, tick rate).
	Reset(cfg RuntimeConfig)

	// Step advances the game by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}

// PointerGame is a Game that also accepts press-drag-release pointer input.
// Coordinates are screen cells.
type PointerGame interface {
	Game

	// PointerDown starts a gesture. Reports whether something was grabbed.
	PointerDown(x, y int) bool

	// PointerMove reports the pointer position during a gesture.
	PointerMove(x, y int)

	// PointerUp ends the gesture.
	PointerUp()

	// CancelPointer aborts the gesture. Reports whether one was active.
	CancelPointer() bool
}
