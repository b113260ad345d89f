package core

// RuntimeConfig contains configuration passed to a game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Ticks per second driving the session clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Moves    int  // Moves made in the current level
	Finished bool // Level solved
	Paused   bool // Session paused
	Active   bool // A level is loaded and playable
}

// StepResult is returned by a game after each tick.
type StepResult struct {
	State GameState
}
