package klotski

import (
	"time"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

// Snapshot captures the visible game state for tests and debugging.
type Snapshot struct {
	Tick       uint64
	LevelID    string
	LevelIndex int
	Moves      int
	Elapsed    time.Duration
	Status     string // "inactive", "running", "paused" or "won"
	Selected   int
	Dragging   bool
	DragOffset engine.Offset
	Board      string // One row per line, see engine.Board.String
	TooSmall   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.session.State()
	snap := Snapshot{
		Tick:       g.tick,
		LevelID:    st.LevelID,
		LevelIndex: st.LevelIndex,
		Moves:      st.Moves,
		Elapsed:    st.Elapsed,
		Status:     g.session.Status().String(),
		Selected:   g.selected,
		Dragging:   g.drag.Active(),
		DragOffset: g.drag.Committed(),
		TooSmall:   g.tooSmall(),
	}
	if b := g.session.Board(); b != nil {
		snap.Board = b.String()
	}
	return snap
}
