// Package klotski is the playable sliding-block game: it maps keyboard and
// pointer input onto an engine session and draws the board into a screen buffer.
package klotski

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tui-klotski/internal/core"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

const flashTicks = 45

// Options tune how input maps onto the board.
type Options struct {
	// DragCellWidth and DragCellHeight are the terminal cells of pointer travel
	// that count as one grid cell while dragging.
	DragCellWidth  int
	DragCellHeight int
}

// DefaultOptions makes one grid cell of drag equal one rendered board cell.
func DefaultOptions() Options {
	return Options{DragCellWidth: cellWidth, DragCellHeight: cellHeight}
}

// Game adapts an engine.Session to the platform's tick/step loop.
type Game struct {
	session *engine.Session
	drag    *engine.Drag
	opts    Options

	tick     uint64
	tickRate int
	screenW  int
	screenH  int

	selected   int
	pointerX   int
	pointerY   int
	flash      string
	flashLeft  int
	lastWin    *engine.WinEvent
	levelCount int
}

// New creates a game bound to session.
func New(session *engine.Session, opts Options) *Game {
	if opts.DragCellWidth <= 0 {
		opts.DragCellWidth = cellWidth
	}
	if opts.DragCellHeight <= 0 {
		opts.DragCellHeight = cellHeight
	}

	g := &Game{
		session:    session,
		drag:       engine.NewDrag(session),
		opts:       opts,
		levelCount: len(session.Levels()),
	}
	cfg := core.DefaultConfig()
	g.Reset(cfg)

	session.OnStateChange(g.onStateChange)
	session.OnWin(func(ev engine.WinEvent) {
		g.lastWin = &ev
		g.drag.Cancel()
	})
	g.onStateChange(session.State())
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "klotski"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Klotski"
}

// Reset applies screen size and tick rate. The session is left alone.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
}

// Session returns the engine session driven by the game.
func (g *Game) Session() *engine.Session {
	return g.session
}

func (g *Game) onStateChange(st engine.SessionState) {
	if !st.Won {
		g.lastWin = nil
	}
	if _, ok := g.session.Piece(g.selected); ok {
		return
	}
	if lvl := g.session.Level(); lvl != nil {
		g.selected = lvl.TargetPieceID
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.flashLeft > 0 {
		g.flashLeft--
		if g.flashLeft == 0 {
			g.flash = ""
		}
	}

	if g.tooSmall() || g.session.Level() == nil {
		return core.StepResult{State: g.State()}
	}

	g.session.AdvanceTime(time.Second / time.Duration(g.tickRate))

	if in.Has(core.ActionPause) {
		g.drag.Cancel()
		g.session.TogglePause()
	}

	if in.Has(core.ActionRestart) {
		g.drag.Cancel()
		if err := g.session.Restart(); err != nil {
			g.setFlash(err.Error())
		}
	}

	if in.Has(core.ActionConfirm) && g.session.Status() == engine.StatusWon {
		if err := g.session.NextLevel(); err != nil {
			g.setFlash("That was the last level")
		}
	}

	switch {
	case in.Has(core.ActionNext):
		g.cycleSelection(1)
	case in.Has(core.ActionPrev):
		g.cycleSelection(-1)
	}

	if g.drag.Active() {
		return core.StepResult{State: g.State()}
	}

	var dx, dy int
	switch {
	case in.Has(core.ActionUp):
		dy = -1
	case in.Has(core.ActionDown):
		dy = 1
	case in.Has(core.ActionLeft):
		dx = -1
	case in.Has(core.ActionRight):
		dx = 1
	}
	if dx != 0 || dy != 0 {
		if err := g.Move(dx, dy); errors.Is(err, engine.ErrInvalidMove) {
			g.setFlash("Blocked")
		}
	}

	return core.StepResult{State: g.State()}
}

// Move slides the selected piece.
func (g *Game) Move(dx, dy int) error {
	if !g.session.CanInteract() {
		return fmt.Errorf("%w: game is %s", engine.ErrStateViolation, g.session.Status())
	}
	if !g.session.AttemptMove(g.selected, dx, dy) {
		return fmt.Errorf("%w: piece %d by (%d,%d)", engine.ErrInvalidMove, g.selected, dx, dy)
	}
	return nil
}

// Selected returns the id of the keyboard-selected piece.
func (g *Game) Selected() int {
	return g.selected
}

// Select makes id the keyboard-selected piece.
func (g *Game) Select(id int) bool {
	if _, ok := g.session.Piece(id); !ok {
		return false
	}
	g.selected = id
	return true
}

func (g *Game) cycleSelection(dir int) {
	pieces := g.session.Pieces()
	if len(pieces) == 0 {
		return
	}
	ids := make([]int, len(pieces))
	for i, p := range pieces {
		ids[i] = p.ID
	}
	slices.Sort(ids)

	i := slices.Index(ids, g.selected)
	if i < 0 {
		i = 0
	} else {
		i = (i + dir + len(ids)) % len(ids)
	}
	g.selected = ids[i]
}

// PointerDown grabs the piece under the screen cell (x, y).
func (g *Game) PointerDown(x, y int) bool {
	gx, gy, ok := g.CellAt(x, y)
	if !ok {
		return false
	}
	p, ok := g.session.PieceAt(gx, gy)
	if !ok {
		return false
	}
	if err := g.drag.Begin(p.ID); err != nil {
		return false
	}
	g.selected = p.ID
	g.pointerX, g.pointerY = x, y
	return true
}

// PointerMove feeds the pointer travel since PointerDown to the drag.
func (g *Game) PointerMove(x, y int) {
	if !g.drag.Active() {
		return
	}
	fx := float64(x-g.pointerX) / float64(g.opts.DragCellWidth)
	fy := float64(y-g.pointerY) / float64(g.opts.DragCellHeight)
	g.drag.Update(fx, fy)
}

// PointerUp releases the dragged piece.
func (g *Game) PointerUp() {
	if !g.drag.Active() {
		return
	}
	g.drag.End()
}

// CancelPointer drops an active drag.
func (g *Game) CancelPointer() bool {
	if !g.drag.Active() {
		return false
	}
	g.drag.Cancel()
	return true
}

// Dragging reports whether a pointer drag is in progress.
func (g *Game) Dragging() bool {
	return g.drag.Active()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.State()
	return core.GameState{
		Moves:    st.Moves,
		Finished: st.Won,
		Paused:   st.Paused,
		Active:   st.Active,
	}
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashLeft = flashTicks
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Tab: Select | Mouse: Drag | P: Pause | R: Restart | Q: Quit"
}
