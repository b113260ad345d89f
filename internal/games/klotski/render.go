package klotski

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-klotski/internal/core"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

const (
	cellWidth  = 6 // Screen columns per grid cell
	cellHeight = 3 // Screen rows per grid cell
	hudHeight  = 3
	footHeight = 2 // Flash message and controls
)

var pieceColors = map[engine.PieceType]core.Color{
	engine.PieceSmall: core.ColorCyan,
	engine.PieceTall:  core.ColorBlue,
	engine.PieceWide:  core.ColorYellow,
	engine.PieceBig:   core.ColorMagenta,
}

// layout returns the screen position of the top-left grid cell and the
// board size in screen cells, borders excluded.
func (g *Game) layout() (x, y, w, h int) {
	lvl := g.session.Level()
	if lvl == nil {
		return 0, 0, 0, 0
	}
	w = lvl.Width * cellWidth
	h = lvl.Height * cellHeight
	x = (g.screenW-(w+2))/2 + 1
	y = hudHeight + 1
	return x, y, w, h
}

func (g *Game) tooSmall() bool {
	if g.session.Level() == nil {
		return false
	}
	_, _, w, h := g.layout()
	return g.screenW < w+2 || g.screenH < hudHeight+h+2+footHeight
}

// CellAt maps a screen position to the grid cell under it.
func (g *Game) CellAt(x, y int) (int, int, bool) {
	if g.session.Level() == nil || g.tooSmall() {
		return 0, 0, false
	}
	bx, by, w, h := g.layout()
	if !core.NewRect(bx, by, w, h).Contains(x, y) {
		return 0, 0, false
	}
	return (x - bx) / cellWidth, (y - by) / cellHeight, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	lvl := g.session.Level()
	if lvl == nil {
		dst.DrawTextCentered(g.screenH/2, "No level loaded", core.ColorGray)
		return
	}
	if g.tooSmall() {
		g.renderTooSmall(dst)
		return
	}

	bx, by, w, h := g.layout()

	g.renderHUD(dst, lvl)
	g.renderBoard(dst, lvl, bx, by, w, h)
	g.renderPieces(dst, bx, by)

	if g.flash != "" {
		dst.DrawTextCentered(by+h+1, g.flash, core.ColorBrightYellow)
	} else if hint := g.moveHint(); hint != "" {
		dst.DrawTextCentered(by+h+1, hint, core.ColorGray)
	}
	dst.DrawTextCentered(g.screenH-1, g.Controls(), core.ColorGray)

	g.renderOverlays(dst, bx+w/2, by+h/2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	_, _, w, h := g.layout()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", w+2, hudHeight+h+2+footHeight, g.screenW, g.screenH), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, lvl *engine.Level) {
	st := g.session.State()

	dst.DrawTextCentered(0, "KLOTSKI", core.ColorBrightWhite)
	dst.DrawTextCentered(1, fmt.Sprintf("Level %d/%d · %s", st.LevelIndex+1, g.levelCount, lvl.Name), core.ColorDefault)

	best := "Best: --"
	if lvl.Solved {
		best = fmt.Sprintf("Best: %d / %s", lvl.BestMoves, FormatElapsed(lvl.BestTime))
	}
	dst.DrawTextCentered(2, fmt.Sprintf("Moves: %d   Time: %s   %s", st.Moves, FormatElapsed(st.Elapsed), best), core.ColorDefault)
}

func (g *Game) renderBoard(dst *core.Screen, lvl *engine.Level, bx, by, w, h int) {
	dst.DrawBox(core.NewRect(bx-1, by-1, w+2, h+2), core.ColorGray)

	target := lvl.TargetRect()
	dst.FillRect(screenRect(target, bx, by), '·', core.ColorGray)

	// Mark the border sides the target area touches.
	sx := bx + target.X*cellWidth
	sy := by + target.Y*cellHeight
	tw := target.W * cellWidth
	th := target.H * cellHeight
	if target.Bottom() == lvl.Height {
		g.drawExitH(dst, sx, by+h, tw)
	}
	if target.Y == 0 {
		g.drawExitH(dst, sx, by-1, tw)
	}
	if target.X == 0 {
		dst.FillRect(core.NewRect(bx-1, sy, 1, th), '║', core.ColorGreen)
	}
	if target.Right() == lvl.Width {
		dst.FillRect(core.NewRect(bx+w, sy, 1, th), '║', core.ColorGreen)
	}
}

var stepArrows = map[engine.Offset]string{
	{DX: 0, DY: -1}: "↑",
	{DX: 0, DY: 1}:  "↓",
	{DX: -1, DY: 0}: "←",
	{DX: 1, DY: 0}:  "→",
}

// moveHint lists the directions the selected piece can move one cell.
func (g *Game) moveHint() string {
	if !g.session.CanInteract() || g.drag.Active() {
		return ""
	}
	p, ok := g.session.Piece(g.selected)
	if !ok {
		return ""
	}
	steps := engine.LegalSteps(p, g.session.Board())
	if len(steps) == 0 {
		return fmt.Sprintf("Piece %d is blocked", p.ID)
	}
	arrows := make([]string, 0, len(steps))
	for _, s := range steps {
		arrows = append(arrows, stepArrows[s])
	}
	return fmt.Sprintf("Piece %d can move %s", p.ID, strings.Join(arrows, " "))
}

func (g *Game) drawExitH(dst *core.Screen, x, y, w int) {
	dst.FillRect(core.NewRect(x, y, w, 1), '═', core.ColorGreen)
	label := " EXIT "
	if len(label) <= w {
		dst.DrawTextColor(x+(w-len(label))/2, y, label, core.ColorBrightGreen)
	}
}

func (g *Game) renderPieces(dst *core.Screen, bx, by int) {
	lvl := g.session.Level()
	dragging := g.drag.Active()

	for _, p := range g.session.Pieces() {
		if dragging && p.ID == g.drag.PieceID() {
			continue
		}
		g.drawPiece(dst, p, bx, by, pieceColor(lvl, p, p.ID == g.selected))
	}

	if p, ok := g.drag.Preview(); ok {
		g.drawPiece(dst, p, bx, by, core.ColorBrightGreen)
	}
}

func (g *Game) drawPiece(dst *core.Screen, p engine.Piece, bx, by int, color core.Color) {
	r := screenRect(p.Rect(), bx, by)
	dst.FillRect(r, ' ', color)
	dst.DrawBox(r, color)

	label := string(p.Type.Glyph()) + strconv.Itoa(p.ID)
	n := len([]rune(label))
	dst.DrawTextColor(r.X+(r.W-n)/2, r.Y+r.H/2, label, color)
}

// pieceColor gives the target piece red and the others a color per type.
// The selected piece is drawn in the bright variant.
func pieceColor(lvl *engine.Level, p engine.Piece, selected bool) core.Color {
	c := core.ColorDefault
	if p.ID == lvl.TargetPieceID {
		c = core.ColorRed
	} else if pc, ok := pieceColors[p.Type]; ok {
		c = pc
	}
	if selected {
		return c.Bright()
	}
	return c
}

func screenRect(r core.Rect, bx, by int) core.Rect {
	return core.NewRect(bx+r.X*cellWidth, by+r.Y*cellHeight, r.W*cellWidth, r.H*cellHeight)
}

func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch g.session.Status() {
	case engine.StatusPaused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case engine.StatusWon:
		st := g.session.State()
		lines := []string{"SOLVED!", fmt.Sprintf("%d moves in %s", st.Moves, FormatElapsed(st.Elapsed))}
		if g.lastWin != nil && g.lastWin.Delta.Improved() {
			lines = append(lines, "New record!")
		}
		if st.LevelIndex+1 < g.levelCount {
			lines = append(lines, "Enter: next level")
		} else {
			lines = append(lines, "All levels complete")
		}
		g.drawOverlay(dst, centerX, centerY, lines...)
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColor(x, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// FormatElapsed renders a duration as mm:ss, or h:mm:ss past an hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
