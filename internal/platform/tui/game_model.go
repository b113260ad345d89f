package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-klotski/internal/core"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski"
)

// GameModel is the Bubble Tea model for playing one session.
// It never quits the program itself; the owner checks IsGoingBack and
// IsQuitting after each update.
type GameModel struct {
	player        *Player
	game          *klotski.Game
	screen        *core.Screen
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	inputFrame    core.InputFrame
	gen           int
	goingBack     bool
	quitting      bool
	screenshotDir string
}

// NewGameModel creates a game model for player. gen tags the tick chain so
// ticks left over from an earlier game screen are ignored.
func NewGameModel(player *Player, cfg core.RuntimeConfig, gen int) GameModel {
	home, _ := os.UserHomeDir()
	return GameModel{
		player:        player,
		game:          player.Game,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:        cfg,
		keyMapper:     NewKeyMapper(),
		inputFrame:    core.NewInputFrame(),
		gen:           gen,
		screenshotDir: filepath.Join(home, ".klotski", "screenshots"),
	}
}

// Init applies the screen size and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if path, err := m.saveScreenshot(); err != nil {
			m.player.log.Warn("Screenshot failed", "err", err)
		} else {
			m.player.log.Info("Screenshot saved", "path", path)
		}
		return m, nil
	case "esc":
		// Esc drops a drag in progress before it leaves the screen.
		if m.game.CancelPointer() {
			return m, nil
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
	case action == core.ActionBack:
		m.goingBack = true
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse maps left-button press, motion and release onto the board.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.game.PointerDown(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		if m.game.Dragging() {
			m.game.PointerMove(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		if m.game.Dragging() {
			m.game.PointerMove(msg.X, msg.Y)
			m.game.PointerUp()
		}
	}
	return m, nil
}

// handleResize re-lays out the board. The session itself is untouched.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Reset(m.config)
	return m, nil
}

// handleTick advances the game by one tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return "", err
	}

	level := "none"
	if lvl := m.player.Session.Level(); lvl != nil {
		level = lvl.ID
	}
	name := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), level, time.Now().Format("20060102_150405"))
	path := filepath.Join(m.screenshotDir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsGoingBack returns true if the player asked to leave the game.
func (m GameModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the runtime config, updated by resizes.
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}
