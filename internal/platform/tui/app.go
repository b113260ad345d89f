package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-klotski/internal/core"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenRecords
)

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// AppModel switches between the level picker, the game and the records
// screen inside one program, so a terminal or an SSH session keeps a single
// Bubble Tea loop for its whole lifetime.
type AppModel struct {
	player     *Player
	config     core.RuntimeConfig
	screen     appScreen
	menu       MenuModel
	game       GameModel
	records    RecordsModel
	gen        int
	standalone bool
	notice     string
	quitting   bool
}

// NewAppModel opens on the level picker.
func NewAppModel(player *Player, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		player: player,
		config: cfg,
		screen: screenMenu,
		menu:   NewMenuModel(player, cfg),
	}
}

// NewPlayModel opens straight on the game. The player's session must already
// be started; leaving the game ends the program.
func NewPlayModel(player *Player, cfg core.RuntimeConfig) AppModel {
	m := AppModel{
		player:     player,
		config:     cfg,
		screen:     screenGame,
		standalone: true,
		gen:        1,
	}
	m.game = NewGameModel(player, cfg, m.gen)
	return m
}

// Init starts the tick loop when opening on the game.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return nil
}

// Update routes messages to the active screen and handles transitions.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = size.Width
		m.config.ScreenH = size.Height
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	}
	return m, nil
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
	}

	updated, cmd := m.menu.Update(msg)
	m.menu = updated.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsRecords():
		index := m.menu.Cursor().LevelIndex
		if snap, ok := m.player.SavedGame(); ok && index == ContinueIndex {
			index = snap.LevelIndex
		}
		m.records = NewRecordsModel(m.player, index, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenRecords
		return m, nil

	case m.menu.Selected() != nil:
		item := *m.menu.Selected()
		if err := m.player.Start(item.LevelIndex); err != nil {
			m.player.log.Warn("Could not start level", "item", item.Title, "err", err)
			m.menu = NewMenuModel(m.player, m.config)
			m.notice = "Could not start: " + err.Error()
			return m, nil
		}
		return m.enterGame()
	}

	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.game.Update(msg)
	m.game = updated.(GameModel)

	switch {
	case m.game.IsQuitting():
		m.player.Leave()
		return m.quit()

	case m.game.IsGoingBack():
		m.player.Leave()
		if m.standalone {
			return m.quit()
		}
		m.menu = NewMenuModel(m.player, m.config)
		m.screen = screenMenu
		return m, nil
	}

	return m, cmd
}

func (m AppModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	updated, cmd := m.records.Update(msg)
	m.records = updated.(RecordsModel)

	switch {
	case m.records.IsQuitting():
		return m.quit()

	case m.records.IsGoingBack():
		m.menu = NewMenuModel(m.player, m.config)
		m.screen = screenMenu
		return m, nil
	}

	return m, cmd
}

// enterGame switches to a fresh game screen with its own tick chain.
func (m AppModel) enterGame() (tea.Model, tea.Cmd) {
	m.gen++
	m.game = NewGameModel(m.player, m.config, m.gen)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenRecords:
		return m.records.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(noticeStyle.Render(m.notice), m.config.ScreenW) + "\n"
	}
	return view
}

// Screen names the active screen, for tests and logging.
func (m AppModel) Screen() string {
	switch m.screen {
	case screenGame:
		return "game"
	case screenRecords:
		return "records"
	}
	return "menu"
}

// IsQuitting returns true once the program is ending.
func (m AppModel) IsQuitting() bool {
	return m.quitting
}

// Run opens the level picker and runs until the player quits.
func Run(player *Player, cfg core.RuntimeConfig) error {
	return runProgram(NewAppModel(player, cfg))
}

// RunPlay runs the already-started session until the player leaves it.
func RunPlay(player *Player, cfg core.RuntimeConfig) error {
	return runProgram(NewPlayModel(player, cfg))
}

func runProgram(model AppModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
