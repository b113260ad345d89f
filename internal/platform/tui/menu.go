package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-klotski/internal/core"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski"
)

// ContinueIndex marks the menu entry that resumes the saved game.
const ContinueIndex = -1

// MenuItem represents a selectable entry in the level picker.
type MenuItem struct {
	LevelIndex int // ContinueIndex for the saved game
	LevelID    string
	Title      string
	Detail     string
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem
	openRecords bool
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewMenuModel lists the player's levels with their records. A saved game
// adds a Continue entry on top, which is where the cursor starts; otherwise
// the cursor starts on the first unsolved level.
func NewMenuModel(player *Player, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, player.Catalog.Len()+1)

	cursor := player.Catalog.FirstUnsolved()
	if snap, ok := player.SavedGame(); ok {
		name := snap.LevelID
		if lvl, found := player.Catalog.ByID(snap.LevelID); found {
			name = lvl.Name
		}
		detail := fmt.Sprintf("%s, %d moves, %s", name, snap.Moves, klotski.FormatElapsed(snap.Elapsed))
		items = append(items, MenuItem{LevelIndex: ContinueIndex, Title: "Continue", Detail: detail})
		cursor = 0
	}

	for i, lvl := range player.Catalog.Levels() {
		detail := "unsolved"
		if lvl.Solved {
			detail = fmt.Sprintf("best %d moves, %s", lvl.BestMoves, klotski.FormatElapsed(lvl.BestTime))
		}
		items = append(items, MenuItem{
			LevelIndex: i,
			LevelID:    lvl.ID,
			Title:      fmt.Sprintf("%2d. %s", i+1, lvl.Name),
			Detail:     detail,
		})
	}

	return MenuModel{
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionRecords:
		m.openRecords = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("K L O T S K I"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Slide the big block to the exit", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-24s %s", item.Title, menuDimStyle.Render(item.Detail))
		if i == m.cursor {
			line = menuCursorStyle.Render("> "+fmt.Sprintf("%-24s", item.Title)) + " " + menuDimStyle.Render(item.Detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Records  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Cursor returns the item under the cursor.
func (m MenuModel) Cursor() MenuItem {
	if len(m.items) == 0 {
		return MenuItem{}
	}
	return m.items[m.cursor]
}

// Items returns the menu entries.
func (m MenuModel) Items() []MenuItem {
	return m.items
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records screen.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
