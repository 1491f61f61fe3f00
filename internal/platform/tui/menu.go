package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
	"github.com/vovakirdan/subterra/internal/storage"
)

// MenuChoice is what the pilot picked from the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScoreboard
	MenuChoiceQuit
)

// Main menu entries.
const (
	menuItemPlay = iota
	menuItemSelectLevel
	menuItemScores
	menuItemQuit
)

var menuItems = []string{"Play", "Select Level...", "High Scores", "Quit"}

var (
	menuTitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	menuCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuLockedStyle   = styleFor(core.ColorLocked)
	menuUnlockedStyle = styleFor(core.ColorUnlocked)
	menuFooterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// LevelInfo describes one entry of the level select list.
type LevelInfo struct {
	Number   int
	Caves    int
	Unlocked bool
}

// Selectable reports whether the level can be started.
func (l LevelInfo) Selectable() bool {
	return l.Unlocked && l.Caves > 0
}

// MenuModel is the Bubble Tea model for the main menu and level select.
type MenuModel struct {
	cursor        int
	levels        []LevelInfo
	levelCursor   int
	inLevelSelect bool
	highScore     int
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	choice        MenuChoice
	level         int
	notice        string
}

// NewMenuModel creates a menu for env. unlockedLevel overrides the persisted
// highest unlocked level when positive.
func NewMenuModel(env Env, unlockedLevel int) MenuModel {
	prefs := env.Prefs
	if prefs == nil {
		prefs = storage.NewMemoryPrefs()
	}
	state := session.NewState(prefs, env.Config.Session.Lives)
	state.UnlockedLevel = unlockedLevel

	var levels []LevelInfo
	if env.Catalog != nil {
		for n := 1; n <= env.Catalog.LevelCount(); n++ {
			caves, _ := env.Catalog.CavesInLevel(n)
			levels = append(levels, LevelInfo{
				Number:   n,
				Caves:    len(caves),
				Unlocked: state.IsLevelUnlocked(n),
			})
		}
	}

	return MenuModel{
		levels:    levels,
		highScore: state.HighestScore(),
		width:     env.Runtime.ScreenW,
		height:    env.Runtime.ScreenH,
		config:    env.Runtime,
		keyMapper: NewKeyMapper(),
		level:     1,
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
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleMainKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.choice = MenuChoiceScoreboard
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case menuItemPlay:
			m.choice = MenuChoicePlay
			m.level = 1
			return m, tea.Quit
		case menuItemSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
			m.notice = ""
		case menuItemScores:
			m.choice = MenuChoiceScoreboard
			return m, tea.Quit
		case menuItemQuit:
			m.choice = MenuChoiceQuit
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.choice = MenuChoiceQuit
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
		m.notice = ""
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
		m.notice = ""
	case MenuActionSelect:
		if len(m.levels) == 0 {
			return m, nil
		}
		lvl := m.levels[m.levelCursor]
		if !lvl.Selectable() {
			m.notice = fmt.Sprintf("Level %d is locked", lvl.Number)
			if lvl.Unlocked {
				m.notice = fmt.Sprintf("Level %d has no caves", lvl.Number)
			}
			return m, nil
		}
		m.choice = MenuChoicePlay
		m.level = lvl.Number
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
		m.notice = ""
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S U B T E R R A"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("High score: %d", m.highScore), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = menuCursorStyle.Render("> ")
		}
		b.WriteString(centerText(cursor+item, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuFooterStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = menuCursorStyle.Render("> ")
		}

		label := fmt.Sprintf("Level %2d  (%d caves)", lvl.Number, lvl.Caves)
		style := menuUnlockedStyle
		if !lvl.Selectable() {
			style = menuLockedStyle
			if !lvl.Unlocked {
				label += "  locked"
			}
		}
		b.WriteString(centerText(cursor+style.Render(label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(m.notice, m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(menuFooterStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Choice returns what the pilot picked, or MenuChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Level returns the level to start when Choice is MenuChoicePlay.
func (m MenuModel) Level() int {
	return m.level
}

// Levels returns the level select entries.
func (m MenuModel) Levels() []LevelInfo {
	return m.levels
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Level  int
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(env Env, unlockedLevel int) (MenuResult, error) {
	model := NewMenuModel(env, unlockedLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: env.Runtime}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == MenuChoiceNone {
		return MenuResult{Choice: MenuChoiceQuit, Config: env.Runtime}, nil
	}

	return MenuResult{
		Choice: m.Choice(),
		Level:  m.Level(),
		Config: m.Config(),
	}, nil
}
