package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/session"
	"github.com/vovakirdan/subterra/internal/storage"
)

func menuEnv(t *testing.T, prefs session.PersistentStore) Env {
	t.Helper()
	cat, err := catalog.FromLevels([][]catalog.Cave{
		{{ID: "a", Map: testMap}},
		{},
		{{ID: "c", Map: testMap}},
	})
	require.NoError(t, err)
	env := testEnv(t)
	env.Catalog = cat
	env.Prefs = prefs
	return env
}

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestMenuLevels(t *testing.T) {
	prefs := storage.NewMemoryPrefs()
	prefs.SetInt(session.KeyHighestLevel, 2)
	prefs.SetInt(session.KeyHighestScore, 1234)

	m := NewMenuModel(menuEnv(t, prefs), 0)
	require.Len(t, m.Levels(), 3)
	assert.True(t, m.Levels()[0].Selectable())
	assert.True(t, m.Levels()[1].Unlocked)
	assert.False(t, m.Levels()[1].Selectable(), "empty level")
	assert.False(t, m.Levels()[2].Unlocked)
	assert.Contains(t, m.View(), "1234")

	m = NewMenuModel(menuEnv(t, prefs), 3)
	assert.True(t, m.Levels()[2].Selectable())
}

func TestMenuPlay(t *testing.T) {
	m := NewMenuModel(menuEnv(t, nil), 0)

	m, cmd := menuKey(t, m, keyEnter)
	assert.NotNil(t, cmd)
	assert.Equal(t, MenuChoicePlay, m.Choice())
	assert.Equal(t, 1, m.Level())
}

func TestMenuLevelSelectLocked(t *testing.T) {
	m := NewMenuModel(menuEnv(t, nil), 0)

	m, _ = menuKey(t, m, keyDown)
	m, _ = menuKey(t, m, keyEnter)
	assert.Contains(t, m.View(), "SELECT LEVEL")

	m, _ = menuKey(t, m, keyDown)
	m, _ = menuKey(t, m, keyDown)
	m, cmd := menuKey(t, m, keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, MenuChoiceNone, m.Choice())
	assert.Contains(t, m.View(), "Level 3 is locked")

	m, _ = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, m.View(), "S U B T E R R A")
}

func TestMenuLevelSelectUnlocked(t *testing.T) {
	m := NewMenuModel(menuEnv(t, nil), 3)

	m, _ = menuKey(t, m, keyDown)
	m, _ = menuKey(t, m, keyEnter)
	m, _ = menuKey(t, m, keyDown)
	m, _ = menuKey(t, m, keyDown)
	m, cmd := menuKey(t, m, keyEnter)
	assert.NotNil(t, cmd)
	assert.Equal(t, MenuChoicePlay, m.Choice())
	assert.Equal(t, 3, m.Level())
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(menuEnv(t, nil), 0)
	m, _ = menuKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, MenuChoiceScoreboard, m.Choice())

	m = NewMenuModel(menuEnv(t, nil), 0)
	m, cmd := menuKey(t, m, runeKey('q'))
	assert.NotNil(t, cmd)
	assert.Equal(t, MenuChoiceQuit, m.Choice())
	assert.Empty(t, m.View())
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "toolong", centerText("toolong", 3))
}
