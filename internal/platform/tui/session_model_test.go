package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/subterra/internal/session"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm, cmd
}

func TestSessionModelMenuGameMenu(t *testing.T) {
	env := testEnv(t)
	m := NewSessionModel(env)
	assert.Equal(t, screenMenu, m.screen)

	m, cmd := sessionUpdate(t, m, keyEnter)
	require.Equal(t, screenGame, m.screen)
	assert.NotNil(t, cmd, "game tick loop starts")

	for range 2000 {
		if m.gameModel.Controller().Phase() == session.PhasePlaying {
			break
		}
		m, _ = sessionUpdate(t, m, TickMsg{})
	}
	require.Equal(t, session.PhasePlaying, m.gameModel.Controller().Phase())

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = sessionUpdate(t, m, runeKey('y'))
	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.gameModel)
	assert.Equal(t, MenuChoiceNone, m.menu.Choice())
	assert.False(t, m.quitting)

	runs, err := env.Store.TopRuns(env.Player, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSessionModelScoreboard(t *testing.T) {
	m := NewSessionModel(testEnv(t))

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScoreboard, m.screen)
	assert.Contains(t, m.View(), "HIGH SCORES")

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)
	assert.Contains(t, m.View(), "S U B T E R R A")
}

func TestSessionModelQuit(t *testing.T) {
	m := NewSessionModel(testEnv(t))
	m, cmd := sessionUpdate(t, m, runeKey('q'))
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestSessionModelResize(t *testing.T) {
	m := NewSessionModel(testEnv(t))
	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.env.Runtime.ScreenW)
	assert.Equal(t, 40, m.env.Runtime.ScreenH)
}
