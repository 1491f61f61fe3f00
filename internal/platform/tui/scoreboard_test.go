package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/subterra/internal/session"
	"github.com/vovakirdan/subterra/internal/storage"
)

func scoreStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.RunEntry{
		{Player: "ada", Score: 300, Level: 2, Cave: 1, Outcome: session.RunGameOver},
		{Player: "bob", Score: 900, Level: 3, Cave: 1, Outcome: session.RunCompleted},
		{Player: "ada", Score: 100, Level: 1, Cave: 2, Outcome: session.RunQuit},
	} {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}
	return store
}

func TestScoreboardViews(t *testing.T) {
	m := NewScoreboardModel(scoreStore(t), "ada", 100, 30)
	require.Len(t, m.Runs(), 3)
	assert.Equal(t, 900, m.Runs()[0].Score)

	view := m.View()
	assert.Contains(t, view, "All pilots")
	assert.Contains(t, view, "Completed")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	require.Len(t, m.Runs(), 2)
	assert.Equal(t, 300, m.Runs()[0].Score)
	assert.Contains(t, m.View(), "HIGH SCORES - ada")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	assert.Len(t, m.Runs(), 3)
}

func TestScoreboardSingleView(t *testing.T) {
	m := NewScoreboardModel(scoreStore(t), "", 60, 20)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Len(t, m.Runs(), 3)
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "ada", 100, 30)
	assert.Empty(t, m.Runs())
	assert.Contains(t, m.View(), "unavailable")
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "", 100, 30)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd)
	assert.True(t, next.(ScoreboardModel).IsGoingBack())

	next, _ = m.Update(runeKey('q'))
	assert.True(t, next.(ScoreboardModel).IsQuitting())
	assert.False(t, next.(ScoreboardModel).IsGoingBack())
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "Game over", outcomeLabel(session.RunGameOver))
	assert.Equal(t, "Quit", outcomeLabel(session.RunQuit))
	assert.Equal(t, "odd", outcomeLabel("odd"))
}
