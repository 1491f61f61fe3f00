package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
)

func TestPresenterMessageExpires(t *testing.T) {
	p := NewPresenter(2)
	p.ShowMessage("GET READY", 1)
	assert.Equal(t, "GET READY", p.Message())

	p.Tick(0.5)
	assert.Equal(t, "GET READY", p.Message())

	p.Tick(0.6)
	assert.Empty(t, p.Message())
}

func TestPresenterMessageReplaced(t *testing.T) {
	p := NewPresenter(2)
	p.ShowMessage("first", 1)
	p.Tick(0.8)

	p.ShowMessage("second", 1)
	assert.Equal(t, "second", p.Message())

	// The first message's timer must not clear the second one.
	p.Tick(0.5)
	assert.Equal(t, "second", p.Message())

	p.Tick(0.6)
	assert.Empty(t, p.Message())
}

func TestPresenterPersistentMessage(t *testing.T) {
	p := NewPresenter(2)
	p.ShowMessage("stay", 0)
	p.Tick(10)
	assert.Equal(t, "stay", p.Message())
}

func TestPresenterHUDValues(t *testing.T) {
	p := NewPresenter(2)
	p.UpdateScore(150)
	p.UpdateHighScore(900)
	p.UpdateLives(3)
	p.UpdateTime("01:05")
	p.UpdateCave("2-3")

	hud := p.HUD(200, true)
	for _, want := range []string{"000150", "000900", "2-3", "01:05", "♥♥♥", "PAUSED"} {
		assert.Contains(t, hud, want)
	}

	assert.NotContains(t, p.HUD(200, false), "PAUSED")
}

func TestPresenterHUDManyLives(t *testing.T) {
	p := NewPresenter(2)
	p.UpdateLives(7)
	assert.Contains(t, p.HUD(200, false), "♥x7")
}

func TestPresenterTallyAndPanel(t *testing.T) {
	p := NewPresenter(2)

	p.ShowBonusTally(12, 0)
	p.ShowBonusTally(11, 5)
	remaining, points, shown := p.Tally()
	assert.True(t, shown)
	assert.Equal(t, 11.0, remaining)
	assert.Equal(t, 5, points)

	p.HideBonusTally()
	_, _, shown = p.Tally()
	assert.False(t, shown)

	p.ShowOptions(session.PanelQuit)
	assert.Equal(t, session.PanelQuit, p.Panel())
	p.HideOptions()
	assert.Equal(t, session.PanelNone, p.Panel())
}

func TestPresenterDraw(t *testing.T) {
	p := NewPresenter(2)
	screen := core.NewScreen(40, 24)
	area := screen.Bounds()

	// Fully black until faded in.
	screen.FillRect(area, '#', core.ColorWall)
	p.Draw(screen, area, false)
	assert.NotContains(t, screen.String(), "#")

	sig := p.FadeToVisible()
	for !sig.Done() {
		p.Tick(0.1)
	}

	screen.FillRect(area, '#', core.ColorWall)
	p.ShowMessage("CRASHED!", 2)
	p.ShowOptions(session.PanelGameOver)
	p.Draw(screen, area, false)

	out := screen.String()
	assert.Contains(t, out, "#")
	assert.Contains(t, out, "CRASHED!")
	assert.Contains(t, out, "Play again?")
	assert.Contains(t, out, "[Y]es")
}

func TestPresenterDrawPausedPopup(t *testing.T) {
	p := NewPresenter(2)
	p.Fader().Alpha = 0
	screen := core.NewScreen(40, 24)

	p.Draw(screen, screen.Bounds(), true)
	require.Contains(t, screen.String(), "PAUSED")

	screen.Clear()
	p.ShowOptions(session.PanelGameCompleted)
	p.Draw(screen, screen.Bounds(), true)
	out := screen.String()
	assert.NotContains(t, out, "PAUSED")
	assert.True(t, strings.Contains(out, "[Enter] OK"))
}

func TestPresenterHUDNarrowKeepsPaused(t *testing.T) {
	p := NewPresenter(2)
	p.UpdateLives(3)
	p.UpdateShield(session.NewShield(5))

	hud := p.HUD(40, true)
	assert.Contains(t, hud, "PAUSED")
	assert.LessOrEqual(t, lipgloss.Width(hud), 40)
}

func TestPresenterPausedPopupReplacesMessage(t *testing.T) {
	p := NewPresenter(2)
	p.Fader().Alpha = 0
	p.ShowMessage("GO!", 1.5)
	screen := core.NewScreen(40, 24)

	p.Draw(screen, screen.Bounds(), true)
	out := screen.String()
	assert.Contains(t, out, "PAUSED")
	assert.NotContains(t, out, "GO!")

	screen.Clear()
	p.Draw(screen, screen.Bounds(), false)
	assert.Contains(t, screen.String(), "GO!")
}
