package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/subterra/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "##", core.ColorWall)
	s.DrawText(2, 0, "EE", core.ColorEndZone)
	s.DrawText(1, 1, "^", core.ColorCraft)

	out := RenderScreen(s)
	assert.Equal(t, 6, lipgloss.Width(out))
	assert.Equal(t, 2, lipgloss.Height(out))
	assert.Contains(t, out, "##")
	assert.Contains(t, out, "EE")
	assert.Contains(t, out, "^")
}

func TestStyleForUnknownColor(t *testing.T) {
	assert.Equal(t, "x", styleFor(core.Color(200)).Render("x"))
}
