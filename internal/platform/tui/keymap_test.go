package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/subterra/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w thrusts", runeKey('w'), core.ActionThrust, false},
		{"up thrusts", tea.KeyMsg{Type: tea.KeyUp}, core.ActionThrust, false},
		{"space thrusts", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionThrust, false},
		{"a rotates left", runeKey('a'), core.ActionRotateLeft, false},
		{"right rotates right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRotateRight, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"y answers yes", runeKey('y'), core.ActionYes, false},
		{"n answers no", runeKey('n'), core.ActionNo, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"x is unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(runeKey('w'), &frame))
	assert.False(t, km.MapKeyToFrame(runeKey('d'), &frame))
	assert.False(t, km.MapKeyToFrame(runeKey('x'), &frame))

	assert.True(t, frame.Has(core.ActionThrust))
	assert.True(t, frame.Has(core.ActionRotateRight))
	assert.False(t, frame.Has(core.ActionNone))
	assert.Equal(t, 2, frame.Len())
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runeKey('k')))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey('q')))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey('x')))
}
