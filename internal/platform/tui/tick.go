// Package tui provides the Bubble Tea front end of Subterra: the flight
// view, menus, scoreboard and the SSH server that hosts them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/subterra/internal/core"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd schedules the next simulation tick at the configured rate.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
