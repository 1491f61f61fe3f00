package session

import (
	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/core"
)

// CaveHandle is an instantiated cave.
type CaveHandle interface {
	// Destroy releases the cave content.
	Destroy()
	// ReactivateBonuses restores every bonus box collected in a previous try.
	ReactivateBonuses()
}

// ContentProvider instantiates caves.
type ContentProvider interface {
	LoadCaveContent(c catalog.Cave) (CaveHandle, error)
	StartPosition(h CaveHandle) core.Vec
}

// PlayerAgent is the craft controlled by the pilot. It reports collisions
// and end-zone progress through a PlayerListener.
type PlayerAgent interface {
	ResetState(start core.Vec)
	SetActive(active bool)
	RemoveAllDamage()
	// SetSuspended locks or unlocks movement and input while paused.
	SetSuspended(suspended bool)
	// SetInvulnerable disables shield damage (god mode).
	SetInvulnerable(invulnerable bool)
}

// PlayerListener receives the craft's signals. The controller queues them and
// acts on the next tick.
type PlayerListener interface {
	OnFatalCollision()
	OnHeldInEndZone(seconds float64)
	OnBonusCollected(kind BonusKind)
}

// PresentationSink displays messages, HUD values and overlays.
type PresentationSink interface {
	ShowMessage(text string, seconds float64)
	UpdateScore(score int)
	UpdateHighScore(score int)
	UpdateTime(text string)
	UpdateLives(lives int)
	UpdateCave(label string)
	StraightToBlack()
	FadeToBlack() core.Signal
	FadeToVisible() core.Signal
	ShowBonusTally(timeRemaining float64, points int)
	HideBonusTally()
	ShowOptions(panel OptionPanel)
	HideOptions()
}
