package session

import (
	"math"

	"github.com/vovakirdan/subterra/internal/catalog"
)

// Scoring rules.
const (
	PointsPerCave        = 100
	BonusPointsPerSecond = 5
)

// Advance is the result of finishing a cave.
type Advance int

const (
	AdvanceContinue Advance = iota
	AdvanceGameCompleted
)

func (a Advance) String() string {
	if a == AdvanceGameCompleted {
		return "GameCompleted"
	}
	return "Continue"
}

// AdvanceAfterCaveCompletion moves the state to the next cave. Within a level
// the cave number increases; after the last cave the next non-empty level is
// chosen and the persisted unlocked level is raised. When no level is left the
// game is completed and the state is left unchanged.
func AdvanceAfterCaveCompletion(st *State, cat *catalog.Catalog) (Advance, error) {
	caves, err := cat.CavesInLevel(st.CurrentLevel)
	if err != nil {
		return AdvanceContinue, err
	}
	if st.CurrentCave < len(caves) {
		st.CurrentCave++
		return AdvanceContinue, nil
	}

	for level := st.CurrentLevel + 1; level <= cat.LevelCount(); level++ {
		next, err := cat.CavesInLevel(level)
		if err != nil {
			return AdvanceContinue, err
		}
		if len(next) == 0 {
			continue
		}
		st.CurrentLevel = level
		st.CurrentCave = 1
		st.raiseUnlockedLevel(level)
		return AdvanceContinue, nil
	}
	return AdvanceGameCompleted, nil
}

// BonusTally converts leftover seconds into points one whole second at a
// time, so a presenter can show every intermediate value.
type BonusTally struct {
	TimeRemaining float64
	Points        int
	perSecond     int
}

// NewBonusTally creates a tally for the given remaining time.
func NewBonusTally(timeRemaining float64, perSecond int) *BonusTally {
	return &BonusTally{TimeRemaining: timeRemaining, perSecond: perSecond}
}

// Step consumes one second and reports whether it did. Nothing is consumed
// once less than a second is left.
func (b *BonusTally) Step() bool {
	if b.TimeRemaining < 1 {
		return false
	}
	b.TimeRemaining--
	b.Points += b.perSecond
	return true
}

// ComputeEndOfCaveBonus returns the bonus for the remaining time: five points
// per whole second, and nothing below one second.
func ComputeEndOfCaveBonus(timeRemaining float64) int {
	if math.IsNaN(timeRemaining) || math.IsInf(timeRemaining, 0) {
		return 0
	}
	tally := NewBonusTally(timeRemaining, BonusPointsPerSecond)
	for tally.Step() {
	}
	return tally.Points
}

// FailureResult is the consequence of losing a cave.
type FailureResult int

const (
	RetrySameCave FailureResult = iota
	GameOver
)

func (f FailureResult) String() string {
	if f == GameOver {
		return "GameOver"
	}
	return "RetrySameCave"
}

// OnLevelFailure takes a life. The cave is retried while lives remain.
func OnLevelFailure(st *State) FailureResult {
	if st.Lives > 0 {
		st.Lives--
	}
	if st.Lives > 0 {
		return RetrySameCave
	}
	return GameOver
}

// ApplyBonus applies a collected bonus box.
func ApplyBonus(kind BonusKind, st *State, player PlayerAgent) {
	switch kind {
	case BonusFullShields:
		player.RemoveAllDamage()
	case BonusOneUp:
		st.Lives++
	}
}
