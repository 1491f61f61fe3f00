// Package session owns the progression and session state machine of a
// Subterra run: which cave is current, how lives, score and time evolve, and
// when the run ends. Rendering, physics and input are reached only through the
// collaborator interfaces in this package.
package session

// Keys of the values kept in the PersistentStore.
const (
	KeyHighestScore = "highestScore"
	KeyHighestLevel = "highestUnlockedLevel"
)

// StartingLives is the number of lives a new game begins with.
const StartingLives = 3

// PersistentStore is a small integer key-value store that survives between
// sessions. Calls are expected to be fast and synchronous.
type PersistentStore interface {
	GetInt(key string, def int) int
	SetInt(key string, value int)
}

// State is the mutable record of a single run.
type State struct {
	CurrentLevel  int
	CurrentCave   int
	SelectedLevel int
	Score         int
	Lives         int
	TimeRemaining float64
	GodMode       bool

	// UnlockedLevel overrides the persisted highest unlocked level when
	// positive. Zero means use the persisted value.
	UnlockedLevel int

	startingLives int
	store         PersistentStore
}

// NewState creates a state backed by store. startingLives below 1 selects
// StartingLives.
func NewState(store PersistentStore, startingLives int) *State {
	if startingLives < 1 {
		startingLives = StartingLives
	}
	return &State{
		CurrentLevel:  1,
		CurrentCave:   1,
		SelectedLevel: 1,
		Lives:         startingLives,
		startingLives: startingLives,
		store:         store,
	}
}

// ResetForNewGame clears score and lives and rewinds to the first cave.
// A hard reset also forgets the selected level and starts from level 1;
// a soft reset restarts from the selected level.
func (s *State) ResetForNewGame(hard bool) {
	if hard {
		s.SelectedLevel = 1
		s.CurrentLevel = 1
	} else {
		s.CurrentLevel = s.SelectedLevel
	}
	s.Score = 0
	s.Lives = s.startingLives
	s.CurrentCave = 1
	s.TimeRemaining = 0
}

// SetCurrentLevelAndCave selects level as both the starting and current
// level and rewinds to its first cave.
func (s *State) SetCurrentLevelAndCave(level int) {
	s.SelectedLevel = level
	s.CurrentLevel = level
	s.CurrentCave = 1
}

// AddScore adds points to the running score. Negative totals are clamped.
func (s *State) AddScore(points int) {
	s.Score += points
	if s.Score < 0 {
		s.Score = 0
	}
}

// HighestScore returns the persisted highest score.
func (s *State) HighestScore() int {
	return s.store.GetInt(KeyHighestScore, 0)
}

// RecordScoreIfHighest persists the score when it beats the stored highest.
// It reports whether a new high score was written.
func (s *State) RecordScoreIfHighest() bool {
	if s.Score > s.HighestScore() {
		s.store.SetInt(KeyHighestScore, s.Score)
		return true
	}
	return false
}

// HighestUnlockedLevel returns UnlockedLevel when set, otherwise the
// persisted value (default 1).
func (s *State) HighestUnlockedLevel() int {
	if s.UnlockedLevel > 0 {
		return s.UnlockedLevel
	}
	return s.persistedUnlockedLevel()
}

func (s *State) persistedUnlockedLevel() int {
	level := s.store.GetInt(KeyHighestLevel, 1)
	if level < 1 {
		return 1
	}
	return level
}

// raiseUnlockedLevel persists level when it exceeds the stored value.
func (s *State) raiseUnlockedLevel(level int) bool {
	if level > s.persistedUnlockedLevel() {
		s.store.SetInt(KeyHighestLevel, level)
		return true
	}
	return false
}

// IsLevelUnlocked reports whether level may be chosen from level select.
func (s *State) IsLevelUnlocked(level int) bool {
	return level >= 1 && level <= s.HighestUnlockedLevel()
}
