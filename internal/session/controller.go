package session

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/config"
	"github.com/vovakirdan/subterra/internal/core"
)

var (
	// ErrSessionActive is returned when a new game is requested while a run
	// is still in progress.
	ErrSessionActive = errors.New("session: a run is already in progress")

	// ErrResetRequired is returned when a new game is requested after a run
	// ended without RefreshForNewGame or QuitPlay.
	ErrResetRequired = errors.New("session: run ended, reset before starting a new game")

	// ErrLevelLocked is returned when selecting a level above the highest
	// unlocked one.
	ErrLevelLocked = errors.New("session: level is locked")
)

// ControlsHelp is shown at the start of a new game.
const ControlsHelp = "W/Up: thrust   A/D, Left/Right: rotate\nP: pause   Esc: end game"

// Run outcomes reported in RunSummary.
const (
	RunGameOver  = "game_over"
	RunCompleted = "completed"
	RunQuit      = "quit"
)

// RunSummary describes a finished run.
type RunSummary struct {
	Score   int
	Level   int
	Cave    int
	Outcome string
	Played  float64 // Seconds spent in PhasePlaying
}

// Options configures a Controller.
type Options struct {
	Catalog   *catalog.Catalog
	Content   ContentProvider
	Player    PlayerAgent
	Presenter PresentationSink
	Store     PersistentStore
	Logger    *log.Logger
	Config    config.Config

	// OnRunFinished is called once when a run ends or is abandoned.
	OnRunFinished func(RunSummary)
	// OnQuit is called after QuitPlay so the host can return to its menu.
	OnQuit func()
}

type eventKind int

const (
	eventFatal eventKind = iota
	eventHeld
	eventBonus
)

type event struct {
	kind  eventKind
	held  float64
	bonus BonusKind
}

// Controller orchestrates the timed phase sequence of a run: load cave,
// countdown, play, resolve the outcome, then advance or retry. It is driven
// by Tick from a single host loop.
type Controller struct {
	cat       *catalog.Catalog
	content   ContentProvider
	player    PlayerAgent
	presenter PresentationSink
	logger    *log.Logger
	cfg       config.Config

	onRunFinished func(RunSummary)
	onQuit        func()

	state         *State
	phase         Phase
	outcome       Outcome
	paused        bool
	newGame       bool
	resetRequired bool
	runFinished   bool
	played        float64
	panel         OptionPanel
	cave          catalog.Cave
	handle        CaveHandle
	flow          core.Slot
	events        []event
	err           error
}

// New creates a controller in PhaseIdle.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Catalog == nil:
		return nil, errors.New("session: catalog is required")
	case opts.Content == nil:
		return nil, errors.New("session: content provider is required")
	case opts.Player == nil:
		return nil, errors.New("session: player is required")
	case opts.Presenter == nil:
		return nil, errors.New("session: presenter is required")
	case opts.Store == nil:
		return nil, errors.New("session: store is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Controller{
		cat:           opts.Catalog,
		content:       opts.Content,
		player:        opts.Player,
		presenter:     opts.Presenter,
		logger:        logger,
		cfg:           opts.Config,
		onRunFinished: opts.OnRunFinished,
		onQuit:        opts.OnQuit,
		state:         NewState(opts.Store, opts.Config.Session.Lives),
		phase:         PhaseIdle,
	}, nil
}

// State returns the run state.
func (c *Controller) State() *State { return c.state }

// Phase returns the active phase.
func (c *Controller) Phase() Phase { return c.phase }

// Outcome returns the outcome being resolved, or OutcomeNone.
func (c *Controller) Outcome() Outcome { return c.outcome }

// IsPaused reports whether the run is paused.
func (c *Controller) IsPaused() bool { return c.paused }

// Panel returns the option popup currently shown.
func (c *Controller) Panel() OptionPanel { return c.panel }

// Cave returns the cave being played.
func (c *Controller) Cave() catalog.Cave { return c.cave }

// Err returns the unrecoverable error that stopped the controller, if any.
func (c *Controller) Err() error { return c.err }

// SetGodMode toggles shield and timer immunity.
func (c *Controller) SetGodMode(on bool) {
	c.state.GodMode = on
	c.player.SetInvulnerable(on)
}

// SelectLevel chooses the starting level of the next game.
func (c *Controller) SelectLevel(level int) error {
	if c.phase != PhaseIdle {
		return ErrSessionActive
	}
	caves, err := c.cat.CavesInLevel(level)
	if err != nil {
		return err
	}
	if len(caves) == 0 {
		return fmt.Errorf("%w: level %d has no caves", catalog.ErrInvalidLevel, level)
	}
	if !c.state.IsLevelUnlocked(level) {
		return fmt.Errorf("%w: %d", ErrLevelLocked, level)
	}
	c.state.SetCurrentLevelAndCave(level)
	return nil
}

// StartNewGame begins a run from the current level and cave.
func (c *Controller) StartNewGame() error {
	switch {
	case c.phase.Terminal() || c.resetRequired:
		return ErrResetRequired
	case c.phase != PhaseIdle:
		return ErrSessionActive
	}

	c.newGame = true
	c.runFinished = false
	c.played = 0
	c.logger.Info("run started", "level", c.state.CurrentLevel, "cave", c.state.CurrentCave, "god", c.state.GodMode)

	c.presenter.StraightToBlack()
	c.presenter.UpdateScore(c.state.Score)
	c.presenter.UpdateHighScore(c.state.HighestScore())
	c.presenter.UpdateLives(c.state.Lives)
	return c.startNewCave(true)
}

// RefreshForNewGame soft-resets the state so the selected level can be
// replayed, and returns to PhaseIdle.
func (c *Controller) RefreshForNewGame() {
	c.teardown()
	c.state.ResetForNewGame(false)
	c.state.SetCurrentLevelAndCave(c.state.SelectedLevel)
	c.resetRequired = false
	c.setPhase(PhaseIdle)
}

// QuitPlay abandons the run, hard-resets the state and hands control back
// to the host.
func (c *Controller) QuitPlay() {
	if c.phase != PhaseIdle && !c.phase.Terminal() {
		c.finishRun(RunQuit)
	}
	c.teardown()
	c.state.ResetForNewGame(true)
	c.resetRequired = false
	c.setPhase(PhaseIdle)
	if c.onQuit != nil {
		c.onQuit()
	}
}

// Pause suspends the countdown timer and the craft. Pausing twice is a no-op.
func (c *Controller) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.player.SetSuspended(true)
}

// Unpause resumes the countdown timer and the craft. Unpausing twice is a no-op.
func (c *Controller) Unpause() {
	if !c.paused {
		return
	}
	c.paused = false
	c.player.SetSuspended(false)
}

// TogglePause flips the pause state while playing without a popup.
func (c *Controller) TogglePause() {
	if c.phase != PhasePlaying || c.panel != PanelNone {
		return
	}
	if c.paused {
		c.Unpause()
	} else {
		c.Pause()
	}
}

// RequestQuit pauses and asks the pilot to confirm ending the game.
func (c *Controller) RequestQuit() {
	if c.phase != PhasePlaying || c.panel != PanelNone {
		return
	}
	c.Pause()
	c.showPanel(PanelQuit)
}

// Choose answers the option popup currently shown.
func (c *Controller) Choose(yes bool) {
	switch c.panel {
	case PanelGameOver:
		if yes {
			c.RefreshForNewGame()
			if err := c.StartNewGame(); err != nil {
				c.fail(err)
			}
			return
		}
		c.QuitPlay()
	case PanelQuit:
		if yes {
			c.QuitPlay()
			return
		}
		c.hidePanel()
		c.Unpause()
	case PanelGameCompleted:
		c.QuitPlay()
	}
}

// OnFatalCollision implements PlayerListener.
func (c *Controller) OnFatalCollision() {
	c.events = append(c.events, event{kind: eventFatal})
}

// OnHeldInEndZone implements PlayerListener.
func (c *Controller) OnHeldInEndZone(seconds float64) {
	c.events = append(c.events, event{kind: eventHeld, held: seconds})
}

// OnBonusCollected implements PlayerListener.
func (c *Controller) OnBonusCollected(kind BonusKind) {
	c.events = append(c.events, event{kind: eventBonus, bonus: kind})
}

// Tick advances the session by dt seconds. Signals queued since the last
// tick are handled first, then the countdown timer, then running sequences.
func (c *Controller) Tick(dt float64) {
	if c.err != nil {
		return
	}

	events := c.events
	c.events = nil
	for _, ev := range events {
		c.handleEvent(ev)
	}

	if c.phase == PhasePlaying && !c.paused {
		c.played += dt
		if !c.state.GodMode {
			c.state.TimeRemaining = math.Max(0, c.state.TimeRemaining-dt)
			c.presenter.UpdateTime(FormatTime(c.state.TimeRemaining))
			if c.state.TimeRemaining == 0 {
				c.resolve(OutcomeOutOfTime)
			}
		}
	}

	c.flow.Tick(dt)
}

func (c *Controller) handleEvent(ev event) {
	if c.phase != PhasePlaying || c.paused {
		return
	}
	switch ev.kind {
	case eventFatal:
		if !c.state.GodMode {
			c.resolve(OutcomeCrashed)
		}
	case eventHeld:
		if ev.held >= c.cfg.Session.HoldTime {
			c.resolve(OutcomeSuccess)
		}
	case eventBonus:
		ApplyBonus(ev.bonus, c.state, c.player)
		c.presenter.UpdateLives(c.state.Lives)
		c.logger.Debug("bonus collected", "kind", ev.bonus, "lives", c.state.Lives)
	}
}

func (c *Controller) resolve(o Outcome) {
	c.outcome = o
	c.setPhase(PhaseResolving)
	if o == OutcomeSuccess {
		c.flow.Start(c.successSequence())
	} else {
		c.flow.Start(c.failureSequence(o))
	}
}

func (c *Controller) startNewCave(reload bool) error {
	c.setPhase(PhaseLoadingCave)
	c.outcome = OutcomeNone

	cave, err := c.cat.Cave(c.state.CurrentLevel, c.state.CurrentCave)
	if err != nil {
		return c.fail(err)
	}
	if reload || c.handle == nil {
		if c.handle != nil {
			c.handle.Destroy()
			c.handle = nil
		}
		h, err := c.content.LoadCaveContent(cave)
		if err != nil {
			return c.fail(fmt.Errorf("session: loading cave %s: %w", cave.ID, err))
		}
		c.handle = h
	}
	c.cave = cave
	c.handle.ReactivateBonuses()
	c.state.TimeRemaining = cave.TimeLimit.Seconds()

	c.presenter.UpdateCave(cave.Label())
	c.presenter.UpdateTime(FormatTime(c.state.TimeRemaining))
	c.presenter.UpdateLives(c.state.Lives)
	c.presenter.UpdateScore(c.state.Score)

	c.setPhase(PhaseCountdown)
	c.flow.Start(c.countdownSequence())
	return nil
}

func (c *Controller) countdownSequence() *core.Sequence {
	t := c.cfg.Timings
	var steps []core.Step
	if c.newGame {
		steps = append(steps,
			core.Do(func() { c.presenter.ShowMessage(ControlsHelp, t.ControlsMessage) }),
			core.Wait(t.ControlsMessage),
		)
	}

	var fade core.Signal
	steps = append(steps,
		core.Do(func() {
			c.Pause()
			c.player.ResetState(c.content.StartPosition(c.handle))
			c.player.RemoveAllDamage()
			c.player.SetActive(true)
		}),
		core.Wait(t.PrepareDelay),
		core.Do(func() { c.presenter.ShowMessage("GET READY", t.MessageDuration) }),
		core.Wait(t.ReadyDelay),
		core.Do(func() { fade = c.presenter.FadeToVisible() }),
		core.Wait(t.FadeInDelay),
		core.Until(func() bool { return fade.Done() }),
		core.Do(func() {
			c.presenter.ShowMessage("GO!", t.GoMessage)
			c.newGame = false
			c.setPhase(PhasePlaying)
			c.Unpause()
		}),
	)
	return core.NewSequence("countdown", steps...)
}

func (c *Controller) successSequence() *core.Sequence {
	t := c.cfg.Timings
	steps := []core.Step{
		core.Do(func() {
			c.Pause()
			c.presenter.ShowMessage(fmt.Sprintf("CAVE %s\nCOMPLETE!", c.cave.Label()), t.MessageDuration)
		}),
		core.Wait(t.ResolveDelay),
		core.Await(c.presenter.FadeToBlack),
		core.Do(func() { c.addScore(c.cfg.Session.PointsPerCave) }),
	}

	if c.state.TimeRemaining >= 1 {
		tally := NewBonusTally(c.state.TimeRemaining, c.cfg.Session.BonusPointsPerSecond)
		steps = append(steps,
			core.Wait(t.TallyPause),
			core.Do(func() { c.presenter.ShowBonusTally(tally.TimeRemaining, tally.Points) }),
			core.Wait(t.TallyPause),
			core.Repeat(t.TallyTick, func() bool {
				if !tally.Step() {
					return false
				}
				c.state.TimeRemaining = tally.TimeRemaining
				c.presenter.ShowBonusTally(tally.TimeRemaining, tally.Points)
				c.presenter.UpdateTime(FormatTime(tally.TimeRemaining))
				return true
			}),
			core.Do(func() {
				c.logger.Debug("time bonus", "points", tally.Points)
				c.addScore(tally.Points)
			}),
			core.Wait(t.TallyPause),
			core.Do(c.presenter.HideBonusTally),
		)
	}

	steps = append(steps, core.Wait(t.AdvanceDelay), core.Do(c.advance))
	return core.NewSequence("success", steps...)
}

func (c *Controller) failureSequence(o Outcome) *core.Sequence {
	t := c.cfg.Timings
	msg := "CRASHED!"
	if o == OutcomeOutOfTime {
		msg = "OUT OF TIME!"
	}

	var result FailureResult
	return core.NewSequence("failure",
		core.Do(func() {
			c.Pause()
			result = OnLevelFailure(c.state)
			c.presenter.UpdateLives(c.state.Lives)
			c.presenter.ShowMessage(msg, t.MessageDuration)
			c.logger.Debug("cave failed", "cave", c.cave.Label(), "outcome", o, "lives", c.state.Lives)
		}),
		core.Wait(t.ResolveDelay),
		core.Await(c.presenter.FadeToBlack),
		core.Wait(t.FailureBlackout),
		core.Do(func() {
			c.player.SetActive(false)
			if result == GameOver {
				c.gameOver()
				return
			}
			c.startNewCave(false) //nolint:errcheck // stored in c.err
		}),
	)
}

func (c *Controller) gameOver() {
	t := c.cfg.Timings
	c.setPhase(PhaseGameOver)
	c.resetRequired = true
	c.finishRun(RunGameOver)

	c.flow.Start(core.NewSequence("game-over",
		core.Await(c.presenter.FadeToBlack),
		core.Do(func() { c.presenter.ShowMessage("GAME OVER!!!", t.GameOverDelay) }),
		core.Wait(t.GameOverDelay),
		core.Do(func() {
			c.player.SetActive(false)
			c.showPanel(PanelGameOver)
		}),
	))
}

func (c *Controller) advance() {
	adv, err := AdvanceAfterCaveCompletion(c.state, c.cat)
	if err != nil {
		c.fail(err)
		return
	}
	c.player.SetActive(false)

	if adv == AdvanceGameCompleted {
		c.setPhase(PhaseGameCompleted)
		c.resetRequired = true
		c.finishRun(RunCompleted)
		c.showPanel(PanelGameCompleted)
		return
	}
	c.startNewCave(true) //nolint:errcheck // stored in c.err
}

func (c *Controller) addScore(points int) {
	c.state.AddScore(points)
	c.presenter.UpdateScore(c.state.Score)
	if c.state.RecordScoreIfHighest() {
		c.presenter.UpdateHighScore(c.state.Score)
		c.logger.Debug("new high score", "score", c.state.Score)
	}
}

func (c *Controller) finishRun(outcome string) {
	if c.runFinished {
		return
	}
	c.runFinished = true
	summary := RunSummary{
		Score:   c.state.Score,
		Level:   c.state.CurrentLevel,
		Cave:    c.state.CurrentCave,
		Outcome: outcome,
		Played:  c.played,
	}
	c.logger.Info("run finished", "outcome", outcome, "score", summary.Score, "cave", fmt.Sprintf("%d-%d", summary.Level, summary.Cave))
	if c.onRunFinished != nil {
		c.onRunFinished(summary)
	}
}

func (c *Controller) showPanel(p OptionPanel) {
	c.panel = p
	c.presenter.ShowOptions(p)
}

func (c *Controller) hidePanel() {
	c.panel = PanelNone
	c.presenter.HideOptions()
}

func (c *Controller) teardown() {
	c.flow.Cancel()
	c.events = nil
	c.outcome = OutcomeNone
	c.Unpause()
	c.player.SetActive(false)
	if c.handle != nil {
		c.handle.Destroy()
		c.handle = nil
	}
	c.hidePanel()
	c.presenter.HideBonusTally()
}

func (c *Controller) fail(err error) error {
	c.err = err
	c.flow.Cancel()
	c.logger.Error("session stopped", "err", err)
	return err
}

func (c *Controller) setPhase(p Phase) {
	if p == c.phase {
		return
	}
	c.logger.Debug("phase", "from", c.phase, "to", p, "level", c.state.CurrentLevel, "cave", c.state.CurrentCave)
	c.phase = p
}
