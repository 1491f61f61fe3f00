package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/cave"
	"github.com/vovakirdan/subterra/internal/config"
	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
	"github.com/vovakirdan/subterra/internal/storage"
)

// Env is what a flight session needs from its host.
type Env struct {
	Catalog *catalog.Catalog
	Config  config.Config
	Store   *storage.Store          // Run history; nil disables it
	Prefs   session.PersistentStore // Nil keeps preferences in memory
	Logger  *log.Logger
	Player  string // Recorded with each run
	Runtime core.RuntimeConfig
}

// PlayOptions selects how a run starts.
type PlayOptions struct {
	Level         int  // Starting level; 0 starts at level 1
	GodMode       bool // Shields never deplete and the timer never expires
	UnlockedLevel int  // Overrides the persisted highest unlocked level when positive
}

// hudRows and helpRows are the lines around the cave view.
const (
	hudRows  = 1
	helpRows = 1
)

// gameRuntime holds the mutable state shared by GameModel copies.
type gameRuntime struct {
	env       Env
	logger    *log.Logger
	ctrl      *session.Controller
	world     *cave.World
	craft     *cave.Craft
	presenter *Presenter
	screen    *core.Screen
	input     core.InputFrame

	backToMenu bool
	lastRun    *session.RunSummary
}

// GameModel is the Bubble Tea model for a run through the caves.
type GameModel struct {
	rt         *gameRuntime
	keyMapper  *KeyMapper
	help       help.Model
	width      int
	height     int
	standalone bool // Quit the program instead of returning to a menu
	quitting   bool
}

// NewGameModel builds the flight stack and starts a new game.
func NewGameModel(env Env, opts PlayOptions) (GameModel, error) {
	if env.Catalog == nil {
		return GameModel{}, errors.New("tui: catalog is required")
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	if env.Prefs == nil {
		env.Prefs = storage.NewMemoryPrefs()
	}
	if env.Runtime.TickRate <= 0 {
		env.Runtime.TickRate = 60
	}

	rt := &gameRuntime{
		env:       env,
		logger:    env.Logger,
		world:     cave.NewWorld(env.Logger),
		presenter: NewPresenter(env.Config.Fader.Speed),
		input:     core.NewInputFrame(),
	}
	rt.craft = cave.NewCraft(
		env.Config.Craft,
		env.Config.Session.MaxShieldDamage,
		config.NewDifficultyManager(env.Config.Difficulty),
		rt.world,
		env.Logger,
	)

	ctrl, err := session.New(session.Options{
		Catalog:       env.Catalog,
		Content:       rt.world,
		Player:        rt.craft,
		Presenter:     rt.presenter,
		Store:         env.Prefs,
		Logger:        env.Logger,
		Config:        env.Config,
		OnRunFinished: rt.saveRun,
		OnQuit:        func() { rt.backToMenu = true },
	})
	if err != nil {
		return GameModel{}, err
	}
	rt.ctrl = ctrl
	rt.craft.SetListener(ctrl)

	ctrl.State().UnlockedLevel = opts.UnlockedLevel
	ctrl.SetGodMode(opts.GodMode)
	if opts.Level > 0 {
		if err := ctrl.SelectLevel(opts.Level); err != nil {
			return GameModel{}, err
		}
	}
	if err := ctrl.StartNewGame(); err != nil {
		return GameModel{}, err
	}

	m := GameModel{
		rt:        rt,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	m.resize(env.Runtime.ScreenW, env.Runtime.ScreenH)
	return m, nil
}

// saveRun records a finished run in the history.
func (rt *gameRuntime) saveRun(run session.RunSummary) {
	rt.lastRun = &run
	if rt.env.Store == nil {
		return
	}
	id, err := rt.env.Store.SaveRun(storage.RunEntry{
		Player:  rt.env.Player,
		Score:   run.Score,
		Level:   run.Level,
		Cave:    run.Cave,
		Outcome: run.Outcome,
		Played:  int(run.Played),
	})
	if err != nil {
		rt.logger.Error("could not save run", "err", err)
		return
	}
	rt.logger.Info("run saved", "run", id, "score", run.Score, "outcome", run.Outcome)
}

// Controller returns the session controller.
func (m GameModel) Controller() *session.Controller { return m.rt.ctrl }

// Presenter returns the presenter.
func (m GameModel) Presenter() *Presenter { return m.rt.presenter }

// Craft returns the craft.
func (m GameModel) Craft() *cave.Craft { return m.rt.craft }

// BackToMenu reports whether the pilot ended the game.
func (m GameModel) BackToMenu() bool { return m.rt.backToMenu }

// IsQuitting reports whether the program is shutting down.
func (m GameModel) IsQuitting() bool { return m.quitting }

// LastRun returns the most recently finished run, or nil.
func (m GameModel) LastRun() *session.RunSummary { return m.rt.lastRun }

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.rt.env.Runtime)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.rt.ctrl.QuitPlay()
		m.quitting = true
		return m, tea.Quit
	}

	ctrl := m.rt.ctrl
	if panel := ctrl.Panel(); panel != session.PanelNone {
		switch action {
		case core.ActionYes, core.ActionConfirm:
			ctrl.Choose(true)
		case core.ActionNo, core.ActionBack:
			ctrl.Choose(panel.SingleChoice())
		case core.ActionRestart:
			if panel == session.PanelGameOver {
				ctrl.Choose(true)
			}
		}
		return m, m.leaveIfDone()
	}

	switch action {
	case core.ActionPause:
		ctrl.TogglePause()
	case core.ActionBack:
		if ctrl.Phase() == session.PhasePlaying {
			ctrl.RequestQuit()
		}
	case core.ActionThrust, core.ActionRotateLeft, core.ActionRotateRight:
		m.rt.input.Set(action)
	}
	return m, nil
}

// handleTick advances the simulation by one step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	rt := m.rt
	dt := rt.env.Runtime.TickDelta()

	rt.craft.HandleInput(rt.input)
	rt.craft.Update(dt)
	rt.ctrl.Tick(dt)
	rt.presenter.UpdateShield(rt.craft.Shield())
	rt.presenter.Tick(dt)
	rt.input.Clear()

	if err := rt.ctrl.Err(); err != nil {
		rt.logger.Error("session failed", "err", err)
		m.quitting = true
		return m, tea.Quit
	}
	if cmd := m.leaveIfDone(); cmd != nil {
		return m, cmd
	}
	if rt.backToMenu {
		// The host switches models; stop ticking.
		return m, nil
	}
	return m, tickCmd(rt.env.Runtime)
}

// leaveIfDone quits the program when a standalone run returned to the menu.
func (m GameModel) leaveIfDone() tea.Cmd {
	if m.standalone && m.rt.backToMenu {
		return tea.Quit
	}
	return nil
}

func (m *GameModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	viewH := height - hudRows - m.helpHeight()
	if viewH < 1 {
		viewH = 1
	}
	if width < 1 {
		width = 1
	}
	if m.rt.screen == nil {
		m.rt.screen = core.NewScreen(width, viewH)
		return
	}
	m.rt.screen.Resize(width, viewH)
}

func (m GameModel) helpHeight() int {
	if m.help.ShowAll {
		return len(m.keyMapper.Keys().FullHelp()[0])
	}
	return helpRows
}

// draw renders the cave and overlays into the screen buffer.
func (m GameModel) draw() {
	rt := m.rt
	rt.screen.Clear()
	area := rt.screen.Bounds()
	cave.Render(rt.screen, area, rt.world.Current(), rt.craft)
	rt.presenter.Draw(rt.screen, area, m.userPaused())
}

// userPaused reports a pause requested by the pilot, as opposed to the
// pauses the scripted phases impose.
func (m GameModel) userPaused() bool {
	ctrl := m.rt.ctrl
	return ctrl.IsPaused() && ctrl.Phase() == session.PhasePlaying
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".subterra", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.rt.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	label := strings.ReplaceAll(m.rt.ctrl.Cave().Label(), "-", "_")
	path := filepath.Join(dir, fmt.Sprintf("cave_%s_%s.txt", label, timestamp))

	if err := os.WriteFile(path, []byte(m.rt.screen.String()), 0o600); err != nil {
		m.rt.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.rt.logger.Info("screenshot saved", "path", path)
}

// View renders the HUD, the cave view and the key help.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()

	var sb strings.Builder
	sb.WriteString(m.rt.presenter.HUD(m.width, m.userPaused()))
	sb.WriteRune('\n')
	sb.WriteString(RenderScreen(m.rt.screen))
	sb.WriteRune('\n')
	sb.WriteString(m.help.View(m.keyMapper.Keys()))
	return sb.String()
}

// Run plays a game in the terminal until the pilot quits.
func Run(env Env, opts PlayOptions) error {
	model, err := NewGameModel(env, opts)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.rt.ctrl.Err()
	}
	return nil
}
