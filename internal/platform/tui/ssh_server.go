package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/config"
	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.subterra/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Catalog and Game are shared by all sessions.
	Catalog *catalog.Catalog
	Game    config.Config

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.subterra/subterra.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.Default(),
	}
}

// SSHServer wraps a Wish SSH server for Subterra.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("cannot create SSH server: catalog is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "subterra-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".subterra", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sessionID := uuid.New().String()
	logger := s.logger.With("session", sessionID[:8], "user", sshSession.User())

	env := Env{
		Catalog: s.config.Catalog,
		Config:  s.config.Game,
		Store:   s.store,
		Logger:  logger,
		Player:  sshSession.User(),
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
		},
	}
	if s.store != nil {
		env.Prefs = storage.NewPrefs(s.store, sshSession.User(), logger)
	}

	// Create session model that handles menu + game flow
	model := NewSessionModel(env)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full session flow: menu -> game -> menu, with the
// scoreboard reachable from the menu. This is the top-level model used for
// SSH sessions.
type SessionModel struct {
	env        Env
	screen     sessionScreen
	menu       MenuModel
	gameModel  *GameModel
	scoreboard ScoreboardModel
	err        error
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(env Env) SessionModel {
	if env.Prefs == nil {
		env.Prefs = storage.NewMemoryPrefs()
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	return SessionModel{
		env:  env,
		menu: NewMenuModel(env, 0),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.env.Runtime.ScreenW = wsm.Width
		m.env.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoiceScoreboard:
		m.scoreboard = NewScoreboardModel(m.env.Store, m.env.Player, m.env.Runtime.ScreenW, m.env.Runtime.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case MenuChoicePlay:
		gameModel, err := NewGameModel(m.env, PlayOptions{Level: m.menu.Level()})
		if err != nil {
			m.env.Logger.Error("could not start game", "err", err)
			m.err = err
			m.menu = NewMenuModel(m.env, 0)
			return m, nil
		}
		m.err = nil
		m.gameModel = &gameModel
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	// Check if user quit entirely
	if m.gameModel.IsQuitting() {
		m.err = m.gameModel.Controller().Err()
		m.quitting = true
		return m, tea.Quit
	}

	// Check if user ended the game (back to menu)
	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.env, 0)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when showing the scoreboard.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.env, 0)
		return m, m.menu.Init()
	}

	return m, cmd
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScoreboard:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText("Error: "+m.err.Error(), m.env.Runtime.ScreenW)
	}
	return view
}

// RunSession runs the menu, game and scoreboard in one local program.
func RunSession(env Env) error {
	p := tea.NewProgram(NewSessionModel(env), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if sm, ok := final.(SessionModel); ok {
		return sm.Err()
	}
	return nil
}
