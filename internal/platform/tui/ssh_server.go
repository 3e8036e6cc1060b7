package tui

import (
	"context"
	"errors"
	"fmt"
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

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tanks/host_key.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// LevelsDir adds level files to the built-in set.
	LevelsDir string

	// TickRate is the simulation rate of every session.
	TickRate int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tanks/results.db",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves battles to SSH clients, one Bubble Tea program per
// session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	loader *levels.Loader
	levels []LevelChoice
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// Level files are validated up front: a malformed one is an error.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tanks-ssh",
	})

	loader := levels.NewLoader(cfg.LevelsDir)
	choices, err := LevelChoices(loader)
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		loader: loader,
		levels: choices,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tanks", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewSessionModel(s, cfg, sshSession.User())
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// newGame builds a battle for one session. Sessions share nothing but the
// results store.
func (s *SSHServer) newGame(gameID, levelID, user string) (registry.Game, error) {
	mode, ok := tanks.ModeFromID(gameID)
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", gameID)
	}
	lvl, err := s.loader.LoadByID(levelID)
	if err != nil {
		return nil, err
	}
	opts := tanks.Options{
		Level:  &lvl,
		Logger: s.logger.With("user", user),
	}
	if s.store != nil {
		opts.Sink = s.store
	}
	return tanks.NewWithOptions(mode, opts), nil
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

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

// SessionModel runs the menu -> battle -> menu loop of one SSH session.
type SessionModel struct {
	server   *SSHServer
	config   core.RuntimeConfig
	username string
	menu     MenuModel
	board    *ScoreboardModel
	game     *Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(server *SSHServer, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		server:   server,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(server.levels, levels.DefaultID, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}
	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.board != nil:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.menu.WantsScoreboard() {
		board := NewScoreboardModel(m.server.store, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		return m, m.board.Init()
	}
	if !m.menu.Chosen() {
		return m, cmd
	}

	result := m.menu.Result()
	game, err := m.server.newGame(result.GameID, result.LevelID, m.username)
	if err != nil {
		m.server.logger.Error("cannot start battle", "user", m.username, "error", err)
		m.menu = NewMenuModel(m.server.levels, result.LevelID, m.config)
		return m, nil
	}

	m.config = result.Config
	gm := NewModel(game, m.config)
	m.game = &gm
	return m, m.game.Init()
}

// updateBoard drops the scoreboard's own tea.Quit so leaving it returns to
// the menu instead of ending the session.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = &board
	}
	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.board = nil
		m.menu = m.freshMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) freshMenu() MenuModel {
	levelID := levels.DefaultID
	if lvl, ok := m.menu.SelectedLevel(); ok {
		levelID = lvl.ID
	}
	return NewMenuModel(m.server.levels, levelID, m.config)
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.menu = m.freshMenu()
		return m, m.menu.Init()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.game != nil:
		return m.game.View()
	case m.board != nil:
		return m.board.View()
	}
	return m.menu.View()
}
