package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/zero/internal/config"
	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/logging"
	"github.com/vovakirdan/zero/internal/registry"
	"github.com/vovakirdan/zero/internal/storage"
)

// shutdownTimeout bounds how long open sessions get to finish.
const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.zero/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runtime is the base configuration for every session's viewer.
	Runtime core.RuntimeConfig

	// Capture controls ctrl+s captures made over SSH.
	Capture CaptureConfig

	// Store records captures; may be nil.
	Store *storage.Store

	Logger *log.Logger
}

// SSHServer wraps a Wish SSH server that hands each session the scene
// picker, the viewer and the capture browser.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Capture.Source == "" {
		cfg.Capture.Source = storage.SourceSSH
	}

	srv := &SSHServer{
		config: cfg,
		logger: cfg.Logger,
	}

	// Resolve host key path
	hostKeyPath := config.ExpandPath(cfg.HostKeyPath)
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".zero", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// Middlewares run last to first: logging wraps the PTY check wraps the program
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	sessionID := uuid.NewString()
	vc := ViewerConfig{
		Runtime:   s.config.Runtime,
		Capture:   s.config.Capture,
		Cols:      pty.Window.Width,
		Rows:      pty.Window.Height,
		Presenter: NewPresenter(bubbletea.MakeRenderer(sess)),
		Logger:    s.logger.With("session", sessionID, "user", sess.User()),
	}

	model := NewSessionModel(sessionID, s.config.Store, vc)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled
// or the listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionView is the screen a session is showing.
type sessionView int

const (
	viewMenu sessionView = iota
	viewScene
	viewCaptures
)

// SessionModel manages the full session flow: menu -> scene -> menu, with
// the capture browser reachable from the menu. This is the top-level model
// used for SSH sessions.
type SessionModel struct {
	id       string
	store    *storage.Store
	config   ViewerConfig
	view     sessionView
	menu     MenuModel
	viewer   *Model
	captures *CapturesModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(id string, store *storage.Store, vc ViewerConfig) SessionModel {
	if vc.Logger == nil {
		vc.Logger = logging.Discard()
	}
	return SessionModel{
		id:     id,
		store:  store,
		config: vc,
		menu:   NewMenuModel(store, vc.Cols, vc.Rows),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally so every screen opens at the right size
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.Cols = wsm.Width
		m.config.Rows = wsm.Height
	}

	switch m.view {
	case viewScene:
		return m.updateViewer(msg)
	case viewCaptures:
		return m.updateCaptures(msg)
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

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsCaptures():
		captures := NewCapturesModel(m.store, m.config.Cols, m.config.Rows)
		m.captures = &captures
		m.view = viewCaptures
		return m, m.captures.Init()

	case m.menu.Selected() != nil:
		scene, err := registry.Create(m.menu.Selected().SceneID)
		if err != nil {
			// Menu only lists registered scenes
			m.menu = NewMenuModel(m.store, m.config.Cols, m.config.Rows)
			return m, nil
		}

		viewer := NewModel(scene, m.store, m.config)
		viewer.embedded = true
		m.viewer = &viewer
		m.view = viewScene
		m.config.Logger.Debug("scene opened", "scene", scene.ID())
		return m, m.viewer.Init()
	}

	return m, cmd
}

// updateViewer handles updates when a scene is on screen.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewer, ok := newModel.(Model); ok {
		m.viewer = &viewer
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu; pending ticks are dropped by the menu
	if m.viewer.BackToMenu() {
		m.viewer = nil
		return m.openMenu()
	}

	return m, cmd
}

// updateCaptures handles updates in the capture browser.
func (m SessionModel) updateCaptures(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.captures.Update(msg)
	if captures, ok := newModel.(CapturesModel); ok {
		m.captures = &captures
	}

	if m.captures.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.captures.IsGoingBack() {
		m.captures = nil
		return m.openMenu()
	}

	return m, cmd
}

// openMenu returns to a fresh menu with up-to-date capture counts.
func (m SessionModel) openMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config.Cols, m.config.Rows)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewScene:
		return m.viewer.View()
	case viewCaptures:
		return m.captures.View()
	default:
		return m.menu.View()
	}
}

// ID returns the session identifier used in logs.
func (m SessionModel) ID() string {
	return m.id
}
