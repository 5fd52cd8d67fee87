package tui

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zero/internal/config"
	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/export"
	"github.com/vovakirdan/zero/internal/logging"
	"github.com/vovakirdan/zero/internal/raster"
	"github.com/vovakirdan/zero/internal/registry"
	"github.com/vovakirdan/zero/internal/storage"
)

// hudRows is the number of terminal rows below the frame: status and help.
const hudRows = 2

// CaptureConfig controls where ctrl+s captures go.
type CaptureConfig struct {
	Dir    string
	Format export.Format
	Scale  int
	Source string // Recorded with each capture: tui or ssh
}

// ViewerConfig contains everything a viewer needs besides the scene.
type ViewerConfig struct {
	Runtime    core.RuntimeConfig // Palette, camera and tick rate; size is overwritten
	Capture    CaptureConfig
	Cols, Rows int // Initial terminal size
	Presenter  *Presenter
	Logger     *log.Logger
}

// captureDoneMsg reports the result of a capture written in the background.
type captureDoneMsg struct {
	path string
	err  error
}

// Model is the Bubble Tea model that runs one scene: it ticks the scene
// at the configured rate and draws it into a frame sized to the terminal.
type Model struct {
	scene       registry.Scene
	renderer    *raster.Renderer
	presenter   *Presenter
	store       *storage.Store
	logger      *log.Logger
	config      core.RuntimeConfig
	capture     CaptureConfig
	keyMapper   *KeyMapper
	help        help.Model
	inputFrame  core.InputFrame
	cols, rows  int
	lastCapture string
	lastErr     error
	embedded    bool // Inside a session: back returns to the menu
	quitting    bool
	backToMenu  bool
}

// NewModel creates a viewer for the given scene.
func NewModel(scene registry.Scene, store *storage.Store, vc ViewerConfig) Model {
	if vc.Presenter == nil {
		vc.Presenter = NewPresenter(nil)
	}
	if vc.Logger == nil {
		vc.Logger = logging.Discard()
	}
	if vc.Runtime.Seed == 0 {
		vc.Runtime.Seed = time.Now().UnixNano()
	}
	if vc.Capture.Format == "" {
		vc.Capture.Format = export.PNG
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		scene:      scene,
		presenter:  vc.Presenter,
		store:      store,
		logger:     vc.Logger,
		config:     vc.Runtime,
		capture:    vc.Capture,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		cols:       vc.Cols,
		rows:       vc.Rows,
	}
	m.renderer = raster.NewRenderer(nil, 0, 0)
	m.layout()
	return m
}

// layout sizes the frame to the terminal, reallocating the buffer and
// re-attaching the renderer when the size changed. Returns true if it did.
func (m *Model) layout() bool {
	w, h := FrameSize(m.cols, m.rows, hudRows)
	if w == m.renderer.Width() && h == m.renderer.Height() {
		return false
	}
	m.renderer.Attach(raster.NewFrame(w, h), w, h)
	m.config = m.config.WithSize(w, h)
	return true
}

// Init initializes the scene and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case captureDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			logging.Error(m.logger, "Capture", msg.err)
		} else {
			m.lastErr = nil
			m.lastCapture = msg.path
			m.logger.Info("capture saved", "scene", m.scene.ID(), "path", msg.path)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case action == core.ActionCapture:
		return m, m.captureCmd()
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize reallocates the frame for the new terminal size and resets
// the scene for it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.cols = msg.Width
	m.rows = msg.Height
	m.help.Width = msg.Width
	if m.layout() {
		m.scene.Reset(m.config)
	}
	return m, nil
}

// handleTick applies the input collected since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionReset) {
		m.scene.Reset(m.config)
	}

	m.scene.Update(m.inputFrame)
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// captureCmd snapshots the current frame and writes it in the background.
func (m Model) captureCmd() tea.Cmd {
	m.scene.Draw(m.renderer)
	img := export.Snapshot(m.renderer)

	sceneID := m.scene.ID()
	cc := m.capture
	store := m.store
	return func() tea.Msg {
		path, err := writeCapture(store, sceneID, img, cc, time.Now())
		return captureDoneMsg{path: path, err: err}
	}
}

// writeCapture encodes img into the capture directory and records it.
func writeCapture(store *storage.Store, sceneID string, img *image.NRGBA, cc CaptureConfig, now time.Time) (string, error) {
	path := filepath.Join(config.ExpandPath(cc.Dir), export.FileName(sceneID, cc.Format, now))
	n, err := export.WriteFile(path, img, cc.Format, cc.Scale)
	if err != nil {
		return "", err
	}

	if store != nil {
		_, err := store.SaveCapture(storage.Capture{
			SceneID:   sceneID,
			Format:    string(cc.Format),
			Width:     img.Rect.Dx(),
			Height:    img.Rect.Dy(),
			Scale:     cc.Scale,
			Path:      path,
			Bytes:     int64(n),
			Source:    cc.Source,
			CreatedAt: now,
		})
		if err != nil {
			return path, err
		}
	}
	return path, nil
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View draws the scene and presents it above the HUD.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Draw(m.renderer)

	var b strings.Builder
	b.WriteString(m.presenter.Render(m.renderer))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.help.ShowAll {
		// Full help overlays the bottom of the frame
		return overlayBottom(b.String(), helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// statusLine shows scene title, frame size, pause flag and last capture.
func (m Model) statusLine() string {
	state := m.scene.State()
	parts := []string{
		m.scene.Title(),
		fmt.Sprintf("%dx%d", m.renderer.Width(), m.renderer.Height()),
		fmt.Sprintf("frame %d", state.Frame),
	}
	if state.Paused {
		parts = append(parts, "PAUSED")
	}
	if m.lastErr != nil {
		return errorStyle.Render(strings.Join(append(parts, "capture failed: "+m.lastErr.Error()), "  "))
	}
	if m.lastCapture != "" {
		parts = append(parts, "saved "+filepath.Base(m.lastCapture))
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}

// overlayBottom replaces the last lines of base with overlay.
func overlayBottom(base, overlay string) string {
	lines := strings.Split(strings.TrimSuffix(base, "\n"), "\n")
	over := strings.Split(overlay, "\n")
	start := max(len(lines)-len(over), 0)
	for i, l := range over {
		if start+i < len(lines) {
			lines[start+i] = l
		}
	}
	return strings.Join(lines, "\n")
}

// Frame returns the renderer, for tests and exports.
func (m Model) Frame() *raster.Renderer {
	return m.renderer
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program viewing the given scene. It reports
// whether the user asked to go back to a menu rather than quit.
func Run(scene registry.Scene, store *storage.Store, vc ViewerConfig) (backToMenu bool, err error) {
	model := NewModel(scene, store, vc)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
