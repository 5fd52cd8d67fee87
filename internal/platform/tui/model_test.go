package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/export"
	"github.com/vovakirdan/zero/internal/raster"
	"github.com/vovakirdan/zero/internal/scenes/zero"
	"github.com/vovakirdan/zero/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "captures.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store, cols, rows int) Model {
	t.Helper()
	m := NewModel(zero.New(), store, ViewerConfig{
		Runtime: core.DefaultConfig(),
		Capture: CaptureConfig{Dir: t.TempDir(), Format: export.PNG, Scale: 1, Source: storage.SourceTUI},
		Cols:    cols,
		Rows:    rows,
	})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model, cmd
}

func TestModelInitialFrameSize(t *testing.T) {
	m := newTestModel(t, nil, 40, 12)

	if m.Frame().Width() != 40 || m.Frame().Height() != 20 {
		t.Errorf("frame = %dx%d, expected 40x20", m.Frame().Width(), m.Frame().Height())
	}
	if len(m.Frame().Frame()) != 40*20*4 {
		t.Errorf("len(Frame()) = %d, expected %d", len(m.Frame().Frame()), 40*20*4)
	}
}

func TestModelResizeReallocates(t *testing.T) {
	m := newTestModel(t, nil, 40, 12)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})

	r := m.Frame()
	if r.Width() != 30 || r.Height() != 16 {
		t.Errorf("frame after resize = %dx%d, expected 30x16", r.Width(), r.Height())
	}
	if len(r.Frame()) != 30*16*4 {
		t.Errorf("len(Frame()) = %d, expected %d", len(r.Frame()), 30*16*4)
	}
	if m.config.Width != 30 || m.config.Height != 16 {
		t.Errorf("runtime size = %dx%d, expected 30x16", m.config.Width, m.config.Height)
	}
}

func TestModelViewPresentsFrame(t *testing.T) {
	m := newTestModel(t, nil, 60, 20)
	view := m.View()

	if !strings.Contains(view, "Zero Physics") {
		t.Error("View() should contain the scene title")
	}
	if !strings.Contains(view, "60x36") {
		t.Error("View() should contain the frame size")
	}

	// The run sits on the centre row, in the foreground color
	fg := core.DefaultPalette().Foreground
	if c, _ := m.Frame().Pixel(31, 18); c != fg {
		t.Errorf("Pixel(31, 18) = %v, expected foreground %v", c, fg)
	}
	if c, _ := m.Frame().Pixel(30, 18); c == fg {
		t.Error("centre pixel should stay background")
	}
}

func TestModelPauseOnTick(t *testing.T) {
	m := newTestModel(t, nil, 20, 6)

	m, _ = update(t, m, TickMsg(time.Now()))
	if got := m.scene.State().Frame; got != 1 {
		t.Errorf("frame after one tick = %d, expected 1", got)
	}

	m, _ = update(t, m, runeKey('p'))
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !m.scene.State().Paused {
		t.Fatal("scene should be paused")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if got := m.scene.State().Frame; got != 1 {
		t.Errorf("frame while paused = %d, expected 1", got)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() should show PAUSED")
	}
}

func TestModelResetKey(t *testing.T) {
	m := newTestModel(t, nil, 20, 6)
	for range 3 {
		m, _ = update(t, m, TickMsg(time.Now()))
	}

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg(time.Now()))
	if got := m.scene.State().Frame; got != 1 {
		t.Errorf("frame after reset tick = %d, expected 1", got)
	}
}

func TestModelCapture(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(t, store, 20, 6)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s should return a capture command")
	}

	done, ok := cmd().(captureDoneMsg)
	if !ok {
		t.Fatal("capture command should produce captureDoneMsg")
	}
	if done.err != nil {
		t.Fatalf("capture failed: %v", done.err)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Errorf("capture file missing: %v", err)
	}
	if filepath.Dir(done.path) != m.capture.Dir {
		t.Errorf("capture dir = %s, expected %s", filepath.Dir(done.path), m.capture.Dir)
	}

	captures, err := store.RecentCaptures(10)
	if err != nil {
		t.Fatalf("RecentCaptures() failed: %v", err)
	}
	if len(captures) != 1 {
		t.Fatalf("got %d captures, expected 1", len(captures))
	}
	c := captures[0]
	if c.SceneID != "zero" || c.Width != 20 || c.Height != 8 || c.Source != storage.SourceTUI || c.Path != done.path {
		t.Errorf("capture = %+v, expected zero 20x8 from tui at %s", c, done.path)
	}

	m, _ = update(t, m, done)
	if !strings.Contains(m.View(), "saved "+filepath.Base(done.path)) {
		t.Error("View() should report the saved capture")
	}
}

func TestWriteCaptureWithoutStore(t *testing.T) {
	img := export.Snapshot(raster.NewRenderer(raster.NewFrame(4, 2), 4, 2))
	dir := filepath.Join(t.TempDir(), "nested")
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	path, err := writeCapture(nil, "orbit", img, CaptureConfig{Dir: dir, Format: export.BMP, Scale: 3}, now)
	if err != nil {
		t.Fatalf("writeCapture() failed: %v", err)
	}
	if expected := filepath.Join(dir, "orbit-20240506-070809.bmp"); path != expected {
		t.Errorf("writeCapture() = %s, expected %s", path, expected)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("capture file missing: %v", err)
	}
}

func TestModelCaptureError(t *testing.T) {
	m := newTestModel(t, nil, 20, 6)

	// A regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.capture.Dir = filepath.Join(blocker, "sub")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	done := cmd().(captureDoneMsg)
	if done.err == nil {
		t.Fatal("capture into a file path should fail")
	}

	m, _ = update(t, m, done)
	if !strings.Contains(m.View(), "capture failed") {
		t.Error("View() should report the failed capture")
	}
}

func TestModelBackStandaloneQuits(t *testing.T) {
	m := newTestModel(t, nil, 20, 6)
	m, cmd := update(t, m, runeKey('b'))

	if !m.BackToMenu() || !m.IsQuitting() {
		t.Error("back in a standalone viewer should quit")
	}
	if cmd == nil {
		t.Error("back in a standalone viewer should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelBackEmbedded(t *testing.T) {
	m := newTestModel(t, nil, 20, 6)
	m.embedded = true
	m, cmd := update(t, m, runeKey('b'))

	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("back in an embedded viewer should only request the menu")
	}
	if cmd != nil {
		t.Error("back in an embedded viewer should not quit the program")
	}
}

func TestModelKeysQueueSceneActions(t *testing.T) {
	m := newTestModel(t, nil, 20, 6)
	m.embedded = true

	m, _ = update(t, m, runeKey('+'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if !m.inputFrame.Has(core.ActionZoomIn) || !m.inputFrame.Has(core.ActionPanLeft) {
		t.Error("zoom and pan keys should be queued for the next tick")
	}

	// Host actions are handled by the viewer, never passed to the scene
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Error("ctrl+s should return a capture command")
	}
	m, _ = update(t, m, runeKey('b'))
	if m.inputFrame.Has(core.ActionCapture) || m.inputFrame.Has(core.ActionBack) {
		t.Error("capture and back should not reach the scene input")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if m.inputFrame.Has(core.ActionZoomIn) || m.inputFrame.Has(core.ActionPanLeft) {
		t.Error("tick should clear the queued input")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t, nil, 80, 24)
	m, _ = update(t, m, runeKey('?'))

	if !m.help.ShowAll {
		t.Error("? should show full help")
	}
	if !strings.Contains(m.View(), "zoom in") {
		t.Error("full help should list zoom in")
	}

	m, _ = update(t, m, runeKey('?'))
	if m.help.ShowAll {
		t.Error("second ? should hide full help")
	}
}

func TestOverlayBottom(t *testing.T) {
	got := overlayBottom("a\nb\nc\n", "X\nY")
	if got != "a\nX\nY" {
		t.Errorf("overlayBottom() = %q, expected %q", got, "a\nX\nY")
	}
}
