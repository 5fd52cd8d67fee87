package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zero/internal/registry"
	"github.com/vovakirdan/zero/internal/storage"
)

// Capture browser layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the scene sidebar
	sidebarWidth       = 20  // Width of scene sidebar
	maxCaptures        = 100 // Max captures to load
)

// allScenes is the sidebar entry listing captures of every scene.
var allScenes = registry.SceneInfo{ID: "", Title: "All scenes"}

// CapturesKeyMap defines the key bindings for the capture browser.
type CapturesKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CapturesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k CapturesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Back, k.Quit},
	}
}

// DefaultCapturesKeyMap returns default key bindings.
func DefaultCapturesKeyMap() CapturesKeyMap {
	return CapturesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CapturesModel is the Bubble Tea model for the capture browser.
type CapturesModel struct {
	scenes      []registry.SceneInfo // Sidebar entries, "All scenes" first
	sceneCursor int
	store       *storage.Store
	captures    []storage.Capture
	table       table.Model
	help        help.Model
	keys        CapturesKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewCapturesModel creates a new capture browser.
func NewCapturesModel(store *storage.Store, width, height int) CapturesModel {
	h := help.New()
	h.ShowAll = false

	m := CapturesModel{
		scenes:      append([]registry.SceneInfo{allScenes}, registry.List()...),
		store:       store,
		keys:        DefaultCapturesKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadCaptures()

	return m
}

// createTable creates a new table sized to the terminal.
func (m *CapturesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Scene", Width: 8},
		{Title: "Format", Width: 6},
		{Title: "Size", Width: 11},
		{Title: "File", Width: 20},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give the file column whatever is left
	if rest := tableWidth - 12 - 8 - 6 - 11 - 10; rest > columns[4].Width {
		columns[4].Width = min(rest, 48)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadCaptures loads captures for the scene under the cursor.
func (m *CapturesModel) loadCaptures() {
	m.captures = nil
	if m.store != nil {
		var (
			captures []storage.Capture
			err      error
		)
		if id := m.scenes[m.sceneCursor].ID; id == "" {
			captures, err = m.store.RecentCaptures(maxCaptures)
		} else {
			captures, err = m.store.CapturesForScene(id, maxCaptures)
		}
		if err == nil {
			m.captures = captures
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current captures.
func (m *CapturesModel) updateTableRows() {
	rows := make([]table.Row, len(m.captures))
	for i, c := range m.captures {
		rows[i] = table.Row{
			c.CreatedAt.Format("Jan 02 15:04"),
			c.SceneID,
			c.Format,
			fmt.Sprintf("%dx%d x%d", c.Width, c.Height, c.Scale),
			filepath.Base(c.Path),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the capture browser.
func (m CapturesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the capture browser.
func (m CapturesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			m.sceneCursor = (m.sceneCursor + 1) % len(m.scenes)
			m.loadCaptures()
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			m.sceneCursor = (m.sceneCursor - 1 + len(m.scenes)) % len(m.scenes)
			m.loadCaptures()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the capture browser.
func (m CapturesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("CAPTURES - %s", m.scenes[m.sceneCursor].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the scene sidebar next to the table.
func (m CapturesModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Scenes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scenes {
		cursor, style := "  ", lipgloss.NewStyle()
		if i == m.sceneCursor {
			cursor, style = "> ", menuSelectedStyle
		}
		sidebar.WriteString(style.Render(cursor + truncate(s.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	left := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	right := panelStyle.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderNarrowLayout renders "< scene >" above the table.
func (m CapturesModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.scenes[m.sceneCursor].Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(panelStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m CapturesModel) renderTableContent() string {
	if len(m.captures) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No captures yet.\nPress ctrl+s while viewing a scene.")
	}
	return m.table.View()
}

// Captures returns the loaded captures.
func (m CapturesModel) Captures() []storage.Capture {
	return m.captures
}

// IsGoingBack returns true if user wants to go back to menu.
func (m CapturesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m CapturesModel) IsQuitting() bool {
	return m.quitting
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// RunCaptures runs the capture browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunCaptures(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewCapturesModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(CapturesModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
