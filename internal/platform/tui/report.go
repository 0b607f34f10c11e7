package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osokolkov/steploop/internal/registry"
	"github.com/osokolkov/steploop/internal/storage"
)

// Report browser layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show demo list sidebar
	sidebarWidth       = 20 // Width of demo list sidebar
	maxReportRuns      = 50 // Max runs to load per demo
)

// ReportKeyMap defines the key bindings for the run report browser.
type ReportKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextDemo key.Binding
	PrevDemo key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReportKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextDemo, k.PrevDemo, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReportKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextDemo, k.PrevDemo},
		{k.Quit},
	}
}

// DefaultReportKeyMap returns default key bindings.
func DefaultReportKeyMap() ReportKeyMap {
	return ReportKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev demo"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next demo"),
		),
		NextDemo: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next demo"),
		),
		PrevDemo: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev demo"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReportModel is the Bubble Tea model for the run report browser.
type ReportModel struct {
	demos       []registry.DemoInfo
	demoCursor  int
	store       *storage.Store
	runs        []storage.RunReport
	stats       *storage.DemoStats
	table       table.Model
	help        help.Model
	keys        ReportKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewReportModel creates a new run report browser model.
func NewReportModel(store *storage.Store, width, height int) ReportModel {
	keys := DefaultReportKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ReportModel{
		demos:       registry.List(),
		demoCursor:  0,
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()

	if len(m.demos) > 0 {
		m.loadRuns(m.demos[0].ID)
	}

	return m
}

// createTable creates a new table with run report columns.
func (m *ReportModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Rates", Width: 12},
		{Title: "Achieved", Width: 14},
		{Title: "Updates", Width: 9},
		{Title: "Dropped", Width: 9},
		{Title: "Wall", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
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

// loadRuns loads run reports and aggregate stats for the given demo ID.
func (m *ReportModel) loadRuns(demoID string) {
	if m.store == nil {
		m.runs = nil
		m.stats = nil
		m.updateTableRows()
		return
	}

	runs, err := m.store.RunsForDemo(demoID, maxReportRuns)
	if err != nil {
		m.runs = nil
	} else {
		m.runs = runs
	}

	stats, err := m.store.StatsForDemo(demoID)
	if err != nil {
		m.stats = nil
	} else {
		m.stats = stats
	}

	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ReportModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d/%d", r.UpdateRate, r.FrameRate),
			fmt.Sprintf("%.1f/%.1f", r.AchievedUPS(), r.AchievedFPS()),
			fmt.Sprintf("%d", r.Updates),
			fmt.Sprintf("%d", r.Dropped),
			formatWall(r.WallMillis),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatWall renders a wall-clock duration in a compact form.
func formatWall(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	secs := float64(ms) / 1000
	if secs < 60 {
		return fmt.Sprintf("%.1fs", secs)
	}
	return fmt.Sprintf("%dm%02ds", int(secs)/60, int(secs)%60)
}

// Init initializes the report model.
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the report browser.
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextDemo), key.Matches(msg, m.keys.Right):
			if len(m.demos) > 0 {
				m.demoCursor = (m.demoCursor + 1) % len(m.demos)
				m.loadRuns(m.demos[m.demoCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevDemo), key.Matches(msg, m.keys.Left):
			if len(m.demos) > 0 {
				m.demoCursor--
				if m.demoCursor < 0 {
					m.demoCursor = len(m.demos) - 1
				}
				m.loadRuns(m.demos[m.demoCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the report browser.
func (m ReportModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN REPORTS"
	if len(m.demos) > 0 {
		title = fmt.Sprintf("RUN REPORTS - %s", m.demos[m.demoCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the browser with a demo sidebar.
func (m ReportModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Demos\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, d := range m.demos {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.demoCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := d.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := tableStyle.Render(m.renderTableContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the browser with demo tabs above the table.
func (m ReportModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.demos))
	for i, d := range m.demos {
		shortName := d.Title
		if len(shortName) > 12 {
			shortName = shortName[:11] + "."
		}
		if i == m.demoCursor {
			tabs[i] = activeTabStyle.Render(shortName)
		} else {
			tabs[i] = tabStyle.Render(" " + shortName + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > m.width-4 && len(m.demos) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.demos[m.demoCursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table with a summary line, or an
// empty-state message.
func (m ReportModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nRun a demo to collect loop statistics!")
	}

	var b strings.Builder
	b.WriteString(m.table.View())

	if m.stats != nil && m.stats.RunCount > 0 {
		summaryStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)
		b.WriteString("\n")
		b.WriteString(summaryStyle.Render(fmt.Sprintf(
			"%d runs, %d updates total, %d dropped",
			m.stats.RunCount, m.stats.TotalUpdates, m.stats.TotalDropped,
		)))
	}

	return b.String()
}

// centerText centers a single line of text within the given width.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad < 1 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// RunReportBrowser runs the report browser screen.
func RunReportBrowser(store *storage.Store, width, height int) error {
	model := NewReportModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
