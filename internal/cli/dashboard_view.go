package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cli/formatter"
)

// dashboardTab is one browsable section of a dashboard response.
type dashboardTab struct {
	title  string
	render func(d *app.DashboardResponse) string
}

var dashboardTabs = []dashboardTab{
	{"Trust", func(d *app.DashboardResponse) string { return formatter.FormatTrust(d.Trust) }},
	{"Progress", func(d *app.DashboardResponse) string { return formatter.FormatProgress(&d.Progress) }},
	{"Patterns", func(d *app.DashboardResponse) string { return formatter.FormatPatterns(&d.Patterns) }},
	{"Cycles", func(d *app.DashboardResponse) string { return formatter.FormatCycles(&d.Cycles, d.GeneratedAt) }},
	{"Resilience", func(d *app.DashboardResponse) string { return formatter.FormatResilience(&d.Resilience) }},
}

type dashboardKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("→/tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Up, k.Down, k.Refresh, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// dashboardLoadedMsg carries the result of one dashboard load.
type dashboardLoadedMsg struct {
	data *app.DashboardResponse
	err  error
}

// dashboardLoader fetches the dashboard. fresh drops cached reports first.
type dashboardLoader func(ctx context.Context, fresh bool) (*app.DashboardResponse, error)

// dashboardModel browses the dashboard sections one tab at a time inside a
// scrollable viewport.
type dashboardModel struct {
	ctx     context.Context
	load    dashboardLoader
	data    *app.DashboardResponse
	err     error
	loading bool

	tab      int
	vp       viewport.Model
	keys     dashboardKeyMap
	help     help.Model
	quitting bool
}

// dashboardChrome is the number of lines taken by the tab bar and help
// footer.
const dashboardChrome = 4

func newDashboardModel(ctx context.Context, load dashboardLoader) dashboardModel {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	return dashboardModel{
		ctx:     ctx,
		load:    load,
		loading: true,
		vp:      vp,
		keys:    newDashboardKeyMap(),
		help:    help.New(),
	}
}

func (m dashboardModel) loadCmd(fresh bool) tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		d, err := load(ctx, fresh)
		return dashboardLoadedMsg{data: d, err: err}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadCmd(false)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-dashboardChrome)
		m.help.Width = msg.Width
		m.refreshContent()
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.data = msg.data
		}
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.tab = (m.tab + 1) % len(dashboardTabs)
			m.refreshContent()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.tab = (m.tab - 1 + len(dashboardTabs)) % len(dashboardTabs)
			m.refreshContent()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.loadCmd(true)
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *dashboardModel) refreshContent() {
	switch {
	case m.err != nil:
		m.vp.SetContent(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case m.data == nil:
		m.vp.SetContent(formatter.Dim("Loading..."))
	default:
		m.vp.SetContent(dashboardTabs[m.tab].render(m.data))
	}
	m.vp.GotoTop()
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	status := m.help.View(m.keys)
	if m.loading && m.data != nil {
		status = formatter.Dim("refreshing…") + "  " + status
	}
	b.WriteString(status)
	return b.String()
}

func (m dashboardModel) renderTabs() string {
	active := formatter.StyleHeader.Underline(true)
	parts := make([]string, 0, len(dashboardTabs))
	for i, t := range dashboardTabs {
		if i == m.tab {
			parts = append(parts, active.Render(t.title))
		} else {
			parts = append(parts, formatter.StyleDim.Render(t.title))
		}
	}
	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(" │ ")
	title := formatter.Header("Dashboard")
	if m.data != nil {
		title += formatter.Dim(" · " + formatter.Timestamp(m.data.GeneratedAt))
	}
	return title + "\n" + strings.Join(parts, sep)
}
