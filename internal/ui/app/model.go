package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "studytrack/internal/modules/goal/dto"
	sessiondto "studytrack/internal/modules/session/dto"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/humanize"
	"studytrack/internal/ui/components"
	"studytrack/internal/ui/theme"
	goalsview "studytrack/internal/ui/views/goals"
	notesview "studytrack/internal/ui/views/notes"
	overviewview "studytrack/internal/ui/views/overview"
)

type sessionPort interface {
	Save(ctx context.Context, user, subject string, minutes int, note string) (sessiondto.SaveOutput, error)
	Start(ctx context.Context, user, subject string) (sessiondto.StartOutput, error)
	Stop(ctx context.Context, user, note string) (sessiondto.SaveOutput, error)
	GetActive(ctx context.Context, user string) (sessiondto.ActiveSessionOutput, error)
}

type goalPort interface {
	goalsview.GoalPort
	Check(ctx context.Context, user string) ([]goaldto.GoalOutput, error)
}

type tabID int

const (
	tabOverview tabID = iota
	tabGoals
	tabNotes
	tabCount
)

var tabLabels = [tabCount]string{"Overview", "Goals", "Notes"}

func parseTab(name string) (tabID, bool) {
	for i, label := range tabLabels {
		if strings.EqualFold(label, name) {
			return tabID(i), true
		}
	}
	return 0, false
}

type activeLoadedMsg struct {
	active sessiondto.ActiveSessionOutput
	err    error
}

type sessionStartedMsg struct {
	out sessiondto.StartOutput
	err error
}

type sessionSavedMsg struct {
	out     sessiondto.SaveOutput
	stopped bool
	err     error
}

type goalsCheckedMsg struct {
	completed []goaldto.GoalOutput
	err       error
}

type timerTickMsg time.Time

type bindings struct {
	Next, Prev, Refresh, Help, Palette, Quit key.Binding
}

var keys = bindings{
	Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload data")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "commands")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

func (b bindings) ShortHelp() []key.Binding { return []key.Binding{b.Next, b.Palette, b.Help, b.Quit} }

func (b bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{{b.Next, b.Prev, b.Refresh}, {b.Palette, b.Help, b.Quit}}
}

// Model is the root Bubble Tea model. It owns tab routing, the running timer,
// the help overlay and the command palette. Rendering is delegated to sub-views.
type Model struct {
	user string

	session sessionPort
	goals   goalPort

	overview overviewview.Model
	goalView goalsview.Model
	noteView notesview.Model

	activeTab tabID
	help      help.Model
	showHelp  bool
	palette   components.Palette
	active    sessiondto.ActiveSessionOutput
	hasActive bool
	now       time.Time
	status    string
	width     int
	height    int
}

func NewModel(
	user string,
	session sessionPort,
	goals goalPort,
	notes notesview.NotesPort,
	report overviewview.ReportPort,
) Model {
	return Model{
		user:      user,
		session:   session,
		goals:     goals,
		overview:  overviewview.New(report, user),
		goalView:  goalsview.New(goals, user),
		noteView:  notesview.New(notes, user),
		activeTab: tabOverview,
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.overview.Init(),
		m.goalView.Init(),
		m.noteView.Init(),
		m.loadActiveCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Loaded messages go to their own view whichever tab is showing.
	case overviewview.LoadedMsg:
		var cmd tea.Cmd
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd
	case goalsview.LoadedMsg:
		var cmd tea.Cmd
		m.goalView, cmd = m.goalView.Update(msg)
		return m, cmd
	case notesview.LoadedMsg:
		var cmd tea.Cmd
		m.noteView, cmd = m.noteView.Update(msg)
		return m, cmd

	case activeLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "active timer check: " + msg.err.Error()
			}
			m.hasActive = false
			return m, nil
		}
		m.hasActive = true
		m.active = msg.active
		m.now = time.Now()
		m.status = "timer recovered: " + msg.active.Subject
		return m, tickTimer()

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "start failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = true
		m.active = sessiondto.ActiveSessionOutput{User: msg.out.User, Subject: msg.out.Subject, StartedAt: msg.out.StartedAt}
		m.now = time.Now()
		m.status = "timer started: " + msg.out.Subject
		return m, tickTimer()

	case sessionSavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		if msg.stopped {
			m.hasActive = false
			m.active = sessiondto.ActiveSessionOutput{}
		}
		m.status = fmt.Sprintf("saved %s of %s", humanize.Minutes(int(msg.out.Record.DurationMin)), msg.out.Record.Subject)
		if n := len(msg.out.CompletedGoals); n > 0 {
			m.status += fmt.Sprintf(", %d goal(s) completed", n)
		}
		if len(msg.out.Warnings) > 0 {
			m.status += " (warning: " + msg.out.Warnings[0] + ")"
		}
		return m, m.refreshAll()

	case goalsCheckedMsg:
		if msg.err != nil {
			m.status = "goal check failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("goal check: %d newly completed", len(msg.completed))
		return m, m.goalView.Refresh()

	case timerTickMsg:
		if !m.hasActive {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, tickTimer()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// An open list filter receives every key.
		if !m.typingInTab() {
			if next, cmd, handled := m.handleKey(msg); handled {
				return next, cmd
			}
		}
	}
	return m.updateTab(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, keys.Next):
		m.activeTab = (m.activeTab + 1) % tabCount
	case key.Matches(msg, keys.Prev):
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
	case key.Matches(msg, keys.Help):
		m.showHelp = true
	case key.Matches(msg, keys.Palette):
		return m, m.palette.Open(), true
	case key.Matches(msg, keys.Refresh):
		m.status = "refreshing"
		return m, m.refreshAll(), true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m Model) updateTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case tabGoals:
		m.goalView, cmd = m.goalView.Update(msg)
	case tabNotes:
		m.noteView, cmd = m.noteView.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	top, bottom := m.renderTabBar(), m.renderStatusBar()
	height := max(m.height-lipgloss.Height(top)-lipgloss.Height(bottom), 1)

	body := m.activeView()
	if m.showHelp {
		m.help.ShowAll = true
		body = lipgloss.NewStyle().Width(m.width).Height(height).Padding(1, 2).Render(m.help.View(keys))
	} else if m.palette.Visible() {
		body = lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.palette.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, body, bottom)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabOverview:
		return m.overview.View()
	case tabGoals:
		return m.goalView.View()
	case tabNotes:
		return m.noteView.View()
	}
	return ""
}

var barStyle = lipgloss.NewStyle().Background(theme.Mantle)

func (m Model) renderTabBar() string {
	cells := []string{theme.Title.Render("studytrack ")}
	for i, label := range tabLabels {
		style := theme.Muted
		if tabID(i) == m.activeTab {
			style = theme.Hot
		}
		cells = append(cells, style.Padding(0, 1).Render(label))
	}
	return barStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...)) + "\n"
}

// renderStatusBar shows the running timer, the last status line and the short help.
func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		elapsed := max(m.now.Sub(m.active.StartedAt), 0).Truncate(time.Second)
		left = theme.Hot.Render(fmt.Sprintf("● %s %s", m.active.Subject, elapsed)) + "  " + left
	}
	right := m.help.ShortHelpView(keys.ShortHelp())
	pad := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return "\n" + barStyle.Width(m.width).Render(left+strings.Repeat(" ", pad)+right)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch {
	case parts[0] == "refresh":
		m.status = "refreshing"
		return m, m.refreshAll()

	case parts[0] == "goal:check":
		m.activeTab = tabGoals
		return m, m.checkGoalsCmd()

	case parts[0] == "session:start":
		if len(parts) < 2 {
			m.status = "usage: session:start <subject>"
			return m, nil
		}
		return m, m.startCmd(strings.Join(parts[1:], " "))

	case parts[0] == "session:stop":
		note := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.stopCmd(note)

	case parts[0] == "session:save":
		if len(parts) < 3 {
			m.status = "usage: session:save <subject> <minutes> [note]"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		note := strings.TrimSpace(strings.Join(parts[3:], " "))
		return m, m.saveCmd(parts[1], minutes, note)

	case strings.HasPrefix(parts[0], "tab:"):
		tab, ok := parseTab(strings.TrimPrefix(parts[0], "tab:"))
		if !ok {
			m.status = "unknown tab: " + strings.TrimPrefix(parts[0], "tab:")
			return m, nil
		}
		m.activeTab = tab
		m.status = "switched to " + tabLabels[tab]
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) typingInTab() bool {
	switch m.activeTab {
	case tabGoals:
		return m.goalView.Filtering()
	case tabNotes:
		return m.noteView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.overview, _ = m.overview.Update(sz)
	m.goalView, _ = m.goalView.Update(sz)
	m.noteView, _ = m.noteView.Update(sz)
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(m.overview.Refresh(), m.goalView.Refresh(), m.noteView.Refresh())
}

func tickTimer() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return timerTickMsg(t) })
}

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.GetActive(context.Background(), m.user)
		return activeLoadedMsg{active: active, err: err}
	}
}

func (m Model) startCmd(subject string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), m.user, subject)
		return sessionStartedMsg{out: out, err: err}
	}
}

func (m Model) stopCmd(note string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Stop(context.Background(), m.user, note)
		return sessionSavedMsg{out: out, stopped: true, err: err}
	}
}

func (m Model) saveCmd(subject string, minutes int, note string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Save(context.Background(), m.user, subject, minutes, note)
		return sessionSavedMsg{out: out, err: err}
	}
}

func (m Model) checkGoalsCmd() tea.Cmd {
	return func() tea.Msg {
		completed, err := m.goals.Check(context.Background(), m.user)
		return goalsCheckedMsg{completed: completed, err: err}
	}
}
