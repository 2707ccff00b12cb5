package overview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsinadapter "studytrack/internal/modules/analytics/adapter/in"
	"studytrack/internal/platform/humanize"
	"studytrack/internal/ui/theme"
)

type ReportPort interface {
	Report(ctx context.Context, user string, opts analyticsinadapter.ReportOptions) (analyticsinadapter.Report, error)
}

type LoadedMsg struct {
	Report analyticsinadapter.Report
	Err    error
}

var reportOptions = analyticsinadapter.ReportOptions{Period: "week", DaysBack: 6, WeeksBack: 3, MonthsBack: 5}

type Model struct {
	port    ReportPort
	user    string
	view    viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	report  analyticsinadapter.Report
	width   int
	height  int
}

func New(port ReportPort, user string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, user: user, view: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads the report in the background.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("analytics not configured")}
		}
		report, err := m.port.Report(context.Background(), m.user, reportOptions)
		return LoadedMsg{Report: report, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = msg.Height
		m.view.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.report = msg.Report
		}
		m.view.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading statistics…")
	}
	return m.view.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Hot.Render("error: ") + m.err.Error()
	}
	r := m.report
	s := r.Summary
	var sb strings.Builder

	sb.WriteString(theme.Title.Render("Overview · "+m.user) + "\n\n")
	if s.TotalSessions == 0 {
		sb.WriteString(theme.Muted.Render("No sessions yet. Start one with : then session:start <subject>.") + "\n")
		return sb.String()
	}
	row := func(label, value string) {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-16s", label)) + value + "\n")
	}
	row("sessions", fmt.Sprint(s.TotalSessions))
	row("total", s.TotalLabel)
	row("average", humanize.Minutes(int(s.AverageSessionMin)))
	row("favourite", s.FavouriteSubject)
	row("last 7 days", humanize.Hours(s.Last7DaysMin/60))
	row("last 30 days", humanize.Hours(s.Last30DaysMin/60))

	sb.WriteString("\n" + theme.Title.Render("This week by subject") + "\n")
	if len(r.BySubject) == 0 {
		sb.WriteString(theme.Muted.Render("  nothing this week") + "\n")
	}
	for _, sh := range r.BySubject {
		sb.WriteString(fmt.Sprintf("  %-18s %s\n", sh.Subject, humanize.Hours(sh.Hours)))
	}

	sb.WriteString("\n" + theme.Title.Render("Weekday pattern") + "\n")
	maxHours := 0.0
	for _, d := range r.ByWeekday {
		if d.Hours > maxHours {
			maxHours = d.Hours
		}
	}
	for _, d := range r.ByWeekday {
		pct := 0.0
		if maxHours > 0 {
			pct = d.Hours / maxHours * 100
		}
		sb.WriteString(fmt.Sprintf("  %-10s %s %5.1fh\n", d.Day, theme.Bar(pct, 24), d.Hours))
	}

	p := r.Productivity
	sb.WriteString("\n" + theme.Muted.Render("best hour ") + p.TopHour +
		theme.Muted.Render("  best day ") + p.TopDay + "\n")

	if len(r.Insights) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Insights") + "\n")
		for _, in := range r.Insights {
			style := theme.Muted
			switch in.Level {
			case "excellent":
				style = theme.Good
			case "good":
				style = lipgloss.NewStyle().Foreground(theme.Sapphire)
			case "low":
				style = theme.Warn
			}
			sb.WriteString("  " + style.Render("•") + " " + in.Message + "\n")
		}
	}
	return sb.String()
}
