package goals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "studytrack/internal/modules/goal/dto"
	"studytrack/internal/platform/humanize"
	"studytrack/internal/ui/theme"
)

type GoalPort interface {
	List(ctx context.Context, user string) ([]goaldto.GoalOutput, error)
}

type LoadedMsg struct {
	Goals []goaldto.GoalOutput
	Err   error
}

type goalItem struct {
	goal goaldto.GoalOutput
}

func (i goalItem) Title() string {
	return fmt.Sprintf("#%d %s", i.goal.ID, i.goal.Subject)
}

func (i goalItem) Description() string {
	return fmt.Sprintf("%s %3.0f%%  %s per %s",
		theme.Bar(i.goal.Percent, 16), i.goal.Percent, i.goal.TargetLabel, i.goal.Interval)
}

func (i goalItem) FilterValue() string { return i.goal.Subject }

type Model struct {
	port   GoalPort
	user   string
	list   list.Model
	detail viewport.Model
	width  int
	height int
}

func New(port GoalPort, user string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Goals"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, user: user, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("goals not configured")}
		}
		goals, err := m.port.List(context.Background(), m.user)
		return LoadedMsg{Goals: goals, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 5 / 10
		m.list.SetSize(listW, m.height)
		m.detail.Width = m.width - listW - 4
		m.detail.Height = m.height - 4

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Goals: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Goals"
		items := make([]list.Item, len(msg.Goals))
		for i, g := range msg.Goals {
			items[i] = goalItem{goal: g}
		}
		cmds = append(cmds, m.list.SetItems(items))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.detail.SetContent(m.renderDetail())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 5 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(m.width-listW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(goalItem)
	if !ok {
		return theme.Muted.Render("No goals. Create one with `studytrack goal add`.")
	}
	g := item.goal
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(g.Subject) + "\n\n")
	sb.WriteString(theme.Muted.Render("target:   ") + g.TargetLabel + " per " + g.Interval + "\n")
	sb.WriteString(theme.Muted.Render("studied:  ") + humanize.Minutes(int(g.StudiedMin)) + "\n")
	sb.WriteString(theme.Muted.Render("progress: ") + fmt.Sprintf("%.1f%% ", g.Percent) + theme.Band(g.Band).Render(g.Band) + "\n")
	sb.WriteString(theme.Muted.Render("period:   ") + "since " + g.PeriodStart.Format("2006-01-02") + "\n")
	sb.WriteString(theme.Muted.Render("created:  ") + g.CreatedAt.Format(time.DateTime) + "\n")
	if g.CompletedAt != nil {
		sb.WriteString(theme.Muted.Render("done:     ") + g.CompletedAt.Format(time.DateTime) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(": goal:check  marks reached goals as completed"))
	return sb.String()
}
