package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "studytrack/internal/modules/progress/dto"
	"studytrack/internal/platform/humanize"
	"studytrack/internal/ui/theme"
)

// recentDays bounds the activity window shown in the tab.
const recentDays = 30

type NotesPort interface {
	Recent(ctx context.Context, user string, days int) ([]progressdto.NoteOutput, error)
	Statistics(ctx context.Context, user, subject string) (progressdto.StatisticsOutput, error)
}

type LoadedMsg struct {
	Notes []progressdto.NoteOutput
	Stats progressdto.StatisticsOutput
	Err   error
}

type noteItem struct {
	note progressdto.NoteOutput
}

func (i noteItem) Title() string {
	marker := "·"
	if i.note.Kind == "milestone" {
		marker = "★"
	}
	return marker + " " + i.note.Topic
}

func (i noteItem) Description() string {
	return i.note.Subject + "  " + i.note.Timestamp.Format("2006-01-02 15:04")
}

func (i noteItem) FilterValue() string { return i.note.Subject + " " + i.note.Topic }

type Model struct {
	port   NotesPort
	user   string
	list   list.Model
	detail viewport.Model
	stats  progressdto.StatisticsOutput
	width  int
	height int
}

func New(port NotesPort, user string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Recent activity"
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
			return LoadedMsg{Err: fmt.Errorf("progress not configured")}
		}
		ctx := context.Background()
		notes, err := m.port.Recent(ctx, m.user, recentDays)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		stats, err := m.port.Statistics(ctx, m.user, "")
		return LoadedMsg{Notes: notes, Stats: stats, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 4 / 10
		m.list.SetSize(listW, m.height)
		m.detail.Width = m.width - listW - 4
		m.detail.Height = m.height - 4

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Recent activity: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Recent activity (%dd)", recentDays)
		m.stats = msg.Stats
		items := make([]list.Item, len(msg.Notes))
		for i, n := range msg.Notes {
			items[i] = noteItem{note: n}
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
	listW := m.width * 4 / 10
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
	var sb strings.Builder
	s := m.stats
	sb.WriteString(theme.Title.Render("Coverage") + "\n")
	sb.WriteString(fmt.Sprintf("%s%d sessions, %.2fh\n", theme.Muted.Render("studied:    "), s.TotalSessions, s.TotalHours))
	sb.WriteString(fmt.Sprintf("%s%d (%.1f%%)\n", theme.Muted.Render("with notes: "), s.SessionsWithNotes, s.NoteCoveragePct))
	sb.WriteString(fmt.Sprintf("%s%d topics, %d milestones\n\n", theme.Muted.Render("covered:    "), s.DistinctTopics, s.MilestonesCompleted))

	item, ok := m.list.SelectedItem().(noteItem)
	if !ok {
		sb.WriteString(theme.Muted.Render("No notes in the window."))
		return sb.String()
	}
	n := item.note
	sb.WriteString(theme.Title.Render(n.Topic) + "\n\n")
	sb.WriteString(theme.Muted.Render("subject: ") + n.Subject + "\n")
	sb.WriteString(theme.Muted.Render("kind:    ") + n.Kind + "\n")
	sb.WriteString(theme.Muted.Render("when:    ") + n.Timestamp.Format(time.DateTime) + "\n")
	if n.SessionDurationMin > 0 {
		sb.WriteString(theme.Muted.Render("session: ") + humanize.Minutes(int(n.SessionDurationMin)) + "\n")
	}
	sb.WriteString(theme.Muted.Render("total:   ") + humanize.Hours(n.CumulativeHours) + "\n")
	if strings.TrimSpace(n.Description) != "" {
		sb.WriteString("\n" + n.Description + "\n")
	}
	return sb.String()
}
