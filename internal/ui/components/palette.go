package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studytrack/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is sent when the palette closes without a command.
type PaletteCancelMsg struct{}

type paletteCommand struct {
	usage string
	about string
}

// Keep in sync with executePalette in app/model.go.
var paletteCommands = []paletteCommand{
	{"refresh", "reload every tab"},
	{"goal:check", "evaluate active goals"},
	{"session:start <subject>", "start the timer"},
	{"session:stop [note]", "stop the timer and save"},
	{"session:save <subject> <minutes> [note]", "record a finished session"},
	{"tab:overview", "statistics and insights"},
	{"tab:goals", "goals and their status"},
	{"tab:notes", "recent progress notes"},
}

const (
	maxSuggestions = 5
	maxHistory     = 20
)

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)
	usageStyle = lipgloss.NewStyle().Foreground(theme.Sapphire)
	aboutStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette is a one-line command prompt shown over the active tab. Submitted
// lines are kept so up and down can recall them.
type Palette struct {
	input   textinput.Model
	open    bool
	width   int
	history []string
	cursor  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "command"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.open }

// Open clears the prompt and focuses it.
func (p *Palette) Open() tea.Cmd {
	p.open = true
	p.cursor = len(p.history)
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.open = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	switch key.String() {
	case "esc":
		p.close()
		return p, func() tea.Msg { return PaletteCancelMsg{} }
	case "enter":
		line := strings.TrimSpace(p.input.Value())
		p.close()
		p.remember(line)
		return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
	case "tab":
		if found := suggestions(p.input.Value(), 1); len(found) == 1 {
			name, _, _ := strings.Cut(found[0].usage, " ")
			p.input.SetValue(name + " ")
			p.input.CursorEnd()
		}
		return p, nil
	case "up":
		p.recall(-1)
		return p, nil
	case "down":
		p.recall(1)
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == line {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

func (p *Palette) recall(step int) {
	next := p.cursor + step
	if next < 0 || next > len(p.history) {
		return
	}
	p.cursor = next
	if next == len(p.history) {
		p.input.SetValue("")
	} else {
		p.input.SetValue(p.history[next])
	}
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.open {
		return ""
	}
	lines := []string{theme.Title.Render("Commands"), p.input.View()}
	if found := suggestions(p.input.Value(), maxSuggestions); len(found) > 0 {
		lines = append(lines, "")
		for _, c := range found {
			lines = append(lines, "  "+usageStyle.Render(c.usage)+"  "+aboutStyle.Render(c.about))
		}
	}
	width := p.width
	if width < 20 {
		width = 64
	}
	return frameStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// suggestions lists commands whose name starts with the first word typed.
func suggestions(input string, limit int) []paletteCommand {
	word, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(input)), " ")
	var out []paletteCommand
	for _, c := range paletteCommands {
		if !strings.HasPrefix(c.usage, word) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
