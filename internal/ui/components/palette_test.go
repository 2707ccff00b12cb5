package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(p Palette, s string) Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteSubmitAndRecall(t *testing.T) {
	p := NewPalette()
	p.Open()
	p = typeText(p, "goal:check")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "goal:check" {
		t.Fatalf("unexpected submit msg %#v", msg)
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := p.input.Value(); got != "goal:check" {
		t.Fatalf("expected recalled command, got %q", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := p.input.Value(); got != "" {
		t.Fatalf("expected empty prompt after down, got %q", got)
	}
}

func TestPaletteTabCompletesCommandName(t *testing.T) {
	p := NewPalette()
	p.Open()
	p = typeText(p, "session:sa")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "session:save " {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestSuggestionsMatchFirstWord(t *testing.T) {
	if got := suggestions("tab:", 5); len(got) != 3 {
		t.Fatalf("expected 3 tab commands, got %d", len(got))
	}
	if got := suggestions("session:save Math 30", 5); len(got) != 1 {
		t.Fatalf("expected argument text to be ignored, got %d", len(got))
	}
	if got := suggestions("", 2); len(got) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
}

func TestEscCancels(t *testing.T) {
	p := NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("palette should close on esc")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel msg")
	}
}
