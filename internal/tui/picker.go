package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// sessionPicker is the overlay for switching, deleting, and filtering
// sessions. It owns its own transient input state.
type sessionPicker struct {
	ids      []string
	filter   string
	cursor   int
	filtered []string
}

func newSessionPicker(ids []string) *sessionPicker {
	p := &sessionPicker{ids: ids}
	p.applyFilter()
	return p
}

func (p *sessionPicker) applyFilter() {
	if p.filter == "" {
		p.filtered = p.ids
	} else {
		matches := fuzzy.Find(p.filter, p.ids)
		p.filtered = make([]string, len(matches))
		for i, m := range matches {
			p.filtered[i] = m.Str
		}
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = 0
	}
}

func (p *sessionPicker) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *sessionPicker) moveDown() {
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	}
}

func (p *sessionPicker) selected() (string, bool) {
	if p.cursor < 0 || p.cursor >= len(p.filtered) {
		return "", false
	}
	return p.filtered[p.cursor], true
}

func (p *sessionPicker) typeRune(r rune) {
	p.filter += string(r)
	p.applyFilter()
}

func (p *sessionPicker) backspace() {
	if p.filter != "" {
		p.filter = p.filter[:len(p.filter)-1]
		p.applyFilter()
	}
}

// remove drops an id from the picker after a deletion.
func (p *sessionPicker) remove(id string) {
	out := p.ids[:0]
	for _, s := range p.ids {
		if s != id {
			out = append(out, s)
		}
	}
	p.ids = out
	p.applyFilter()
}

func (p *sessionPicker) view(width int) string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Sessions"))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  filter: %s", p.filter)))
	b.WriteString("\n\n")
	for i, id := range p.filtered {
		line := id
		if i == p.cursor {
			line = pickerSelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(p.filtered) == 0 {
		b.WriteString(statusStyle.Render("no matching sessions"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("enter: open  ctrl+d: delete  esc: close"))
	return lipgloss.NewStyle().Width(width).Render(b.String())
}
