package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField struct {
	label  string
	value  string
	hint   string
	masked bool
}

// form is the text-entry state shared by every input screen.
type form struct {
	fields []formField
	focus  int
}

func newForm(fields ...formField) form {
	return form{fields: fields}
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (f *form) set(i int, v string) {
	f.fields[i].value = v
}

func (f *form) clear() {
	for i := range f.fields {
		f.fields[i].value = ""
	}
	f.focus = 0
}

// handleKey applies editing keys and reports whether the key was consumed.
func (f *form) handleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
	case "shift+tab", "up":
		f.focus = (f.focus + len(f.fields) - 1) % len(f.fields)
	case "backspace":
		v := []rune(f.fields[f.focus].value)
		if len(v) > 0 {
			f.fields[f.focus].value = string(v[:len(v)-1])
		}
	case "ctrl+l":
		f.clear()
	case " ":
		f.fields[f.focus].value += " "
	default:
		if msg.Type != tea.KeyRunes {
			return false
		}
		f.fields[f.focus].value += string(msg.Runes)
	}
	return true
}

func (f *form) view(width int) string {
	var b strings.Builder
	for i, field := range f.fields {
		style := InputStyle
		if i == f.focus {
			style = FocusedInputStyle
		}

		shown := field.value
		if field.masked {
			shown = strings.Repeat("•", len([]rune(field.value)))
		}

		row := lipgloss.JoinHorizontal(lipgloss.Left,
			LabelStyle.Render(field.label+":"),
			style.Width(width).Render(shown),
		)
		if field.hint != "" {
			row = lipgloss.JoinHorizontal(lipgloss.Left, row, InfoStyle.Render(" "+field.hint))
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
