package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	menuBrowse = iota
	menuMine
	menuWrite
	menuLogout
)

type menuItem struct {
	title string
	desc  string
}

var menuItems = []menuItem{
	{"Browse Posts", "Read what everyone has published"},
	{"My Posts", "Posts you have written"},
	{"Write a Post", "Publish something new"},
	{"Log Out", "Forget the current session"},
}

// MenuModel records the picked entry in selected until the parent
// consumes it and resets it to -1.
type MenuModel struct {
	cursor   int
	selected int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{selected: -1}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = (m.cursor + len(menuItems) - 1) % len(menuItems)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(menuItems)
	case "1", "2", "3", "4":
		m.selected = int(key.Runes[0] - '1')
	case "enter":
		m.selected = m.cursor
	}
	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("BLOG") + " " + SubtitleStyle.Render("posts & comments")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(header))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(menuItems))
	for i, item := range menuItems {
		title := ItemStyle.Render("  " + item.title)
		if i == m.cursor {
			title = SelectedItemStyle.Render("▸ " + item.title)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
			lipgloss.NewStyle().Width(22).Render(title),
			InfoStyle.Render(item.desc),
		))
	}

	b.WriteString(centered(80, BoxStyle.Width(64).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))))
	b.WriteString("\n\n")
	b.WriteString(centered(80, InfoStyle.Render("↑/↓ or 1-4 choose  •  enter select  •  q quit")))

	return lipgloss.NewStyle().
		Width(80).
		Height(20).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
