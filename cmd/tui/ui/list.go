package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/JosephKS10/blog-backend/cmd/tui/client"
	"github.com/JosephKS10/blog-backend/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type postsLoadedMsg struct {
	mine  bool
	posts []models.Post
}

type postsErrorMsg struct {
	mine bool
	err  error
}

type openPostMsg struct {
	id string
}

// ListModel shows either every post or only the signed-in author's.
type ListModel struct {
	mine    bool
	posts   []models.Post
	cursor  int
	loading bool
	loaded  bool
	err     error
	client  *client.Client
}

func NewListModel(c *client.Client, mine bool) *ListModel {
	return &ListModel{client: c, mine: mine}
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

// Load refetches the list. The cursor is kept when it still fits.
func (m *ListModel) Load() tea.Cmd {
	m.loading = true
	m.err = nil
	return listPostsCmd(m.client, m.mine)
}

func listPostsCmd(c *client.Client, mine bool) tea.Cmd {
	return func() tea.Msg {
		var posts []models.Post
		var err error
		if mine {
			posts, err = c.ListMyPosts()
		} else {
			posts, err = c.ListPosts()
		}
		if err != nil {
			return postsErrorMsg{mine: mine, err: err}
		}
		return postsLoadedMsg{mine: mine, posts: posts}
	}
}

func ago(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postsLoadedMsg:
		if msg.mine != m.mine {
			return m, nil
		}
		m.loading = false
		m.loaded = true
		m.posts = msg.posts
		m.err = nil
		if m.cursor >= len(m.posts) {
			m.cursor = 0
		}
		return m, nil

	case postsErrorMsg:
		if msg.mine != m.mine {
			return m, nil
		}
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.posts)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.posts) > 0 {
				id := m.posts[m.cursor].ID
				return m, func() tea.Msg { return openPostMsg{id: id} }
			}
		case "r":
			if !m.loading {
				return m, m.Load()
			}
		}
	}

	if !m.loaded && !m.loading {
		return m, m.Load()
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	title := "ALL POSTS"
	if m.mine {
		title = "MY POSTS"
	}
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(1).MarginBottom(1).
		Render(TitleStyle.Render(title)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(centered(80, lipgloss.NewStyle().Foreground(Accent).Render("⏳ Loading posts...")))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(centered(80, ErrorStyle.Render("❌ "+m.err.Error())))
		b.WriteString("\n")
	case len(m.posts) == 0:
		b.WriteString(centered(80, lipgloss.NewStyle().Foreground(Muted).Render("📝 No posts yet. Write one first!")))
		b.WriteString("\n")
	default:
		for i, post := range m.posts {
			border := Muted
			if i == m.cursor {
				border = Accent
			}
			cardStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(border).
				Padding(0, 2).
				Width(70)

			titleLine := lipgloss.NewStyle().Foreground(Success).Bold(true).Render(truncate(post.Title, 60))
			excerpt := lipgloss.NewStyle().Foreground(Text).Render(truncate(post.Excerpt, 64))
			meta := lipgloss.NewStyle().Foreground(Muted).Render(fmt.Sprintf("%s  •  %s  •  %.0f min read  •  %s",
				post.AuthorName, post.Category, post.ReadTime, ago(post.PostDate)))

			card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleLine, excerpt, meta))
			b.WriteString(centered(80, card))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centered(80, InfoStyle.Render("↑/↓ navigate  •  enter open  •  r refresh  •  q back")))

	return BoxStyle.Width(86).Render(b.String())
}
