package ui

import (
	"fmt"
	"strings"

	"github.com/JosephKS10/blog-backend/cmd/tui/client"
	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/JosephKS10/blog-backend/internal/qrcode"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type postDetailMsg struct {
	post     *models.Post
	comments []models.Comment
}

type postStatsMsg struct {
	stats *models.PostStats
	err   error
}

type commentAddedMsg struct {
	comment *models.Comment
}

type postDeletedMsg struct{}

type detailErrorMsg struct {
	err error
}

type DetailModel struct {
	id       string
	post     *models.Post
	comments []models.Comment
	stats    *models.PostStats
	statsErr error

	commenting bool
	comment    form
	showShare  bool
	share      string

	user    *models.User
	loading bool
	err     error
	client  *client.Client
}

func NewDetailModel(c *client.Client) *DetailModel {
	return &DetailModel{
		client:  c,
		comment: newForm(formField{label: "Comment"}),
	}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) SetUser(u *models.User) {
	m.user = u
}

// typing reports whether keystrokes belong to the comment box.
func (m *DetailModel) typing() bool {
	return m.commenting
}

// Open resets the view for another post and starts loading it.
func (m *DetailModel) Open(id string) tea.Cmd {
	m.id = id
	m.post = nil
	m.comments = nil
	m.stats = nil
	m.statsErr = nil
	m.commenting = false
	m.showShare = false
	m.share = ""
	m.err = nil
	m.loading = true
	return tea.Batch(loadPostCmd(m.client, id), loadStatsCmd(m.client, id))
}

func loadPostCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		post, err := c.GetPost(id)
		if err != nil {
			return detailErrorMsg{err: err}
		}
		comments, err := c.ListComments(id)
		if err != nil {
			return detailErrorMsg{err: err}
		}
		return postDetailMsg{post: post, comments: comments}
	}
}

func loadStatsCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		stats, err := c.Stats(id)
		return postStatsMsg{stats: stats, err: err}
	}
}

func addCommentCmd(c *client.Client, postID, userName, text string) tea.Cmd {
	return func() tea.Msg {
		comment, err := c.AddComment(postID, userName, text)
		if err != nil {
			return detailErrorMsg{err: err}
		}
		return commentAddedMsg{comment: comment}
	}
}

func deletePostCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeletePost(id); err != nil {
			return detailErrorMsg{err: err}
		}
		return postDeletedMsg{}
	}
}

func (m *DetailModel) ownsPost() bool {
	return m.post != nil && m.user != nil && m.post.AuthorID == m.user.ID
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postDetailMsg:
		m.loading = false
		m.post = msg.post
		m.comments = msg.comments
		return m, nil

	case postStatsMsg:
		m.stats = msg.stats
		m.statsErr = msg.err
		return m, nil

	case commentAddedMsg:
		m.loading = false
		m.comments = append(m.comments, *msg.comment)
		m.commenting = false
		m.comment.clear()
		return m, nil

	case detailErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.commenting {
			return m, m.updateComment(msg)
		}

		switch msg.String() {
		case "c":
			if m.post != nil {
				m.commenting = true
				m.err = nil
			}
		case "s":
			m.toggleShare()
		case "d":
			if m.ownsPost() {
				m.loading = true
				return m, deletePostCmd(m.client, m.id)
			}
		case "r":
			return m, m.Open(m.id)
		}
	}
	return m, nil
}

func (m *DetailModel) updateComment(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.commenting = false
		m.comment.clear()
	case "enter":
		text := m.comment.value(0)
		if text == "" {
			m.err = fmt.Errorf("comment cannot be empty")
			return nil
		}
		name := "anonymous"
		if m.user != nil {
			name = m.user.Name
		}
		m.loading = true
		m.err = nil
		return addCommentCmd(m.client, m.id, name, text)
	default:
		m.comment.handleKey(msg)
	}
	return nil
}

func (m *DetailModel) toggleShare() {
	m.showShare = !m.showShare
	if !m.showShare || m.share != "" {
		return
	}
	code, err := qrcode.ASCII(m.client.BaseURL() + "/posts/" + m.id)
	if err != nil {
		m.err = err
		m.showShare = false
		return
	}
	m.share = code
}

func (m *DetailModel) View() string {
	var b strings.Builder

	if m.post == nil {
		switch {
		case m.err != nil:
			b.WriteString(ErrorStyle.Render("❌ " + m.err.Error()))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(Accent).Render("⏳ Loading post..."))
		}
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("q back"))
		return BoxStyle.Width(86).Render(b.String())
	}

	p := m.post
	b.WriteString(TitleStyle.Render(p.Title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("by %s  •  %s  •  %.0f min read  •  %s",
		p.AuthorName, p.Category, p.ReadTime, p.PostDate.Format("Jan 2, 2006"))))
	b.WriteString("\n")
	if len(p.Tags) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(Warning).Render("#" + strings.Join(p.Tags, " #")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(Text).Width(80).Render(p.Body))
	b.WriteString("\n\n")

	b.WriteString(m.statsView())
	b.WriteString("\n")

	if m.showShare {
		b.WriteString(LabelStyle.Render("Share:"))
		b.WriteString(ValueStyle.Render(m.client.BaseURL() + "/posts/" + m.id))
		b.WriteString("\n")
		b.WriteString(m.share)
		b.WriteString("\n")
	}

	b.WriteString(StatsStyle.Render(fmt.Sprintf("💬 Comments (%d)", len(m.comments))))
	b.WriteString("\n")
	for _, c := range m.comments {
		b.WriteString(lipgloss.NewStyle().Foreground(Secondary).Bold(true).Render(c.UserName))
		b.WriteString(lipgloss.NewStyle().Foreground(Muted).Render("  " + ago(c.CreatedAt)))
		b.WriteString("\n")
		b.WriteString(ItemStyle.Render(c.Text))
		b.WriteString("\n")
	}

	if m.commenting {
		b.WriteString("\n")
		b.WriteString(m.comment.view(56))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("❌ " + m.err.Error()))
	}

	b.WriteString("\n\n")
	help := "c comment  •  s share  •  r refresh  •  q back"
	if m.ownsPost() {
		help = "c comment  •  s share  •  d delete  •  r refresh  •  q back"
	}
	if m.commenting {
		help = "enter post comment  •  esc cancel"
	}
	b.WriteString(InfoStyle.Render(help))

	return BoxStyle.Width(86).Render(b.String())
}

func (m *DetailModel) statsView() string {
	if m.statsErr != nil || m.stats == nil {
		return InfoStyle.Render("📊 View stats unavailable")
	}
	s := m.stats
	line := fmt.Sprintf("📊 %d views  •  %d unique visitors", s.TotalViews, s.UniqueVisitors)
	if s.LastViewedAt != nil {
		line += "  •  last viewed " + ago(*s.LastViewedAt)
	}
	return StatsStyle.Render(line)
}
