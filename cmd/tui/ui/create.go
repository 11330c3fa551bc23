package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JosephKS10/blog-backend/cmd/tui/client"
	"github.com/JosephKS10/blog-backend/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type postCreatedMsg struct {
	post *models.Post
}

type createErrorMsg struct {
	err error
}

const (
	fieldTitle = iota
	fieldCategory
	fieldExcerpt
	fieldReadTime
	fieldTags
	fieldImage
	fieldAuthorImage
	fieldBody
)

type CreateModel struct {
	form    form
	user    *models.User
	loading bool
	created *models.Post
	err     error
	client  *client.Client
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func NewCreateModel(c *client.Client) *CreateModel {
	return &CreateModel{
		client: c,
		form: newForm(
			formField{label: "Title"},
			formField{label: "Category"},
			formField{label: "Excerpt"},
			formField{label: "Read Time", hint: "(minutes)"},
			formField{label: "Tags", hint: "(comma separated)"},
			formField{label: "Featured Image", hint: "(URL)"},
			formField{label: "Author Image", hint: "(URL)"},
			formField{label: "Body"},
		),
	}
}

// SetUser prefills the author image with the profile picture.
func (m *CreateModel) SetUser(u *models.User) {
	m.user = u
	if u != nil && m.form.value(fieldAuthorImage) == "" {
		m.form.set(fieldAuthorImage, u.ProfilePicture)
	}
}

func checkURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL", name)
	}
	return nil
}

func (m *CreateModel) request() (client.CreatePostRequest, error) {
	req := client.CreatePostRequest{
		Title:            m.form.value(fieldTitle),
		Category:         m.form.value(fieldCategory),
		Excerpt:          m.form.value(fieldExcerpt),
		ReadTime:         m.form.value(fieldReadTime),
		FeaturedImageURL: m.form.value(fieldImage),
		AuthorImageURL:   m.form.value(fieldAuthorImage),
		Body:             m.form.value(fieldBody),
	}
	if m.user != nil {
		req.AuthorName = m.user.Name
	}

	for _, tag := range strings.Split(m.form.value(fieldTags), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			req.Tags = append(req.Tags, tag)
		}
	}

	if req.Title == "" || req.Body == "" || req.Category == "" || req.Excerpt == "" {
		return req, fmt.Errorf("title, category, excerpt and body are required")
	}
	if _, err := strconv.ParseFloat(req.ReadTime, 64); err != nil {
		return req, fmt.Errorf("read time must be a number")
	}
	if err := checkURL("featured image", req.FeaturedImageURL); err != nil {
		return req, err
	}
	if err := checkURL("author image", req.AuthorImageURL); err != nil {
		return req, err
	}
	return req, nil
}

func createPostCmd(c *client.Client, req client.CreatePostRequest) tea.Cmd {
	return func() tea.Msg {
		post, err := c.CreatePost(req)
		if err != nil {
			return createErrorMsg{err: err}
		}
		return postCreatedMsg{post: post}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postCreatedMsg:
		m.loading = false
		m.created = msg.post
		m.err = nil
		m.form.clear()
		m.SetUser(m.user)
		return m, nil

	case createErrorMsg:
		m.loading = false
		m.err = msg.err
		m.created = nil
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if msg.String() == "enter" {
			req, err := m.request()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.loading = true
			m.err = nil
			m.created = nil
			return m, createPostCmd(m.client, req)
		}
		m.form.handleKey(msg)
	}
	return m, nil
}

func (m *CreateModel) View() string {
	var b strings.Builder

	icon := lipgloss.NewStyle().Foreground(Accent).Render("✍")
	header := icon + " " + TitleStyle.Render("WRITE A POST")
	b.WriteString(lipgloss.NewStyle().Width(100).Align(lipgloss.Center).MarginTop(1).MarginBottom(1).Render(header))
	b.WriteString("\n\n")

	b.WriteString(m.form.view(60))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(centered(100, InfoStyle.Render("Publishing...")))
		b.WriteString("\n")
	}

	if m.created != nil {
		b.WriteString(centered(100, SuccessStyle.Render("✓ Published: "+m.created.Title)))
		b.WriteString("\n")
		b.WriteString(centered(100, lipgloss.NewStyle().Foreground(Primary).Underline(true).
			Render(m.client.BaseURL()+"/posts/"+m.created.ID)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(100, ErrorStyle.Render("Error: "+m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(100, InfoStyle.Render("tab/↑/↓ switch  •  enter publish  •  ctrl+l clear  •  esc back")))

	return BoxStyle.Width(106).Render(b.String())
}
