package ui

import (
	"fmt"
	"strings"

	"github.com/JosephKS10/blog-backend/cmd/tui/client"
	"github.com/JosephKS10/blog-backend/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loggedInMsg struct {
	user *models.User
}

type authErrorMsg struct {
	err error
}

const (
	authName = iota
	authEmail
	authPassword
	authBio
)

// AuthModel drives both the login and the signup screen. Signup registers
// and then logs in with the same credentials.
type AuthModel struct {
	signup  bool
	form    form
	loading bool
	err     error
	client  *client.Client
}

func NewLoginModel(c *client.Client) *AuthModel {
	return &AuthModel{
		client: c,
		form: newForm(
			formField{label: "Email"},
			formField{label: "Password", masked: true},
		),
	}
}

func NewSignupModel(c *client.Client) *AuthModel {
	return &AuthModel{
		signup: true,
		client: c,
		form: newForm(
			formField{label: "Name"},
			formField{label: "Email"},
			formField{label: "Password", masked: true},
			formField{label: "Bio", hint: "(optional)"},
		),
	}
}

func (m *AuthModel) Init() tea.Cmd {
	return nil
}

func loginCmd(c *client.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := c.Login(email, password)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return loggedInMsg{user: user}
	}
}

func signupCmd(c *client.Client, req client.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		if err := c.Register(req); err != nil {
			return authErrorMsg{err: err}
		}
		user, err := c.Login(req.Email, req.Password)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return loggedInMsg{user: user}
	}
}

func (m *AuthModel) submit() tea.Cmd {
	if !m.signup {
		email, password := m.form.value(0), m.form.fields[1].value
		if email == "" || password == "" {
			m.err = fmt.Errorf("email and password are required")
			return nil
		}
		m.loading = true
		m.err = nil
		return loginCmd(m.client, email, password)
	}

	req := client.RegisterRequest{
		Name:     m.form.value(authName),
		Email:    m.form.value(authEmail),
		Password: m.form.fields[authPassword].value,
		Bio:      m.form.value(authBio),
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		m.err = fmt.Errorf("name, email and password are required")
		return nil
	}
	m.loading = true
	m.err = nil
	return signupCmd(m.client, req)
}

func (m *AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedInMsg:
		m.loading = false
		m.err = nil
		m.form.clear()
		return m, nil

	case authErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if msg.String() == "enter" {
			return m, m.submit()
		}
		m.form.handleKey(msg)
	}
	return m, nil
}

func (m *AuthModel) View() string {
	var b strings.Builder

	title, subtitle, color := "🔐 LOGIN", "Welcome back! Please sign in to continue.", Primary
	help := "tab switch  •  enter login  •  ctrl+l clear  •  ctrl+s signup  •  esc quit"
	if m.signup {
		title, subtitle, color = "✨ SIGN UP", "Create an account to start writing.", Success
		help = "tab switch  •  enter sign up  •  ctrl+l clear  •  ctrl+s login  •  esc quit"
	}

	b.WriteString(lipgloss.NewStyle().Width(68).Align(lipgloss.Center).MarginTop(1).
		Render(lipgloss.NewStyle().Foreground(color).Bold(true).Render(title)))
	b.WriteString("\n")
	b.WriteString(centered(68, lipgloss.NewStyle().Foreground(Muted).Render(subtitle)))
	b.WriteString("\n\n")

	b.WriteString(m.form.view(44))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(centered(68, InfoStyle.Render("🔄 Talking to the server...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(centered(68, ErrorStyle.Render("❌ "+m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(68, InfoStyle.Render(help)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 3).
		Width(76).
		Render(b.String())
}
