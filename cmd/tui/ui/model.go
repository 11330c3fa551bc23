package ui

import (
	"github.com/JosephKS10/blog-backend/cmd/tui/client"
	"github.com/JosephKS10/blog-backend/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	LoginView View = iota
	SignupView
	MenuView
	BrowseView
	MineView
	DetailView
	CreateView
)

type Model struct {
	currentView View
	returnTo    View
	login       *AuthModel
	signup      *AuthModel
	menu        *MenuModel
	browse      *ListModel
	mine        *ListModel
	detail      *DetailModel
	create      *CreateModel
	client      *client.Client
	user        *models.User
	width       int
	height      int
}

func NewModel(c *client.Client) Model {
	return Model{
		currentView: LoginView,
		login:       NewLoginModel(c),
		signup:      NewSignupModel(c),
		menu:        NewMenuModel(),
		browse:      NewListModel(c, false),
		mine:        NewListModel(c, true),
		detail:      NewDetailModel(c),
		create:      NewCreateModel(c),
		client:      c,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// typing reports whether the active view takes free text, in which case
// q is a character and not a navigation key.
func (m Model) typing() bool {
	switch m.currentView {
	case LoginView, SignupView, CreateView:
		return true
	case DetailView:
		return m.detail.typing()
	}
	return false
}

func (m Model) back() View {
	if m.currentView == DetailView {
		return m.returnTo
	}
	return MenuView
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loggedInMsg:
		m.user = msg.user
		m.detail.SetUser(msg.user)
		m.create.SetUser(msg.user)
		m.login.Update(msg)
		m.signup.Update(msg)
		m.currentView = MenuView
		return m, nil

	case postsLoadedMsg, postsErrorMsg:
		_, cmd1 := m.browse.Update(msg)
		_, cmd2 := m.mine.Update(msg)
		return m, tea.Batch(cmd1, cmd2)

	case openPostMsg:
		m.returnTo = m.currentView
		m.currentView = DetailView
		return m, m.detail.Open(msg.id)

	case postDeletedMsg:
		m.currentView = m.returnTo
		return m, tea.Batch(m.browse.Load(), m.mine.Load())

	case postCreatedMsg:
		m.create.Update(msg)
		return m, m.mine.Load()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+s":
			if m.currentView == LoginView {
				m.currentView = SignupView
				return m, nil
			} else if m.currentView == SignupView {
				m.currentView = LoginView
				return m, nil
			}

		case "esc":
			if m.currentView == LoginView || m.currentView == SignupView {
				return m, tea.Quit
			}
			if !m.detail.typing() || m.currentView != DetailView {
				m.currentView = m.back()
				return m, nil
			}

		case "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}
			if !m.typing() {
				m.currentView = m.back()
				return m, nil
			}
		}
	}

	switch m.currentView {
	case LoginView:
		_, cmd := m.login.Update(msg)
		return m, cmd

	case SignupView:
		_, cmd := m.signup.Update(msg)
		return m, cmd

	case MenuView:
		_, cmd := m.menu.Update(msg)
		if m.menu.selected == -1 {
			return m, cmd
		}
		selected := m.menu.selected
		m.menu.selected = -1

		switch selected {
		case menuBrowse:
			m.currentView = BrowseView
			return m, m.browse.Load()
		case menuMine:
			m.currentView = MineView
			return m, m.mine.Load()
		case menuWrite:
			m.currentView = CreateView
		case menuLogout:
			m.client.SetToken("")
			m.user = nil
			m.detail.SetUser(nil)
			m.currentView = LoginView
		}
		return m, cmd

	case BrowseView:
		_, cmd := m.browse.Update(msg)
		return m, cmd

	case MineView:
		_, cmd := m.mine.Update(msg)
		return m, cmd

	case DetailView:
		_, cmd := m.detail.Update(msg)
		return m, cmd

	case CreateView:
		_, cmd := m.create.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.user != nil && m.currentView != LoginView && m.currentView != SignupView {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("👤 " + m.user.Name)

		emailInfo := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + m.user.Email + ")  •  " + m.client.BaseURL())

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo + emailInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case MenuView:
		mainContent = m.menu.View()
	case BrowseView:
		mainContent = m.browse.View()
	case MineView:
		mainContent = m.mine.View()
	case DetailView:
		mainContent = m.detail.View()
	case CreateView:
		mainContent = m.create.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
