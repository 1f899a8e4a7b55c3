// Package tui is the terminal front-end. It is a store consumer only: every
// mutation goes through a store operation and every frame renders from the
// stores' current snapshots.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndaedxo/Social-Media-Platform/internal/store"
)

type loggedOutMsg struct{}

// App wires the stores into the bubbletea program.
type App struct {
	Identity *store.IdentityStore
	Posts    *store.PostsStore
	PageSize int
}

type screen int

const (
	screenLogin screen = iota
	screenFeed
	screenSearch
)

type rootModel struct {
	app    *App
	screen screen
	login  loginModel
	feed   feedModel
	search searchModel
}

// New builds the root model. A persisted session skips the login screen.
func New(app *App) tea.Model {
	m := rootModel{app: app, login: newLoginModel(app)}
	if user, ok := app.Identity.CurrentUser(); ok {
		m.feed = newFeedModel(app, user)
		m.screen = screenFeed
	}
	return m
}

func (m rootModel) Init() tea.Cmd {
	if m.screen == screenFeed {
		return m.feed.Init()
	}
	return m.login.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case loggedInMsg:
		m.feed = newFeedModel(m.app, msg.user)
		m.screen = screenFeed
		return m, nil
	case loggedOutMsg:
		m.login = newLoginModel(m.app)
		m.screen = screenLogin
		return m, m.login.Init()
	case openSearchMsg:
		m.search = newSearchModel(m.app, m.feed.user)
		m.screen = screenSearch
		return m, m.search.Init()
	case closeSearchMsg:
		// follow edits in search may have touched the session user
		if user, ok := m.app.Identity.CurrentUser(); ok {
			m.feed.user = user
		}
		m.screen = screenFeed
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenFeed:
		m.feed, cmd = m.feed.Update(msg)
	case screenSearch:
		m.search, cmd = m.search.Update(msg)
	default:
		m.login, cmd = m.login.Update(msg)
	}
	return m, cmd
}

func (m rootModel) View() string {
	switch m.screen {
	case screenFeed:
		return m.feed.View()
	case screenSearch:
		return m.search.View()
	default:
		return m.login.View()
	}
}
