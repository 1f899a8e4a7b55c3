package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndaedxo/Social-Media-Platform/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type loggedInMsg struct {
	user model.User
}

type loginModel struct {
	app   *App
	input textinput.Model
	err   string
}

func newLoginModel(app *App) loginModel {
	in := textinput.New()
	in.Placeholder = "username"
	in.CharLimit = 40
	in.Focus()
	return loginModel{app: app, input: in}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			user, err := m.app.Identity.Login(context.Background(), m.input.Value())
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.err = ""
			return m, func() tea.Msg { return loggedInMsg{user: user} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	s := titleStyle.Render("sparkfeed") + "\n\n"
	s += "Log in with a handle; new handles create a profile.\n\n"
	s += m.input.View() + "\n\n"
	if m.err != "" {
		s += errStyle.Render(m.err) + "\n"
	}
	s += faintStyle.Render("enter to log in · ctrl+c to quit")
	return s
}
