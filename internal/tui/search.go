package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndaedxo/Social-Media-Platform/internal/feed"
	"github.com/ndaedxo/Social-Media-Platform/internal/model"
)

type openSearchMsg struct{}

type closeSearchMsg struct{}

// searchModel filters the user directory by handle and toggles follow edges
// from the result list.
type searchModel struct {
	app      *App
	user     model.User
	input    textinput.Model
	selected int
	status   string
}

func newSearchModel(app *App, user model.User) searchModel {
	in := textinput.New()
	in.Placeholder = "search users"
	in.Focus()
	return searchModel{app: app, user: user, input: in}
}

func (m searchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m searchModel) results() []model.User {
	return feed.SearchUsers(m.app.Identity.Users(), m.input.Value())
}

func (m searchModel) Update(msg tea.Msg) (searchModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return closeSearchMsg{} }
		case tea.KeyDown:
			if m.selected < len(m.results())-1 {
				m.selected++
			}
			return m, nil
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case tea.KeyEnter:
			results := m.results()
			if m.selected >= len(results) {
				return m, nil
			}
			target := results[m.selected]
			if err := m.app.Identity.ToggleFollow(context.Background(), m.user.ID, target.ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.status = ""
			if u, ok := m.app.Identity.CurrentUser(); ok {
				m.user = u
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.selected >= len(m.results()) {
		m.selected = 0
	}
	return m, cmd
}

func (m searchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("find people") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	for i, u := range m.results() {
		marker := "  "
		style := authorStyle
		if i == m.selected {
			marker = "> "
			style = selStyle
		}
		line := style.Render(marker + "@" + u.Username)
		p := feed.BuildProfile(u, m.app.Posts.Posts())
		line += metaStyle.Render(fmt.Sprintf("  %d followers · %d following", p.Followers, p.Following))
		switch {
		case u.ID == m.user.ID:
			line += metaStyle.Render("  (you)")
		case m.user.Follows(u.ID):
			line += selStyle.Render("  ✓ following")
		}
		b.WriteString(line + "\n")
		if u.Bio != "" {
			b.WriteString(commentStyle.Render(u.Bio) + "\n")
		}
	}

	b.WriteString("\n" + faintStyle.Render("enter follow/unfollow · up/down move · esc back"))
	if m.status != "" {
		b.WriteString("\n" + errStyle.Render(m.status))
	}
	return b.String()
}
