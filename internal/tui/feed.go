package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndaedxo/Social-Media-Platform/internal/feed"
	"github.com/ndaedxo/Social-Media-Platform/internal/model"
	"github.com/ndaedxo/Social-Media-Platform/internal/store"
)

var (
	authorStyle  = lipgloss.NewStyle().Bold(true)
	selStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	metaStyle    = lipgloss.NewStyle().Faint(true)
	commentStyle = lipgloss.NewStyle().PaddingLeft(2).Faint(true)
)

// feedModel renders the timeline and the composer. Browsing and composing are
// two input modes; esc switches between them.
type feedModel struct {
	app      *App
	user     model.User
	viewport viewport.Model
	composer textarea.Model

	visible       int
	selected      int
	followingOnly bool
	composing     bool
	commenting    bool
	editingBio    bool
	status        string
}

func newFeedModel(app *App, user model.User) feedModel {
	vp := viewport.New(80, 16)

	ta := textarea.New()
	ta.Placeholder = "What's happening?"
	ta.Prompt = "┃ "
	// display rule only; the store takes any non-blank length
	ta.CharLimit = 280
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetWidth(80)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	return feedModel{
		app:           app,
		user:          user,
		viewport:      vp,
		composer:      ta,
		visible:       app.PageSize,
		followingOnly: true,
	}
}

func (m feedModel) Init() tea.Cmd { return nil }

// posts returns the timeline slice currently on screen.
func (m feedModel) posts() []model.Post {
	all := feed.SortByNewest(feed.Visible(m.app.Posts.Posts(), m.user, m.followingOnly))
	return feed.Page(all, m.visible)
}

func (m feedModel) total() int {
	return len(feed.Visible(m.app.Posts.Posts(), m.user, m.followingOnly))
}

func (m feedModel) Update(msg tea.Msg) (feedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 10
		m.composer.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if m.composing || m.commenting || m.editingBio {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m feedModel) updateBrowse(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.composing = true
		m.composer.Reset()
		m.composer.Placeholder = "What's happening?"
		return m, m.composer.Focus()
	case "c":
		if len(m.posts()) == 0 {
			return m, nil
		}
		m.commenting = true
		m.composer.Reset()
		m.composer.Placeholder = "Write a comment..."
		return m, m.composer.Focus()
	case "l":
		posts := m.posts()
		if m.selected < len(posts) {
			if err := m.app.Posts.ToggleLike(context.Background(), posts[m.selected].ID, m.user.ID); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}
		}
		return m, nil
	case "f":
		m.followingOnly = !m.followingOnly
		m.selected = 0
		return m, nil
	case "m":
		if m.visible < m.total() {
			m.visible += m.app.PageSize
		}
		return m, nil
	case "j", "down":
		if m.selected < len(m.posts())-1 {
			m.selected++
		}
		return m, nil
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "b":
		m.editingBio = true
		m.composer.Reset()
		m.composer.SetValue(m.user.Bio)
		m.composer.Placeholder = "Write something about yourself..."
		return m, m.composer.Focus()
	case "s":
		return m, func() tea.Msg { return openSearchMsg{} }
	case "o":
		if err := m.app.Identity.Logout(context.Background()); err != nil {
			m.status = err.Error()
		}
		return m, func() tea.Msg { return loggedOutMsg{} }
	}
	return m, nil
}

func (m feedModel) updateInput(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.composing = false
		m.commenting = false
		m.editingBio = false
		m.composer.Blur()
		return m, nil
	case tea.KeyCtrlS:
		ctx := context.Background()
		switch {
		case m.composing:
			_, err := m.app.Posts.CreatePost(ctx, store.CreatePostParams{
				UserID:  m.user.ID,
				Content: m.composer.Value(),
			})
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
		case m.editingBio:
			edited := m.user.Clone()
			edited.Bio = m.composer.Value()
			updated, err := m.app.Identity.UpdateUser(ctx, edited)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.user = updated
		default:
			posts := m.posts()
			if m.selected >= len(posts) {
				return m, nil
			}
			if _, err := m.app.Posts.AddComment(ctx, posts[m.selected].ID, m.user.ID, m.composer.Value()); err != nil {
				m.status = err.Error()
				return m, nil
			}
		}
		m.status = ""
		m.composing = false
		m.commenting = false
		m.editingBio = false
		m.composer.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m feedModel) View() string {
	var b strings.Builder

	scope := "following"
	if !m.followingOnly {
		scope = "everyone"
	}
	b.WriteString(titleStyle.Render("sparkfeed") + metaStyle.Render(fmt.Sprintf("  @%s · %s", m.user.Username, scope)) + "\n\n")

	posts := m.posts()
	if len(posts) == 0 {
		b.WriteString(metaStyle.Render("Nothing here yet. Post something, or press f to widen the feed.") + "\n")
	}
	for i, p := range posts {
		b.WriteString(m.renderPost(p, i == m.selected))
	}
	if m.visible < m.total() {
		b.WriteString(metaStyle.Render(fmt.Sprintf("… %d more, press m to load", m.total()-m.visible)) + "\n")
	}

	m.viewport.SetContent(b.String())

	out := m.viewport.View() + "\n"
	if m.composing || m.commenting || m.editingBio {
		out += m.composer.View() + "\n" + faintStyle.Render("ctrl+s to send · esc to cancel")
	} else {
		out += faintStyle.Render("n new post · c comment · l like · f filter · m more · j/k move · s search · b bio · o log out · ctrl+c quit")
	}
	if m.status != "" {
		out += "\n" + errStyle.Render(m.status)
	} else if e := m.app.Posts.Err(); e != "" {
		out += "\n" + errStyle.Render(e)
	} else if e := m.app.Identity.Err(); e != "" {
		out += "\n" + errStyle.Render(e)
	}
	return out
}

func (m feedModel) renderPost(p model.Post, selected bool) string {
	author := "author unknown"
	if u, ok := m.app.Identity.UserByID(p.UserID); ok {
		author = "@" + u.Username
	}
	marker := "  "
	style := authorStyle
	if selected {
		marker = "> "
		style = selStyle
	}

	liked := ""
	if p.LikedBy(m.user.ID) {
		liked = " ♥"
	}
	head := style.Render(marker+author) + metaStyle.Render(fmt.Sprintf("  %s · %d likes%s", relTime(p.Timestamp), len(p.Likes), liked))

	var b strings.Builder
	b.WriteString(head + "\n")
	b.WriteString("  " + p.Content + "\n")
	if p.ImageURL != "" {
		b.WriteString(metaStyle.Render("  [image] "+p.ImageURL) + "\n")
	}
	for _, c := range p.Comments {
		name := c.UserID
		if u, ok := m.app.Identity.UserByID(c.UserID); ok {
			name = u.Username
		}
		b.WriteString(commentStyle.Render(fmt.Sprintf("%s: %s", name, c.Content)) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func relTime(ms int64) string {
	d := time.Since(time.UnixMilli(ms))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
