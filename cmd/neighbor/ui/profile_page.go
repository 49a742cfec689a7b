package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"neighbor/internal/api"
)

// LogoutMsg asks the app to end the session and return to the login page.
type LogoutMsg struct{}

type profileLoadedMsg struct {
	User api.User
}

// ProfilePageModel shows the signed-in profile and favorite stores.
type ProfilePageModel struct {
	deps   Deps
	styles Styles

	user    api.User
	loaded  bool
	cursor  int
	busy    bool
	status  string

	width  int
	height int
}

// NewProfilePageModel creates the profile page.
func NewProfilePageModel(deps Deps, styles Styles) ProfilePageModel {
	return ProfilePageModel{deps: deps, styles: styles}
}

// SetSize updates the page dimensions.
func (m *ProfilePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Refresh fetches the profile and favorites in parallel.
func (m *ProfilePageModel) Refresh() tea.Cmd {
	m.busy = true
	m.status = ""
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var (
			g, gctx = errgroup.WithContext(ctx)
			user    api.User
		)
		g.Go(func() error {
			var err error
			user, err = deps.API.Me(gctx)
			return err
		})
		g.Go(func() error {
			return deps.Favorites.Sync(gctx)
		})
		if err := g.Wait(); err != nil {
			return ErrMsg{Err: err}
		}
		return profileLoadedMsg{User: user}
	}
}

func (m ProfilePageModel) removeFavorite() tea.Cmd {
	stores, _ := m.deps.Favorites.Stores()
	if m.cursor < 0 || m.cursor >= len(stores) {
		return nil
	}
	storeID := stores[m.cursor].ID
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := deps.Favorites.Remove(ctx, storeID); err != nil {
			return ErrMsg{Err: err}
		}
		return profileLoadedMsg{}
	}
}

// Update handles messages.
func (m ProfilePageModel) Update(msg tea.Msg) (ProfilePageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		stores, _ := m.deps.Favorites.Stores()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(stores)-1 {
				m.cursor++
			}
		case "d":
			return m, m.removeFavorite()
		case "r":
			return m, m.Refresh()
		case "L":
			return m, func() tea.Msg { return LogoutMsg{} }
		}
		return m, nil

	case profileLoadedMsg:
		m.busy = false
		if msg.User.ID != 0 {
			m.user = msg.User
			m.loaded = true
		}
		stores, _ := m.deps.Favorites.Stores()
		if m.cursor >= len(stores) && m.cursor > 0 {
			m.cursor = len(stores) - 1
		}
		return m, nil

	case ErrMsg:
		m.busy = false
		m.status = m.styles.Error.Render(humanError(msg.Err))
		return m, nil
	}
	return m, nil
}

// View renders the page.
func (m ProfilePageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Profile"))
	sb.WriteString("\n")

	if m.busy && !m.loaded {
		sb.WriteString(m.styles.Muted.Render("Loading..."))
		sb.WriteString("\n")
	} else if m.loaded {
		sb.WriteString(fmt.Sprintf("%s\n%s\n",
			m.styles.Bold.Render(m.user.Name),
			m.styles.Muted.Render(m.user.Email)))
		if m.user.Role == api.RoleStoreOwner {
			sb.WriteString(m.styles.Badge.Render("store owner"))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Favorite stores"))
	sb.WriteString("\n")
	stores, synced := m.deps.Favorites.Stores()
	if !synced || len(stores) == 0 {
		sb.WriteString(m.styles.Muted.Render("No favorite stores yet. Press f on a price to add one."))
		sb.WriteString("\n")
	}
	for i, st := range stores {
		line := fmt.Sprintf("%s %s  %s",
			m.styles.Favorite.Render("★"),
			m.styles.Store.Render(st.Name),
			m.styles.Muted.Render(fmt.Sprintf("%s, %s", st.MarketArea, st.City)))
		if i == m.cursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("d unfavorite · r refresh · shift+l log out"))
	return m.styles.Content.Render(sb.String())
}
