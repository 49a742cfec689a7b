package main

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"neighbor/cmd/neighbor/ui"
	"neighbor/internal/api"
)

// requestTimeout bounds backend calls issued from the app shell.
const requestTimeout = 15 * time.Second

type page int

const (
	pageLogin page = iota
	pageSearch
	pageProduct
	pageList
	pageLocation
	pageProfile
)

// configReloadedMsg is sent by the config watcher when the file on disk
// changes while the app is running.
type configReloadedMsg struct {
	Theme string
}

// appModel is the shopper app's root model. It owns page routing and the
// global session transitions; everything else lives in the page models.
type appModel struct {
	deps   ui.Deps
	styles ui.Styles

	page page
	prev page

	login    ui.LoginPageModel
	search   ui.SearchPageModel
	product  ui.ProductPageModel
	list     ui.ListPageModel
	location ui.LocationPageModel
	profile  ui.ProfilePageModel

	user   api.User
	width  int
	height int
}

func newAppModel(deps ui.Deps) appModel {
	styles := ui.NewStyles(ui.ThemeByName(deps.Config.Theme))
	m := appModel{
		deps:     deps,
		styles:   styles,
		login:    ui.NewLoginPageModel(deps, styles),
		search:   ui.NewSearchPageModel(deps, styles),
		product:  ui.NewProductPageModel(deps, styles),
		list:     ui.NewListPageModel(deps, styles),
		location: ui.NewLocationPageModel(deps, styles),
		profile:  ui.NewProfilePageModel(deps, styles),
	}
	if deps.Session.Authenticated() {
		m.page = pageSearch
	} else {
		m.page = pageLogin
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.page != pageSearch {
		return nil
	}
	// A token survived from a previous run; warm the session caches.
	return tea.Batch(m.syncSession(), m.resolveStartupLocation())
}

// resolveStartupLocation establishes the initial search scope. GPS is tried
// once at startup; denial falls back to the default city inside the resolver,
// so the app always comes up with a usable location.
func (m appModel) resolveStartupLocation() tea.Cmd {
	deps := m.deps
	radius := m.location.RadiusKm()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		loc, err := deps.Resolver.RequestGPS(ctx)
		return ui.LocationChangedMsg{Location: loc, RadiusKm: radius, Cause: err}
	}
}

// syncSession warms the shopping list and favorites caches after sign-in.
func (m appModel) syncSession() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := deps.Favorites.Sync(ctx); err != nil {
			deps.Log.Warn("favorites sync failed", zap.Error(err))
		}
		if err := deps.List.Refresh(ctx); err != nil {
			deps.Log.Warn("list refresh failed", zap.Error(err))
		}
		return nil
	}
}

// observeLocation feeds the current location to the radius advisor.
func (m appModel) observeLocation() tea.Cmd {
	deps := m.deps
	loc := deps.Resolver.Active()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := deps.Advisor.Observe(ctx, loc); err != nil {
			deps.Log.Warn("radius advisor fetch failed", zap.Error(err))
		}
		return nil
	}
}

func (m *appModel) setSizes() {
	w, h := m.width, m.height
	m.login.SetSize(w, h)
	m.search.SetSize(w, h)
	m.product.SetSize(w, h)
	m.list.SetSize(w, h)
	m.location.SetSize(w, h)
	m.profile.SetSize(w, h)
}

func (m *appModel) restyle(styles ui.Styles) {
	m.styles = styles
	m.login = ui.NewLoginPageModel(m.deps, styles)
	m.search = ui.NewSearchPageModel(m.deps, styles)
	m.product = ui.NewProductPageModel(m.deps, styles)
	m.list = ui.NewListPageModel(m.deps, styles)
	m.location = ui.NewLocationPageModel(m.deps, styles)
	m.profile = ui.NewProfilePageModel(m.deps, styles)
	m.setSizes()
}

func (m *appModel) logout() {
	if err := m.deps.Session.Clear(); err != nil {
		m.deps.Log.Warn("token clear failed", zap.Error(err))
	}
	m.deps.List.Clear()
	m.deps.Favorites.Clear()
	m.user = api.User{}
	m.login = ui.NewLoginPageModel(m.deps, m.styles)
	m.login.SetSize(m.width, m.height)
	m.page = pageLogin
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.setSizes()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.page == pageLogin {
				return m, tea.Quit
			}
		case "f1":
			if m.page != pageLogin {
				m.page = pageSearch
				return m, nil
			}
		case "f2":
			if m.page != pageLogin {
				m.page = pageList
				return m, m.list.Refresh()
			}
		case "f3":
			if m.page != pageLogin {
				m.page = pageLocation
				return m, nil
			}
		case "f4":
			if m.page != pageLogin {
				m.page = pageProfile
				return m, m.profile.Refresh()
			}
		}
		// Keystrokes go only to the visible page.
		return m.updateActive(msg)

	case ui.LoginDoneMsg:
		m.user = msg.User
		m.page = pageSearch
		cmds := []tea.Cmd{m.syncSession()}
		if m.deps.Resolver.Active().IsNone() {
			cmds = append(cmds, m.resolveStartupLocation())
		} else if cmd := m.search.SetScope(m.deps.Resolver.Active(), m.location.RadiusKm()); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case ui.OpenProductMsg:
		m.prev = m.page
		m.page = pageProduct
		return m, m.product.Open(msg.Result)

	case ui.BackMsg:
		m.page = m.prev
		if m.page == pageProduct {
			m.page = pageSearch
		}
		return m, nil

	case ui.LocationChangedMsg:
		var cmds []tea.Cmd
		cmds = append(cmds, m.observeLocation())
		if cmd := m.search.SetScope(msg.Location, msg.RadiusKm); cmd != nil {
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.location, cmd = m.location.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case ui.LogoutMsg:
		m.logout()
		return m, nil

	case configReloadedMsg:
		m.restyle(ui.NewStyles(ui.ThemeByName(msg.Theme)))
		return m, nil

	case ui.ErrMsg:
		// An expired token ends the session wherever it is noticed.
		if errors.Is(msg.Err, api.ErrUnauthorized) && m.page != pageLogin {
			m.logout()
			return m, nil
		}
		return m.updateActive(msg)
	}

	// Everything else fans out; pages ignore messages that are not theirs.
	return m.updateAll(msg)
}

func (m appModel) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case pageLogin:
		m.login, cmd = m.login.Update(msg)
	case pageSearch:
		m.search, cmd = m.search.Update(msg)
	case pageProduct:
		m.product, cmd = m.product.Update(msg)
	case pageList:
		m.list, cmd = m.list.Update(msg)
	case pageLocation:
		m.location, cmd = m.location.Update(msg)
	case pageProfile:
		m.profile, cmd = m.profile.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	cmds = append(cmds, cmd)
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	m.product, cmd = m.product.Update(msg)
	cmds = append(cmds, cmd)
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.location, cmd = m.location.Update(msg)
	cmds = append(cmds, cmd)
	m.profile, cmd = m.profile.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m appModel) View() string {
	header := m.styles.Header.Render("Neighbor")
	if m.user.Name != "" {
		header += m.styles.Footer.Render("  " + m.user.Name)
	}

	var body string
	switch m.page {
	case pageLogin:
		body = m.login.View()
	case pageSearch:
		body = m.search.View()
	case pageProduct:
		body = m.product.View()
	case pageList:
		body = m.list.View()
	case pageLocation:
		body = m.location.View()
	case pageProfile:
		body = m.profile.View()
	}
	return header + "\n" + body
}
