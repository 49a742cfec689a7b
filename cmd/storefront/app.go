package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"neighbor/internal/api"
)

const requestTimeout = 15 * time.Second

// dashStyles is the dashboard's fixed palette. The owner app is a dense
// data tool; it does not carry the shopper app's theming machinery.
type dashStyles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	Footer   lipgloss.Style
	Header   lipgloss.Style
}

func newDashStyles() dashStyles {
	return dashStyles{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#90a4ae")).Italic(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#90a4ae")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#43a047")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#90a4ae")).Padding(0, 2),
		Header: lipgloss.NewStyle().Background(lipgloss.Color("#2E7D32")).
			Foreground(lipgloss.Color("#ffffff")).Padding(0, 2).Bold(true),
	}
}

type dashPage int

const (
	dashLogin dashPage = iota
	dashSetup
	dashInventory
	dashAnalytics
)

type loginDoneMsg struct {
	User api.User
}

type needsStoreMsg struct{}

type errMsg struct {
	Err error
}

// dashModel is the dashboard's root model.
type dashModel struct {
	deps   deps
	styles dashStyles

	page dashPage
	user api.User

	email textinput.Model
	pass  textinput.Model
	focus int
	busy  bool
	state string

	setup     setupModel
	inventory inventoryModel
	analytics analyticsModel

	width  int
	height int
}

func newDashModel(d deps) dashModel {
	styles := newDashStyles()

	email := textinput.New()
	email.Placeholder = "Email"
	email.Focus()
	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	m := dashModel{
		deps:      d,
		styles:    styles,
		email:     email,
		pass:      pass,
		setup:     newSetupModel(d, styles),
		inventory: newInventoryModel(d, styles),
		analytics: newAnalyticsModel(d, styles),
	}
	m.page = dashLogin
	return m
}

func (m dashModel) Init() tea.Cmd {
	if !m.deps.Session.Authenticated() {
		return nil
	}
	// A stored token may already belong to an owner; try to resume.
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := deps.API.Me(ctx)
		if err != nil {
			return nil
		}
		return loginDoneMsg{User: user}
	}
}

func (m dashModel) submitLogin() tea.Cmd {
	deps := m.deps
	email := strings.TrimSpace(m.email.Value())
	pass := m.pass.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tok, err := deps.API.Login(ctx, email, pass)
		if err != nil {
			return errMsg{Err: err}
		}
		if err := deps.Session.Save(tok.AccessToken); err != nil {
			return errMsg{Err: err}
		}
		user, err := deps.API.Me(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		return loginDoneMsg{User: user}
	}
}

// enterDashboard routes an authenticated owner to inventory, or to store
// setup when the backend says no store exists yet.
func (m dashModel) enterDashboard() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		entries, err := deps.API.Inventory(ctx)
		if err != nil {
			if api.IsNotFound(err) {
				return needsStoreMsg{}
			}
			return errMsg{Err: err}
		}
		return inventoryLoadedMsg{Entries: entries}
	}
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.setup.SetSize(msg.Width, msg.Height)
		m.inventory.SetSize(msg.Width, msg.Height)
		m.analytics.SetSize(msg.Width, msg.Height)
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.User.Role != api.RoleStoreOwner {
			m.state = m.styles.Error.Render("This dashboard is for store owner accounts.")
			return m, nil
		}
		m.user = msg.User
		m.deps.Log.Info("owner signed in", zap.String("email", msg.User.Email))
		return m, m.enterDashboard()

	case needsStoreMsg:
		m.page = dashSetup
		return m, m.setup.Start()

	case storeCreatedMsg:
		m.page = dashInventory
		return m, m.inventory.Refresh()

	case inventoryLoadedMsg:
		if m.page == dashLogin || m.page == dashSetup {
			m.page = dashInventory
		}
		var cmd tea.Cmd
		m.inventory, cmd = m.inventory.Update(msg)
		return m, cmd

	case errMsg:
		m.busy = false
		if errors.Is(msg.Err, api.ErrUnauthorized) && m.page != dashLogin {
			if err := m.deps.Session.Clear(); err != nil {
				m.deps.Log.Warn("token clear failed", zap.Error(err))
			}
			m.page = dashLogin
			m.state = m.styles.Warning.Render("Session expired. Sign in again.")
			return m, nil
		}
		if m.page == dashLogin {
			m.state = m.styles.Error.Render(msg.Err.Error())
			return m, nil
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.page == dashLogin {
			return m.updateLogin(msg)
		}
		switch msg.String() {
		case "f1":
			if m.page == dashInventory || m.page == dashAnalytics {
				m.page = dashInventory
				return m, m.inventory.Refresh()
			}
		case "f2":
			if m.page == dashInventory || m.page == dashAnalytics {
				m.page = dashAnalytics
				return m, m.analytics.Refresh()
			}
		}
	}

	var cmd tea.Cmd
	switch m.page {
	case dashSetup:
		m.setup, cmd = m.setup.Update(msg)
	case dashInventory:
		m.inventory, cmd = m.inventory.Update(msg)
	case dashAnalytics:
		m.analytics, cmd = m.analytics.Update(msg)
	}
	return m, cmd
}

func (m dashModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "down", "shift+tab", "up":
		if m.focus == 0 {
			m.focus = 1
			m.email.Blur()
			m.pass.Focus()
		} else {
			m.focus = 0
			m.pass.Blur()
			m.email.Focus()
		}
		return m, nil
	case "enter":
		if m.focus == 0 {
			m.focus = 1
			m.email.Blur()
			m.pass.Focus()
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.state = ""
		return m, m.submitLogin()
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.pass, cmd = m.pass.Update(msg)
	}
	return m, cmd
}

func (m dashModel) View() string {
	header := m.styles.Header.Render("Storefront")
	if m.user.Name != "" {
		header += m.styles.Footer.Render("  " + m.user.Name)
	}

	var body string
	switch m.page {
	case dashLogin:
		var sb strings.Builder
		sb.WriteString(m.styles.Title.Render("Sign in to your store"))
		sb.WriteString("\n\n")
		sb.WriteString(m.email.View())
		sb.WriteString("\n")
		sb.WriteString(m.pass.View())
		sb.WriteString("\n\n")
		if m.busy {
			sb.WriteString(m.styles.Muted.Render("Working..."))
			sb.WriteString("\n")
		}
		if m.state != "" {
			sb.WriteString(m.state)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render("enter submit · esc quit"))
		body = lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
	case dashSetup:
		body = m.setup.View()
	case dashInventory:
		body = m.inventory.View()
	case dashAnalytics:
		body = m.analytics.View()
	}
	return header + "\n" + body
}
