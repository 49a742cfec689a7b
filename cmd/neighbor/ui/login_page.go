package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"neighbor/internal/api"
)

// LoginDoneMsg is emitted after a successful login, carrying the profile.
type LoginDoneMsg struct {
	User api.User
}

// RegisterDoneMsg is emitted after a successful registration; the page then
// switches back to login with the email prefilled.
type RegisterDoneMsg struct {
	Email string
}

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
)

// LoginPageModel is the sign-in and registration form.
type LoginPageModel struct {
	deps   Deps
	styles Styles

	mode    loginMode
	name    textinput.Model
	email   textinput.Model
	pass    textinput.Model
	confirm textinput.Model
	focus   int
	busy    bool
	status  string

	width  int
	height int
}

// NewLoginPageModel creates the login page.
func NewLoginPageModel(deps Deps, styles Styles) LoginPageModel {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'
	pass.CharLimit = 120

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '*'
	confirm.CharLimit = 120

	return LoginPageModel{
		deps:    deps,
		styles:  styles,
		name:    name,
		email:   email,
		pass:    pass,
		confirm: confirm,
	}
}

// SetSize updates the page dimensions.
func (m *LoginPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *LoginPageModel) inputs() []*textinput.Model {
	if m.mode == modeRegister {
		return []*textinput.Model{&m.name, &m.email, &m.pass, &m.confirm}
	}
	return []*textinput.Model{&m.email, &m.pass}
}

func (m *LoginPageModel) setFocus(idx int) {
	ins := m.inputs()
	m.focus = (idx + len(ins)) % len(ins)
	for i, in := range ins {
		if i == m.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (m *LoginPageModel) toggleMode() {
	if m.mode == modeLogin {
		m.mode = modeRegister
	} else {
		m.mode = modeLogin
	}
	m.status = ""
	m.setFocus(0)
}

// validate catches form problems client-side; nothing is sent until it passes.
func (m *LoginPageModel) validate() bool {
	if strings.TrimSpace(m.email.Value()) == "" || m.pass.Value() == "" {
		m.status = m.styles.Warning.Render("Email and password are required.")
		return false
	}
	if m.mode == modeRegister {
		if strings.TrimSpace(m.name.Value()) == "" {
			m.status = m.styles.Warning.Render("Your name is required.")
			return false
		}
		if m.pass.Value() != m.confirm.Value() {
			m.status = m.styles.Warning.Render("Passwords do not match.")
			return false
		}
	}
	return true
}

func (m LoginPageModel) submit() tea.Cmd {
	deps := m.deps
	email := strings.TrimSpace(m.email.Value())
	pass := m.pass.Value()
	if m.mode == modeRegister {
		name := strings.TrimSpace(m.name.Value())
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			err := deps.API.Register(ctx, api.RegisterRequest{
				Name:     name,
				Email:    email,
				Password: pass,
				Role:     api.RoleConsumer,
			})
			if err != nil {
				return ErrMsg{Err: err}
			}
			return RegisterDoneMsg{Email: email}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tok, err := deps.API.Login(ctx, email, pass)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := deps.Session.Save(tok.AccessToken); err != nil {
			return ErrMsg{Err: err}
		}
		user, err := deps.API.Me(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		deps.Log.Info("logged in", zap.String("email", user.Email), zap.String("role", user.Role))
		return LoginDoneMsg{User: user}
	}
}

// Update handles messages.
func (m LoginPageModel) Update(msg tea.Msg) (LoginPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+r":
			m.toggleMode()
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			if m.focus < len(m.inputs())-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			if !m.validate() {
				return m, nil
			}
			m.busy = true
			m.status = ""
			return m, m.submit()
		}

	case RegisterDoneMsg:
		m.busy = false
		m.mode = modeLogin
		m.email.SetValue(msg.Email)
		m.pass.SetValue("")
		m.confirm.SetValue("")
		m.status = m.styles.Success.Render("Account created. Sign in to continue.")
		m.setFocus(1)
		return m, nil

	case ErrMsg:
		m.busy = false
		m.status = m.styles.Error.Render(humanError(msg.Err))
		return m, nil
	}

	var cmd tea.Cmd
	ins := m.inputs()
	*ins[m.focus], cmd = ins[m.focus].Update(msg)
	return m, cmd
}

// View renders the page.
func (m LoginPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(Logo(m.styles))
	sb.WriteString("\n")
	if m.mode == modeRegister {
		sb.WriteString(m.styles.Title.Render("Create account"))
		sb.WriteString("\n\n")
		sb.WriteString(m.name.View())
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.styles.Title.Render("Sign in"))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.email.View())
	sb.WriteString("\n")
	sb.WriteString(m.pass.View())
	sb.WriteString("\n")
	if m.mode == modeRegister {
		sb.WriteString(m.confirm.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	if m.busy {
		sb.WriteString(m.styles.Muted.Render("Working..."))
		sb.WriteString("\n")
	}
	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}
	hint := "enter submit · ctrl+r create account · esc quit"
	if m.mode == modeRegister {
		hint = "enter submit · ctrl+r back to sign in · esc quit"
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(hint))
	return m.styles.Content.Render(sb.String())
}
