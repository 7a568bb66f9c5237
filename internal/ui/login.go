package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/request"
)

const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldCount
)

type loginState struct {
	inputs [loginFieldCount]textinput.Model
	focus  int
	state  request.State[api.AuthResponse]
}

type loginResultMsg struct {
	resp api.AuthResponse
	err  error
}

func newLoginState() loginState {
	s := loginState{}
	s.inputs[loginFieldEmail] = newInput("email")
	s.inputs[loginFieldPassword] = newInput("password")
	s.inputs[loginFieldPassword].EchoMode = textinput.EchoPassword
	s.inputs[loginFieldEmail].Focus()
	return s
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.login.focus = (m.login.focus + 1) % loginFieldCount
		return m, cycleFocus(m.login.inputs[:], m.login.focus)

	case key.Matches(msg, m.keys.Submit):
		return m.submitLogin()

	case msg.String() == "ctrl+s":
		m.signup = newSignupState()
		m.screen = ScreenSignup
		return m, textinput.Blink
	}

	cmd := updateInputs(m.login.inputs[:], msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.login.inputs[loginFieldEmail].Value())
	password := m.login.inputs[loginFieldPassword].Value()

	// Validation failures never reach the network layer.
	if email == "" || password == "" {
		m.login.state.Fail("Email and password are required.")
		return m, nil
	}
	if !m.login.state.Begin() {
		return m, nil
	}
	client, ctx := m.client, m.ctx
	return m, func() tea.Msg {
		resp, err := client.Login(ctx, api.LoginRequest{Email: email, Password: password})
		return loginResultMsg{resp: resp, err: err}
	}
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if !m.login.state.IsLoading() {
		return m, nil
	}
	m.login.state.Resolve(msg.resp, msg.err)
	if msg.err != nil {
		return m, nil
	}
	if err := m.session.Login(msg.resp.UserID, msg.resp.Nickname, msg.resp.Token); err != nil {
		m.login.state.Fail(request.Describe(err))
		return m, nil
	}
	m.home = newHomeState()
	m.screen = ScreenHome
	return m, m.reloadGroups()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Sign in") + "\n\n")
	b.WriteString(m.login.inputs[loginFieldEmail].View() + "\n")
	b.WriteString(m.login.inputs[loginFieldPassword].View() + "\n\n")

	switch {
	case m.login.state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Signing in...") + "\n")
	case m.login.state.IsError():
		b.WriteString(m.styles.DangerText.Render(m.login.state.Reason()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter sign in • tab next field • ctrl+s sign up • ctrl+c quit"))
	return m.styles.Panel.Render(b.String())
}
