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
	signupFieldEmail = iota
	signupFieldPassword
	signupFieldName
	signupFieldNickname
	signupFieldBirthDate
	signupFieldCount
)

// signupState carries two independent operation states: the signup
// submit and the nickname-availability check. Each owns its own
// request.State so one can never clobber the other's phase.
type signupState struct {
	inputs [signupFieldCount]textinput.Model
	focus  int

	submit        request.State[api.AuthResponse]
	nicknameCheck request.State[api.AuthResponse]
}

type signupResultMsg struct {
	resp api.AuthResponse
	err  error
}

type nicknameCheckResultMsg struct {
	resp api.AuthResponse
	err  error
}

func newSignupState() signupState {
	s := signupState{}
	s.inputs[signupFieldEmail] = newInput("email")
	s.inputs[signupFieldPassword] = newInput("password")
	s.inputs[signupFieldPassword].EchoMode = textinput.EchoPassword
	s.inputs[signupFieldName] = newInput("name")
	s.inputs[signupFieldNickname] = newInput("nickname")
	s.inputs[signupFieldBirthDate] = newInput("birth date (2000-01-01)")
	s.inputs[signupFieldEmail].Focus()
	return s
}

func (m Model) handleSignupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenLogin
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Tab):
		m.signup.focus = (m.signup.focus + 1) % signupFieldCount
		return m, cycleFocus(m.signup.inputs[:], m.signup.focus)

	case key.Matches(msg, m.keys.CheckNickname):
		return m.checkNickname()

	case key.Matches(msg, m.keys.Submit):
		return m.submitSignup()
	}

	cmd := updateInputs(m.signup.inputs[:], msg)
	return m, cmd
}

func (m Model) checkNickname() (tea.Model, tea.Cmd) {
	nickname := strings.TrimSpace(m.signup.inputs[signupFieldNickname].Value())
	if nickname == "" {
		m.signup.nicknameCheck.Fail("Enter a nickname first.")
		return m, nil
	}
	if !m.signup.nicknameCheck.Begin() {
		return m, nil
	}
	client, ctx := m.client, m.ctx
	return m, func() tea.Msg {
		resp, err := client.CheckNickname(ctx, nickname)
		return nicknameCheckResultMsg{resp: resp, err: err}
	}
}

func (m Model) handleNicknameCheckResult(msg nicknameCheckResultMsg) (tea.Model, tea.Cmd) {
	if !m.signup.nicknameCheck.IsLoading() {
		return m, nil
	}
	m.signup.nicknameCheck.Resolve(msg.resp, msg.err)
	return m, nil
}

func (m Model) submitSignup() (tea.Model, tea.Cmd) {
	req := api.SignupRequest{
		Email:     strings.TrimSpace(m.signup.inputs[signupFieldEmail].Value()),
		Password:  m.signup.inputs[signupFieldPassword].Value(),
		Name:      strings.TrimSpace(m.signup.inputs[signupFieldName].Value()),
		Nickname:  strings.TrimSpace(m.signup.inputs[signupFieldNickname].Value()),
		BirthDate: strings.TrimSpace(m.signup.inputs[signupFieldBirthDate].Value()),
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Nickname == "" || req.BirthDate == "" {
		m.signup.submit.Fail("All fields are required.")
		return m, nil
	}
	if !m.signup.submit.Begin() {
		return m, nil
	}
	client, ctx := m.client, m.ctx
	return m, func() tea.Msg {
		resp, err := client.Signup(ctx, req)
		return signupResultMsg{resp: resp, err: err}
	}
}

func (m Model) handleSignupResult(msg signupResultMsg) (tea.Model, tea.Cmd) {
	if !m.signup.submit.IsLoading() {
		return m, nil
	}
	m.signup.submit.Resolve(msg.resp, msg.err)
	return m, nil
}

func (m Model) viewSignup() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Create account") + "\n\n")
	for i := range m.signup.inputs {
		b.WriteString(m.signup.inputs[i].View() + "\n")
	}
	b.WriteString("\n")

	check := m.signup.nicknameCheck
	switch {
	case check.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Checking nickname...") + "\n")
	case check.IsError():
		b.WriteString(m.styles.DangerText.Render(check.Reason()) + "\n")
	case check.IsSuccess() && check.Value().Success:
		b.WriteString(m.styles.SuccessText.Render(check.Value().Message) + "\n")
	case check.IsSuccess():
		b.WriteString(m.styles.WarningText.Render(check.Value().Message) + "\n")
	}

	submit := m.signup.submit
	switch {
	case submit.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Creating account...") + "\n")
	case submit.IsError():
		b.WriteString(m.styles.DangerText.Render(submit.Reason()) + "\n")
	case submit.IsSuccess():
		b.WriteString(m.styles.SuccessText.Render(submit.Value().Message) + "\n")
		b.WriteString(m.styles.MutedText.Render("Press esc to sign in.") + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter sign up • ctrl+n check nickname • tab next field • esc back"))
	return m.styles.Panel.Render(b.String())
}
