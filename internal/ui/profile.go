package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/request"
)

const (
	editFieldNickname = iota
	editFieldBio
	editFieldCount
)

type profileState struct {
	profile request.State[api.UserProfile]

	editing    bool
	editInputs [editFieldCount]textinput.Model
	editFocus  int
	editState  request.State[string]

	changingPassword bool
	passwordInputs   [2]textinput.Model
	passwordFocus    int
	passwordState    request.State[string]
}

type profileResultMsg struct {
	profile api.UserProfile
	err     error
}

type updateProfileResultMsg struct {
	nickname string
	err      error
}

type changePasswordResultMsg struct {
	err error
}

func newProfileState() profileState {
	s := profileState{}
	s.editInputs[editFieldNickname] = newInput("nickname")
	s.editInputs[editFieldBio] = newInput("bio")
	s.passwordInputs[0] = newInput("current password")
	s.passwordInputs[0].EchoMode = textinput.EchoPassword
	s.passwordInputs[1] = newInput("new password")
	s.passwordInputs[1].EchoMode = textinput.EchoPassword
	return s
}

// enterProfile switches to the profile screen and starts the fetch.
func (m Model) enterProfile() (tea.Model, tea.Cmd) {
	m.screen = ScreenProfile
	m.profile = newProfileState()
	m.profile.profile.Begin()
	return m, m.fetchProfileCmd()
}

func (m Model) fetchProfileCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	return func() tea.Msg {
		profile, err := client.UserProfile(ctx, userID)
		return profileResultMsg{profile: profile, err: err}
	}
}

func (m *Model) reloadProfile() tea.Cmd {
	if !m.profile.profile.Begin() {
		return nil
	}
	return m.fetchProfileCmd()
}

func (m Model) handleProfileResult(msg profileResultMsg) (tea.Model, tea.Cmd) {
	if !m.profile.profile.IsLoading() {
		return m, nil
	}
	m.profile.profile.Resolve(msg.profile, msg.err)
	return m, nil
}

func (m Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.profile.editing {
		return m.handleEditProfileKeys(msg)
	}
	if m.profile.changingPassword {
		return m.handlePasswordKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenHome
		return m, m.reloadGroups()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadProfile()

	case key.Matches(msg, m.keys.Edit):
		if !m.profile.profile.IsSuccess() {
			return m, nil
		}
		profile := m.profile.profile.Value()
		m.profile.editing = true
		m.profile.editFocus = 0
		m.profile.editState.Reset()
		m.profile.editInputs[editFieldNickname].SetValue(profile.Nickname)
		m.profile.editInputs[editFieldBio].SetValue(profile.Bio)
		return m, cycleFocus(m.profile.editInputs[:], 0)

	case key.Matches(msg, m.keys.Password):
		m.profile.changingPassword = true
		m.profile.passwordFocus = 0
		m.profile.passwordState.Reset()
		for i := range m.profile.passwordInputs {
			m.profile.passwordInputs[i].SetValue("")
		}
		return m, cycleFocus(m.profile.passwordInputs[:], 0)

	case key.Matches(msg, m.keys.Logout):
		if err := m.session.Logout(); err != nil {
			log.Printf("logout: %v", err)
		}
		m.teardownChat()
		m.screen = ScreenLogin
		m.login = newLoginState()
		return m, cycleFocus(m.login.inputs[:], 0)
	}
	return m, nil
}

func (m Model) handleEditProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.profile.editing = false
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.profile.editFocus = (m.profile.editFocus + 1) % editFieldCount
		return m, cycleFocus(m.profile.editInputs[:], m.profile.editFocus)

	case key.Matches(msg, m.keys.Submit):
		return m.submitUpdateProfile()
	}

	cmd := updateInputs(m.profile.editInputs[:], msg)
	return m, cmd
}

func (m Model) submitUpdateProfile() (tea.Model, tea.Cmd) {
	nickname := strings.TrimSpace(m.profile.editInputs[editFieldNickname].Value())
	bio := strings.TrimSpace(m.profile.editInputs[editFieldBio].Value())
	if nickname == "" {
		m.profile.editState.Fail("Nickname is required.")
		return m, nil
	}
	if !m.profile.editState.Begin() {
		return m, nil
	}

	req := api.UpdateProfileRequest{Nickname: nickname, Bio: bio}
	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	return m, func() tea.Msg {
		_, err := client.UpdateProfile(ctx, userID, req)
		return updateProfileResultMsg{nickname: nickname, err: err}
	}
}

func (m Model) handleUpdateProfileResult(msg updateProfileResultMsg) (tea.Model, tea.Cmd) {
	if !m.profile.editState.IsLoading() {
		return m, nil
	}
	if msg.err != nil {
		m.profile.editState.Fail(request.Describe(msg.err))
		return m, nil
	}
	m.profile.editState.Succeed("Profile updated.")
	m.profile.editing = false
	if err := m.session.SetNickname(msg.nickname); err != nil {
		log.Printf("persist nickname: %v", err)
	}
	return m, m.reloadProfile()
}

func (m Model) handlePasswordKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.profile.changingPassword = false
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.profile.passwordFocus = (m.profile.passwordFocus + 1) % len(m.profile.passwordInputs)
		return m, cycleFocus(m.profile.passwordInputs[:], m.profile.passwordFocus)

	case key.Matches(msg, m.keys.Submit):
		return m.submitChangePassword()
	}

	cmd := updateInputs(m.profile.passwordInputs[:], msg)
	return m, cmd
}

func (m Model) submitChangePassword() (tea.Model, tea.Cmd) {
	current := m.profile.passwordInputs[0].Value()
	next := m.profile.passwordInputs[1].Value()
	if current == "" || next == "" {
		m.profile.passwordState.Fail("Both passwords are required.")
		return m, nil
	}
	if !m.profile.passwordState.Begin() {
		return m, nil
	}

	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	return m, func() tea.Msg {
		_, err := client.ChangePassword(ctx, userID, current, next)
		return changePasswordResultMsg{err: err}
	}
}

func (m Model) handleChangePasswordResult(msg changePasswordResultMsg) (tea.Model, tea.Cmd) {
	if !m.profile.passwordState.IsLoading() {
		return m, nil
	}
	if msg.err != nil {
		m.profile.passwordState.Fail(request.Describe(msg.err))
		return m, nil
	}
	m.profile.passwordState.Succeed("Password changed.")
	m.profile.changingPassword = false
	return m, nil
}

func (m Model) viewProfile() string {
	if m.profile.editing {
		return m.viewEditProfile()
	}
	if m.profile.changingPassword {
		return m.viewChangePassword()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Profile") + "\n\n")

	state := m.profile.profile
	switch {
	case state.IsIdle(), state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Loading profile...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
		b.WriteString(m.styles.MutedText.Render("Press r to retry.") + "\n")
	default:
		profile := state.Value()
		b.WriteString(m.styles.Header.Render(profile.Nickname) + "\n")
		b.WriteString(m.styles.MutedText.Render(profile.Email) + "\n")
		if profile.Bio != "" {
			b.WriteString(m.styles.Text.Render(profile.Bio) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Text.Render(fmt.Sprintf("groups %d • posts %d • comments %d • photos %d",
			profile.GroupCount, profile.PostCount, profile.CommentCount, profile.PhotoCount)) + "\n")
		b.WriteString(m.styles.MutedText.Render("joined "+formatTimestamp(profile.CreatedAt)) + "\n")
	}

	for _, s := range []request.State[string]{m.profile.editState, m.profile.passwordState} {
		if s.IsSuccess() && s.Value() != "" {
			b.WriteString("\n" + m.styles.SuccessText.Render(s.Value()) + "\n")
		}
	}

	b.WriteString("\n" + m.styles.Footer.Render("e edit • w password • L logout • r refresh • esc back"))
	return b.String()
}

func (m Model) viewEditProfile() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Edit profile") + "\n\n")
	for i := range m.profile.editInputs {
		b.WriteString(m.profile.editInputs[i].View() + "\n")
	}
	b.WriteString("\n")

	state := m.profile.editState
	switch {
	case state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Saving...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter save • tab next field • esc cancel"))
	return m.styles.Panel.Render(b.String())
}

func (m Model) viewChangePassword() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Change password") + "\n\n")
	for i := range m.profile.passwordInputs {
		b.WriteString(m.profile.passwordInputs[i].View() + "\n")
	}
	b.WriteString("\n")

	state := m.profile.passwordState
	switch {
	case state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Changing password...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter change • tab next field • esc cancel"))
	return m.styles.Panel.Render(b.String())
}
