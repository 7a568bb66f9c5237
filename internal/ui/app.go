package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/chat"
	"github.com/dkim82/studyhall/internal/session"
)

// Screen identifies the active screen.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenSignup
	ScreenHome
	ScreenGroupDetail
	ScreenPosts
	ScreenPostDetail
	ScreenPhotos
	ScreenChat
	ScreenProfile
)

// Options configure the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Session   *session.Session
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    *api.Client
	session   *session.Session
	pollTick  time.Duration
	prefsPath string

	keys   keyMap
	theme  Theme
	styles Styles
	width  int
	height int
	screen Screen

	login       loginState
	signup      signupState
	home        homeState
	groupDetail groupDetailState
	posts       postsState
	postDetail  postDetailState
	photos      photosState
	chatView    chatState
	profile     profileState
}

// New creates the root model. A restored login skips straight to the
// home screen.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = chat.DefaultPollInterval
	}

	theme := GetTheme(opts.ThemeName)
	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		session:   opts.Session,
		pollTick:  pollTick,
		prefsPath: opts.PrefsPath,
		keys:      defaultKeyMap(),
		theme:     theme,
		styles:    theme.Styles(),
		screen:    ScreenLogin,
	}
	m.login = newLoginState()
	m.signup = newSignupState()
	m.home = newHomeState()
	if opts.Session != nil && opts.Session.LoggedIn() {
		m.screen = ScreenHome
		m.home.groups.Begin()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.screen == ScreenHome {
		cmds = append(cmds, m.fetchGroupsCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chatView.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.teardownChat()
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	// Async results are routed to their owning screen regardless of
	// which screen is currently visible.
	switch msg := msg.(type) {
	case loginResultMsg:
		return m.handleLoginResult(msg)
	case nicknameCheckResultMsg:
		return m.handleNicknameCheckResult(msg)
	case signupResultMsg:
		return m.handleSignupResult(msg)
	case groupsResultMsg:
		return m.handleGroupsResult(msg)
	case createGroupResultMsg:
		return m.handleCreateGroupResult(msg)
	case groupDetailResultMsg:
		return m.handleGroupDetailResult(msg)
	case groupMutationResultMsg:
		return m.handleGroupMutationResult(msg)
	case postsResultMsg:
		return m.handlePostsResult(msg)
	case createPostResultMsg:
		return m.handleCreatePostResult(msg)
	case postDetailResultMsg:
		return m.handlePostDetailResult(msg)
	case postMutationResultMsg:
		return m.handlePostMutationResult(msg)
	case photosResultMsg:
		return m.handlePhotosResult(msg)
	case photoMutationResultMsg:
		return m.handlePhotoMutationResult(msg)
	case chatStartedMsg:
		return m.handleChatStarted(msg)
	case chatTickMsg:
		return m.handleChatTick(msg)
	case chatSendResultMsg:
		return m.handleChatSendResult(msg)
	case profileResultMsg:
		return m.handleProfileResult(msg)
	case updateProfileResultMsg:
		return m.handleUpdateProfileResult(msg)
	case changePasswordResultMsg:
		return m.handleChangePasswordResult(msg)
	}

	return m, nil
}

// handleKey routes keyboard input to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenLogin:
		return m.handleLoginKeys(msg)
	case ScreenSignup:
		return m.handleSignupKeys(msg)
	case ScreenHome:
		return m.handleHomeKeys(msg)
	case ScreenGroupDetail:
		return m.handleGroupDetailKeys(msg)
	case ScreenPosts:
		return m.handlePostsKeys(msg)
	case ScreenPostDetail:
		return m.handlePostDetailKeys(msg)
	case ScreenPhotos:
		return m.handlePhotosKeys(msg)
	case ScreenChat:
		return m.handleChatKeys(msg)
	case ScreenProfile:
		return m.handleProfileKeys(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenLogin:
		body = m.viewLogin()
	case ScreenSignup:
		body = m.viewSignup()
	case ScreenHome:
		body = m.viewHome()
	case ScreenGroupDetail:
		body = m.viewGroupDetail()
	case ScreenPosts:
		body = m.viewPosts()
	case ScreenPostDetail:
		body = m.viewPostDetail()
	case ScreenPhotos:
		body = m.viewPhotos()
	case ScreenChat:
		body = m.viewChat()
	case ScreenProfile:
		body = m.viewProfile()
	}
	return m.viewHeader() + "\n" + body
}

func (m Model) viewHeader() string {
	identity := "not signed in"
	if m.session != nil && m.session.LoggedIn() {
		identity = fmt.Sprintf("%s (#%d)", m.session.Nickname(), m.session.UserID())
	}
	left := m.styles.Title.Render("studyhall")
	right := m.styles.MutedText.Render(identity)
	return m.styles.Header.Render(left + "  " + right)
}

// teardownChat stops the chat controller's polling timer. Called on
// every path that leaves the chat screen, including quit.
func (m *Model) teardownChat() {
	if m.chatView.controller != nil {
		m.chatView.controller.StopPolling()
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
