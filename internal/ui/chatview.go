package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkim82/studyhall/internal/chat"
	"github.com/dkim82/studyhall/internal/request"
)

type chatState struct {
	groupID    int64
	gen        int
	controller *chat.Controller
	snap       chat.Snapshot
	viewport   viewport.Model
	input      textinput.Model
	sendState  request.State[string]
	ready      bool
}

// Chat messages carry the generation of the chat entry that issued
// them. Re-entering the screen bumps the generation, so messages left
// over from an earlier visit (even to the same group) are dropped
// instead of stacking a second tick chain.

// chatStartedMsg signals that the initial full fetch finished and the
// poll timer is running.
type chatStartedMsg struct {
	gen int
}

// chatTickMsg drives the snapshot refresh while the chat screen is
// visible. The controller polls the server on its own timer; ticks
// only re-read its state.
type chatTickMsg struct {
	gen int
}

type chatSendResultMsg struct {
	gen int
	err error
}

// enterChat switches to the chat screen, builds a fresh controller
// for the group and kicks off the initial fetch plus polling.
func (m Model) enterChat(groupID int64) (tea.Model, tea.Cmd) {
	m.teardownChat()

	m.screen = ScreenChat
	m.chatView = chatState{
		groupID:    groupID,
		gen:        m.chatView.gen + 1,
		controller: chat.NewController(m.client, groupID, m.pollTick),
		input:      newInput("message"),
	}
	m.chatView.resize(m.width, m.height)
	m.chatView.snap = m.chatView.controller.Snapshot()

	ctrl := m.chatView.controller
	ctx := m.ctx
	gen := m.chatView.gen
	start := func() tea.Msg {
		ctrl.Start(ctx)
		ctrl.BeginPolling(ctx)
		return chatStartedMsg{gen: gen}
	}
	return m, tea.Batch(start, m.chatView.input.Focus())
}

// resize fits the transcript viewport under the header and above the
// input line. Safe to call before the first WindowSizeMsg.
func (s *chatState) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !s.ready {
		s.viewport = viewport.New(width, vpHeight)
		s.ready = true
		return
	}
	s.viewport.Width = width
	s.viewport.Height = vpHeight
}

func (m Model) chatTickCmd() tea.Cmd {
	gen := m.chatView.gen
	return tea.Tick(m.pollTick, func(time.Time) tea.Msg {
		return chatTickMsg{gen: gen}
	})
}

func (m Model) handleChatStarted(msg chatStartedMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenChat || msg.gen != m.chatView.gen {
		return m, nil
	}
	m.refreshChat(true)
	return m, m.chatTickCmd()
}

func (m Model) handleChatTick(msg chatTickMsg) (tea.Model, tea.Cmd) {
	// Leaving the screen, or re-entering it, lets the old tick chain
	// die out.
	if m.screen != ScreenChat || msg.gen != m.chatView.gen {
		return m, nil
	}
	m.refreshChat(false)
	return m, m.chatTickCmd()
}

// refreshChat re-reads the controller snapshot and re-renders the
// transcript. The viewport follows the tail unless the user has
// scrolled up, except when force is set.
func (m *Model) refreshChat(force bool) {
	atBottom := m.chatView.viewport.AtBottom()
	previous := len(m.chatView.snap.Messages)
	m.chatView.snap = m.chatView.controller.Snapshot()
	if !m.chatView.ready {
		return
	}
	m.chatView.viewport.SetContent(m.renderTranscript())
	if force || (atBottom && len(m.chatView.snap.Messages) != previous) {
		m.chatView.viewport.GotoBottom()
	}
}

func (m Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.teardownChat()
		return m.enterGroupDetail(m.chatView.groupID)

	case key.Matches(msg, m.keys.Submit):
		return m.submitChatMessage()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.chatView.input, cmd = m.chatView.input.Update(msg)
	cmds = append(cmds, cmd)
	m.chatView.viewport, cmd = m.chatView.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submitChatMessage() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.chatView.input.Value())
	if content == "" {
		return m, nil
	}
	if !m.chatView.sendState.Begin() {
		return m, nil
	}

	ctrl := m.chatView.controller
	ctx := m.ctx
	gen := m.chatView.gen
	userID := m.session.UserID()
	return m, func() tea.Msg {
		err := ctrl.Send(ctx, userID, content)
		return chatSendResultMsg{gen: gen, err: err}
	}
}

func (m Model) handleChatSendResult(msg chatSendResultMsg) (tea.Model, tea.Cmd) {
	if !m.chatView.sendState.IsLoading() || msg.gen != m.chatView.gen {
		return m, nil
	}
	if msg.err != nil {
		// The draft stays in the input so the user can retry.
		m.chatView.sendState.Fail(request.Describe(msg.err))
		return m, nil
	}
	m.chatView.sendState.Succeed("")
	m.chatView.input.SetValue("")
	m.refreshChat(true)
	return m, nil
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	userID := m.session.UserID()
	for _, message := range m.chatView.snap.Messages {
		name := message.Username
		style := m.styles.AccentText
		if message.UserID == userID {
			name = "you"
			style = m.styles.SuccessText
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			m.styles.MutedText.Render(formatTimestamp(message.CreatedAt)),
			style.Render(name+":"),
			message.Content))
	}
	return b.String()
}

func (m Model) viewChat() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Chat") + "\n")

	snap := m.chatView.snap
	switch snap.Phase {
	case request.Idle, request.Loading:
		b.WriteString(m.styles.WarningText.Render("Loading messages...") + "\n")
	case request.Failed:
		b.WriteString(m.styles.DangerText.Render(snap.Reason) + "\n")
	default:
		if len(snap.Messages) == 0 {
			b.WriteString(m.styles.MutedText.Render("No messages yet. Say hello.") + "\n")
		} else if m.chatView.ready {
			b.WriteString(m.chatView.viewport.View() + "\n")
		}
	}

	b.WriteString("\n" + m.chatView.input.View() + "\n")
	if m.chatView.sendState.IsError() {
		b.WriteString(m.styles.DangerText.Render(m.chatView.sendState.Reason()) + "\n")
	}

	b.WriteString(m.styles.Footer.Render("enter send • esc back"))
	return b.String()
}
