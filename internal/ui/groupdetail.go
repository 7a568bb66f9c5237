package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/request"
)

type groupDetailState struct {
	groupID  int64
	detail   request.State[api.GroupDetail]
	selected int // member list selection

	joining       bool
	greetingInput textinput.Model
	mutation      request.State[string]
}

type groupDetailResultMsg struct {
	groupID int64
	detail  api.GroupDetail
	err     error
}

// groupMutationResultMsg carries the outcome of join, leave or kick.
// A successful mutation triggers a full detail re-fetch; member lists
// are never patched locally.
type groupMutationResultMsg struct {
	action string
	err    error
}

func newGroupDetailState() groupDetailState {
	return groupDetailState{greetingInput: newInput("greeting message")}
}

// enterGroupDetail switches to the detail screen and starts the fetch.
func (m Model) enterGroupDetail(groupID int64) (tea.Model, tea.Cmd) {
	m.screen = ScreenGroupDetail
	m.groupDetail = newGroupDetailState()
	m.groupDetail.groupID = groupID
	m.groupDetail.detail.Begin()
	return m, m.fetchGroupDetailCmd(groupID)
}

func (m Model) fetchGroupDetailCmd(groupID int64) tea.Cmd {
	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	return func() tea.Msg {
		detail, err := client.GroupDetail(ctx, groupID, userID)
		return groupDetailResultMsg{groupID: groupID, detail: detail, err: err}
	}
}

func (m Model) handleGroupDetailResult(msg groupDetailResultMsg) (tea.Model, tea.Cmd) {
	if !m.groupDetail.detail.IsLoading() || msg.groupID != m.groupDetail.groupID {
		return m, nil
	}
	m.groupDetail.detail.Resolve(msg.detail, msg.err)
	m.groupDetail.selected = clampSelection(m.groupDetail.selected, len(msg.detail.Members))
	return m, nil
}

func (m Model) handleGroupDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.groupDetail.joining {
		return m.handleJoinKeys(msg)
	}

	detail := m.groupDetail.detail.Value()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenHome
		return m, m.reloadGroups()

	case key.Matches(msg, m.keys.Down):
		m.groupDetail.selected = clampSelection(m.groupDetail.selected+1, len(detail.Members))
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.groupDetail.selected = clampSelection(m.groupDetail.selected-1, len(detail.Members))
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadGroupDetail()

	case key.Matches(msg, m.keys.Join):
		if !m.groupDetail.detail.IsSuccess() || detail.Joined {
			return m, nil
		}
		m.groupDetail.joining = true
		m.groupDetail.greetingInput.SetValue("")
		return m, m.groupDetail.greetingInput.Focus()

	case key.Matches(msg, m.keys.Leave):
		if !m.groupDetail.detail.IsSuccess() || !detail.Joined || detail.Leader {
			return m, nil
		}
		return m.submitGroupMutation("leave")

	case key.Matches(msg, m.keys.Kick):
		if !detail.Leader || len(detail.Members) == 0 {
			return m, nil
		}
		target := detail.Members[m.groupDetail.selected]
		if target.UserID == m.session.UserID() {
			return m, nil
		}
		return m.submitGroupMutation("kick")

	case key.Matches(msg, m.keys.Posts):
		if !detail.Joined {
			return m, nil
		}
		return m.enterPosts(m.groupDetail.groupID)

	case key.Matches(msg, m.keys.Photos):
		if !detail.Joined {
			return m, nil
		}
		return m.enterPhotos(m.groupDetail.groupID, detail.Leader)

	case key.Matches(msg, m.keys.Chat):
		if !detail.Joined {
			return m, nil
		}
		return m.enterChat(m.groupDetail.groupID)
	}
	return m, nil
}

func (m Model) handleJoinKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.groupDetail.joining = false
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitGroupMutation("join")
	}

	var cmd tea.Cmd
	m.groupDetail.greetingInput, cmd = m.groupDetail.greetingInput.Update(msg)
	return m, cmd
}

func (m *Model) reloadGroupDetail() tea.Cmd {
	if !m.groupDetail.detail.Begin() {
		return nil
	}
	return m.fetchGroupDetailCmd(m.groupDetail.groupID)
}

func (m Model) submitGroupMutation(action string) (tea.Model, tea.Cmd) {
	if !m.groupDetail.mutation.Begin() {
		return m, nil
	}

	client, ctx := m.client, m.ctx
	groupID := m.groupDetail.groupID
	userID := m.session.UserID()
	switch action {
	case "join":
		greeting := strings.TrimSpace(m.groupDetail.greetingInput.Value())
		return m, func() tea.Msg {
			err := client.JoinGroup(ctx, groupID, userID, greeting)
			return groupMutationResultMsg{action: action, err: err}
		}
	case "leave":
		return m, func() tea.Msg {
			err := client.LeaveGroup(ctx, groupID, userID)
			return groupMutationResultMsg{action: action, err: err}
		}
	case "kick":
		target := m.groupDetail.detail.Value().Members[m.groupDetail.selected].UserID
		return m, func() tea.Msg {
			err := client.KickMember(ctx, groupID, target, userID)
			return groupMutationResultMsg{action: action, err: err}
		}
	}
	m.groupDetail.mutation.Reset()
	return m, nil
}

func (m Model) handleGroupMutationResult(msg groupMutationResultMsg) (tea.Model, tea.Cmd) {
	if !m.groupDetail.mutation.IsLoading() {
		return m, nil
	}
	if msg.err != nil {
		m.groupDetail.mutation.Fail(request.Describe(msg.err))
		return m, nil
	}
	switch msg.action {
	case "join":
		m.groupDetail.mutation.Succeed("Joined the group.")
		m.groupDetail.joining = false
	case "leave":
		m.groupDetail.mutation.Succeed("Left the group.")
	case "kick":
		m.groupDetail.mutation.Succeed("Member removed.")
	}
	return m, m.reloadGroupDetail()
}

func (m Model) viewGroupDetail() string {
	var b strings.Builder
	state := m.groupDetail.detail

	switch {
	case state.IsIdle(), state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Loading group...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
		b.WriteString(m.styles.MutedText.Render("Press r to retry.") + "\n")
	default:
		detail := state.Value()
		b.WriteString(m.styles.Title.Render(detail.GroupName) + "\n")
		b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%s • %d/%d members • created %s",
			detail.Category.DisplayName(), detail.CurrentMembers, detail.MaxMembers,
			formatTimestamp(detail.CreatedAt))) + "\n\n")
		b.WriteString(m.styles.Text.Render(detail.Description) + "\n\n")

		b.WriteString(m.styles.Header.Render("Members") + "\n")
		for i, member := range detail.Members {
			line := member.Nickname
			if member.Leader {
				line += " " + m.styles.AccentText.Render("(leader)")
			}
			if member.New {
				line += " " + m.styles.SuccessText.Render("new")
			}
			if i == m.groupDetail.selected {
				b.WriteString(m.styles.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(m.styles.Text.Render("  "+line) + "\n")
			}
		}

		if m.groupDetail.joining {
			b.WriteString("\n" + m.styles.Header.Render("Join group") + "\n")
			b.WriteString(m.groupDetail.greetingInput.View() + "\n")
			b.WriteString(m.styles.MutedText.Render("enter join • esc cancel") + "\n")
		}
	}

	mutation := m.groupDetail.mutation
	switch {
	case mutation.IsLoading():
		b.WriteString("\n" + m.styles.WarningText.Render("Working...") + "\n")
	case mutation.IsError():
		b.WriteString("\n" + m.styles.DangerText.Render(mutation.Reason()) + "\n")
	case mutation.IsSuccess():
		b.WriteString("\n" + m.styles.SuccessText.Render(mutation.Value()) + "\n")
	}

	hints := []string{"esc back", "r refresh"}
	if state.IsSuccess() {
		detail := state.Value()
		if detail.Joined {
			hints = append(hints, "p posts", "o photos", "c chat")
			if detail.Leader {
				hints = append(hints, "x kick")
			} else {
				hints = append(hints, "l leave")
			}
		} else {
			hints = append(hints, "g join")
		}
	}
	b.WriteString("\n" + m.styles.Footer.Render(strings.Join(hints, " • ")))
	return b.String()
}
