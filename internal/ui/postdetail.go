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

type postDetailState struct {
	postID   int64
	detail   request.State[api.PostDetail]
	selected int // comment list selection

	commentInput textinput.Model

	editing          bool
	editTitleInput   textinput.Model
	editContentInput textinput.Model
	editFocus        int

	mutation request.State[string]
}

type postDetailResultMsg struct {
	postID int64
	detail api.PostDetail
	err    error
}

// postMutationResultMsg carries the outcome of a post or comment
// mutation. Comment changes trigger a full detail re-fetch; deleting
// the post returns to the board.
type postMutationResultMsg struct {
	action string
	err    error
}

func newPostDetailState() postDetailState {
	return postDetailState{
		commentInput:     newInput("write a comment"),
		editTitleInput:   newInput("title"),
		editContentInput: newInput("content"),
	}
}

// enterPostDetail switches to the post detail screen and starts the
// fetch.
func (m Model) enterPostDetail(postID int64) (tea.Model, tea.Cmd) {
	m.screen = ScreenPostDetail
	m.postDetail = newPostDetailState()
	m.postDetail.postID = postID
	m.postDetail.detail.Begin()
	return m, m.fetchPostDetailCmd(postID)
}

func (m Model) fetchPostDetailCmd(postID int64) tea.Cmd {
	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	return func() tea.Msg {
		detail, err := client.PostDetail(ctx, postID, userID)
		return postDetailResultMsg{postID: postID, detail: detail, err: err}
	}
}

func (m *Model) reloadPostDetail() tea.Cmd {
	if !m.postDetail.detail.Begin() {
		return nil
	}
	return m.fetchPostDetailCmd(m.postDetail.postID)
}

func (m Model) handlePostDetailResult(msg postDetailResultMsg) (tea.Model, tea.Cmd) {
	if !m.postDetail.detail.IsLoading() || msg.postID != m.postDetail.postID {
		return m, nil
	}
	m.postDetail.detail.Resolve(msg.detail, msg.err)
	m.postDetail.selected = clampSelection(m.postDetail.selected, len(msg.detail.Comments))
	return m, nil
}

func (m Model) handlePostDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.postDetail.editing {
		return m.handleEditPostKeys(msg)
	}
	if m.postDetail.commentInput.Focused() {
		return m.handleCommentKeys(msg)
	}

	detail := m.postDetail.detail.Value()
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.enterPosts(m.posts.groupID)

	case key.Matches(msg, m.keys.Down):
		m.postDetail.selected = clampSelection(m.postDetail.selected+1, len(detail.Comments))
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.postDetail.selected = clampSelection(m.postDetail.selected-1, len(detail.Comments))
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadPostDetail()

	case key.Matches(msg, m.keys.New):
		if !m.postDetail.detail.IsSuccess() {
			return m, nil
		}
		m.postDetail.commentInput.SetValue("")
		return m, m.postDetail.commentInput.Focus()

	case key.Matches(msg, m.keys.Edit):
		if !m.postDetail.detail.IsSuccess() || detail.UserID != m.session.UserID() {
			return m, nil
		}
		m.postDetail.editing = true
		m.postDetail.editFocus = 0
		m.postDetail.editTitleInput.SetValue(detail.Title)
		m.postDetail.editContentInput.SetValue(detail.Content)
		m.postDetail.editContentInput.Blur()
		return m, m.postDetail.editTitleInput.Focus()

	case key.Matches(msg, m.keys.Delete):
		if !m.postDetail.detail.IsSuccess() {
			return m, nil
		}
		// d on the post deletes the post (author or leader); x deletes
		// the selected comment.
		if detail.UserID != m.session.UserID() && !detail.Leader {
			return m, nil
		}
		return m.submitPostMutation("delete-post")

	case key.Matches(msg, m.keys.Kick):
		if len(detail.Comments) == 0 {
			return m, nil
		}
		comment := detail.Comments[m.postDetail.selected]
		if comment.UserID != m.session.UserID() && !detail.Leader {
			return m, nil
		}
		return m.submitPostMutation("delete-comment")
	}
	return m, nil
}

func (m Model) handleCommentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.postDetail.commentInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitPostMutation("comment")
	}

	var cmd tea.Cmd
	m.postDetail.commentInput, cmd = m.postDetail.commentInput.Update(msg)
	return m, cmd
}

func (m Model) handleEditPostKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.postDetail.editing = false
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.postDetail.editFocus = (m.postDetail.editFocus + 1) % 2
		if m.postDetail.editFocus == 0 {
			m.postDetail.editContentInput.Blur()
			return m, m.postDetail.editTitleInput.Focus()
		}
		m.postDetail.editTitleInput.Blur()
		return m, m.postDetail.editContentInput.Focus()

	case key.Matches(msg, m.keys.Submit):
		return m.submitPostMutation("update")
	}

	var cmd tea.Cmd
	if m.postDetail.editFocus == 0 {
		m.postDetail.editTitleInput, cmd = m.postDetail.editTitleInput.Update(msg)
	} else {
		m.postDetail.editContentInput, cmd = m.postDetail.editContentInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitPostMutation(action string) (tea.Model, tea.Cmd) {
	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	postID := m.postDetail.postID
	detail := m.postDetail.detail.Value()

	switch action {
	case "comment":
		content := strings.TrimSpace(m.postDetail.commentInput.Value())
		if content == "" {
			return m, nil
		}
		if !m.postDetail.mutation.Begin() {
			return m, nil
		}
		return m, func() tea.Msg {
			err := client.CreateComment(ctx, postID, userID, content)
			return postMutationResultMsg{action: action, err: err}
		}

	case "update":
		title := strings.TrimSpace(m.postDetail.editTitleInput.Value())
		content := strings.TrimSpace(m.postDetail.editContentInput.Value())
		if title == "" || content == "" {
			m.postDetail.mutation.Fail("Title and content are required.")
			return m, nil
		}
		if !m.postDetail.mutation.Begin() {
			return m, nil
		}
		req := api.UpdatePostRequest{Title: title, Content: content, PostType: detail.PostType}
		return m, func() tea.Msg {
			_, err := client.UpdatePost(ctx, postID, userID, req)
			return postMutationResultMsg{action: action, err: err}
		}

	case "delete-post":
		if !m.postDetail.mutation.Begin() {
			return m, nil
		}
		groupID := int64(0)
		if detail.Leader && detail.UserID != userID {
			groupID = detail.GroupID
		}
		return m, func() tea.Msg {
			err := client.DeletePost(ctx, postID, userID, groupID)
			return postMutationResultMsg{action: action, err: err}
		}

	case "delete-comment":
		comment := detail.Comments[m.postDetail.selected]
		if !m.postDetail.mutation.Begin() {
			return m, nil
		}
		groupID := int64(0)
		if detail.Leader && comment.UserID != userID {
			groupID = detail.GroupID
		}
		commentID := comment.CommentID
		return m, func() tea.Msg {
			err := client.DeleteComment(ctx, commentID, userID, groupID)
			return postMutationResultMsg{action: action, err: err}
		}
	}
	return m, nil
}

func (m Model) handlePostMutationResult(msg postMutationResultMsg) (tea.Model, tea.Cmd) {
	if !m.postDetail.mutation.IsLoading() {
		return m, nil
	}
	if msg.err != nil {
		m.postDetail.mutation.Fail(request.Describe(msg.err))
		return m, nil
	}
	switch msg.action {
	case "comment":
		m.postDetail.mutation.Succeed("Comment added.")
		m.postDetail.commentInput.SetValue("")
		m.postDetail.commentInput.Blur()
		return m, m.reloadPostDetail()
	case "update":
		m.postDetail.mutation.Succeed("Post updated.")
		m.postDetail.editing = false
		return m, m.reloadPostDetail()
	case "delete-post":
		return m.enterPosts(m.posts.groupID)
	case "delete-comment":
		m.postDetail.mutation.Succeed("Comment deleted.")
		return m, m.reloadPostDetail()
	}
	return m, nil
}

func (m Model) viewPostDetail() string {
	if m.postDetail.editing {
		return m.viewEditPost()
	}

	var b strings.Builder
	state := m.postDetail.detail

	switch {
	case state.IsIdle(), state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Loading post...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
		b.WriteString(m.styles.MutedText.Render("Press r to retry.") + "\n")
	default:
		detail := state.Value()
		title := detail.Title
		if detail.PostType == api.PostTypeNotice {
			title = m.styles.AccentText.Render("[notice] ") + title
		}
		b.WriteString(m.styles.Title.Render(title) + "\n")
		b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%s • %s",
			detail.Username, formatTimestamp(detail.CreatedAt))) + "\n\n")
		b.WriteString(m.styles.Text.Render(detail.Content) + "\n\n")

		b.WriteString(m.styles.Header.Render(fmt.Sprintf("Comments (%d)", len(detail.Comments))) + "\n")
		if len(detail.Comments) == 0 {
			b.WriteString(m.styles.MutedText.Render("No comments yet.") + "\n")
		}
		for i, comment := range detail.Comments {
			line := fmt.Sprintf("%-12s %s  %s",
				truncate(comment.Username, 12),
				truncate(firstLine(comment.Content), 48),
				formatTimestamp(comment.CreatedAt))
			if i == m.postDetail.selected {
				b.WriteString(m.styles.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(m.styles.Text.Render("  "+line) + "\n")
			}
		}

		if m.postDetail.commentInput.Focused() {
			b.WriteString("\n" + m.postDetail.commentInput.View() + "\n")
			b.WriteString(m.styles.MutedText.Render("enter send • esc cancel") + "\n")
		}
	}

	mutation := m.postDetail.mutation
	switch {
	case mutation.IsLoading():
		b.WriteString("\n" + m.styles.WarningText.Render("Working...") + "\n")
	case mutation.IsError():
		b.WriteString("\n" + m.styles.DangerText.Render(mutation.Reason()) + "\n")
	case mutation.IsSuccess():
		b.WriteString("\n" + m.styles.SuccessText.Render(mutation.Value()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("n comment • x delete comment • e edit • d delete post • r refresh • esc back"))
	return b.String()
}

func (m Model) viewEditPost() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Edit post") + "\n\n")
	b.WriteString(m.postDetail.editTitleInput.View() + "\n")
	b.WriteString(m.postDetail.editContentInput.View() + "\n\n")

	state := m.postDetail.mutation
	switch {
	case state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Saving...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter save • tab next field • esc cancel"))
	return m.styles.Panel.Render(b.String())
}
