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

type postsState struct {
	groupID  int64
	filter   api.PostType // empty means every type
	posts    request.State[[]api.Post]
	selected int

	creating     bool
	titleInput   textinput.Model
	contentInput textinput.Model
	createFocus  int
	createNotice bool
	createState  request.State[string]
}

type postsResultMsg struct {
	groupID int64
	filter  api.PostType
	posts   []api.Post
	err     error
}

type createPostResultMsg struct {
	err error
}

func newPostsState() postsState {
	return postsState{
		titleInput:   newInput("title"),
		contentInput: newInput("content"),
	}
}

// enterPosts switches to the board screen for a group.
func (m Model) enterPosts(groupID int64) (tea.Model, tea.Cmd) {
	m.screen = ScreenPosts
	m.posts = newPostsState()
	m.posts.groupID = groupID
	m.posts.posts.Begin()
	return m, m.fetchPostsCmd()
}

func (m Model) fetchPostsCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	groupID := m.posts.groupID
	filter := m.posts.filter
	return func() tea.Msg {
		var posts []api.Post
		var err error
		if filter == "" {
			posts, err = client.Posts(ctx, groupID)
		} else {
			posts, err = client.PostsByType(ctx, groupID, filter)
		}
		return postsResultMsg{groupID: groupID, filter: filter, posts: posts, err: err}
	}
}

func (m *Model) reloadPosts() tea.Cmd {
	if !m.posts.posts.Begin() {
		return nil
	}
	return m.fetchPostsCmd()
}

func (m Model) handlePostsResult(msg postsResultMsg) (tea.Model, tea.Cmd) {
	if !m.posts.posts.IsLoading() || msg.groupID != m.posts.groupID {
		return m, nil
	}
	if msg.filter != m.posts.filter {
		return m, m.fetchPostsCmd()
	}
	m.posts.posts.Resolve(msg.posts, msg.err)
	m.posts.selected = clampSelection(m.posts.selected, len(msg.posts))
	return m, nil
}

func (m Model) handlePostsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.posts.creating {
		return m.handleCreatePostKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.enterGroupDetail(m.posts.groupID)

	case key.Matches(msg, m.keys.Down):
		m.posts.selected = clampSelection(m.posts.selected+1, len(m.posts.posts.Value()))
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.posts.selected = clampSelection(m.posts.selected-1, len(m.posts.posts.Value()))
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		switch m.posts.filter {
		case "":
			m.posts.filter = api.PostTypeFree
		case api.PostTypeFree:
			m.posts.filter = api.PostTypeNotice
		default:
			m.posts.filter = ""
		}
		return m, m.reloadPosts()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadPosts()

	case key.Matches(msg, m.keys.New):
		m.posts.creating = true
		m.posts.createFocus = 0
		m.posts.createNotice = false
		m.posts.createState.Reset()
		m.posts.titleInput.SetValue("")
		m.posts.contentInput.SetValue("")
		m.posts.contentInput.Blur()
		return m, m.posts.titleInput.Focus()

	case key.Matches(msg, m.keys.Submit):
		posts := m.posts.posts.Value()
		if len(posts) == 0 {
			return m, nil
		}
		return m.enterPostDetail(posts[m.posts.selected].PostID)
	}
	return m, nil
}

func (m Model) handleCreatePostKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.posts.creating = false
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.posts.createFocus = (m.posts.createFocus + 1) % 2
		if m.posts.createFocus == 0 {
			m.posts.contentInput.Blur()
			return m, m.posts.titleInput.Focus()
		}
		m.posts.titleInput.Blur()
		return m, m.posts.contentInput.Focus()

	case msg.String() == "ctrl+t":
		m.posts.createNotice = !m.posts.createNotice
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitCreatePost()
	}

	var cmd tea.Cmd
	if m.posts.createFocus == 0 {
		m.posts.titleInput, cmd = m.posts.titleInput.Update(msg)
	} else {
		m.posts.contentInput, cmd = m.posts.contentInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitCreatePost() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.posts.titleInput.Value())
	content := strings.TrimSpace(m.posts.contentInput.Value())
	if title == "" || content == "" {
		m.posts.createState.Fail("Title and content are required.")
		return m, nil
	}
	if !m.posts.createState.Begin() {
		return m, nil
	}

	postType := api.PostTypeFree
	if m.posts.createNotice {
		postType = api.PostTypeNotice
	}
	req := api.CreatePostRequest{Title: title, Content: content, PostType: postType}
	client, ctx := m.client, m.ctx
	groupID := m.posts.groupID
	userID := m.session.UserID()
	return m, func() tea.Msg {
		err := client.CreatePost(ctx, groupID, userID, req)
		return createPostResultMsg{err: err}
	}
}

func (m Model) handleCreatePostResult(msg createPostResultMsg) (tea.Model, tea.Cmd) {
	if !m.posts.createState.IsLoading() {
		return m, nil
	}
	if msg.err != nil {
		m.posts.createState.Fail(request.Describe(msg.err))
		return m, nil
	}
	m.posts.createState.Succeed("Post created.")
	m.posts.creating = false
	return m, m.reloadPosts()
}

func (m Model) viewPosts() string {
	if m.posts.creating {
		return m.viewCreatePost()
	}

	var b strings.Builder
	title := "Board"
	switch m.posts.filter {
	case api.PostTypeFree:
		title = "Board • free"
	case api.PostTypeNotice:
		title = "Board • notices"
	}
	b.WriteString(m.styles.Title.Render(title) + "\n\n")

	state := m.posts.posts
	switch {
	case state.IsIdle(), state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Loading posts...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
		b.WriteString(m.styles.MutedText.Render("Press r to retry.") + "\n")
	case len(state.Value()) == 0:
		b.WriteString(m.styles.MutedText.Render("No posts yet.") + "\n")
	default:
		for i, post := range state.Value() {
			marker := "  "
			if post.PostType == api.PostTypeNotice {
				marker = m.styles.AccentText.Render("! ")
			}
			line := fmt.Sprintf("%s%-32s %-12s %s  (%d)",
				marker,
				truncate(post.Title, 32),
				truncate(post.Username, 12),
				formatTimestamp(post.CreatedAt),
				post.CommentCount)
			if i == m.posts.selected {
				b.WriteString(m.styles.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(m.styles.Text.Render("  "+line) + "\n")
			}
		}
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter open • n new post • f filter • r refresh • esc back"))
	return b.String()
}

func (m Model) viewCreatePost() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("New post") + "\n\n")
	b.WriteString(m.posts.titleInput.View() + "\n")
	b.WriteString(m.posts.contentInput.View() + "\n")

	postType := "free"
	if m.posts.createNotice {
		postType = "notice"
	}
	b.WriteString(m.styles.MutedText.Render("type: ") + m.styles.AccentText.Render(postType))
	b.WriteString("\n\n")

	state := m.posts.createState
	switch {
	case state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Posting...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter post • ctrl+t toggle notice • tab next field • esc cancel"))
	return m.styles.Panel.Render(b.String())
}
