package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/request"
)

type groupTab int

const (
	tabAllGroups groupTab = iota
	tabMyGroups
)

const (
	createFieldName = iota
	createFieldDescription
	createFieldMaxMembers
	createFieldCount
)

type homeState struct {
	tab      groupTab
	category api.Category // empty means every category
	groups   request.State[[]api.Group]
	selected int

	creating       bool
	createInputs   [createFieldCount]textinput.Model
	createFocus    int
	createCategory int
	createState    request.State[string]
}

type groupsResultMsg struct {
	tab      groupTab
	category api.Category
	groups   []api.Group
	err      error
}

type createGroupResultMsg struct {
	group api.Group
	err   error
}

func newHomeState() homeState {
	s := homeState{}
	s.createInputs[createFieldName] = newInput("group name")
	s.createInputs[createFieldDescription] = newInput("description")
	s.createInputs[createFieldMaxMembers] = newInput("max members")
	return s
}

// reloadGroups publishes Loading and returns the fetch command for
// the current tab and category. Returns nil when a fetch is already
// in flight.
func (m *Model) reloadGroups() tea.Cmd {
	if !m.home.groups.Begin() {
		return nil
	}
	return m.fetchGroupsCmd()
}

// fetchGroupsCmd builds the fetch for the current tab and category.
// Callers publish Loading first via reloadGroups, except Init, which
// starts from a state already marked Loading.
func (m Model) fetchGroupsCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	tab := m.home.tab
	category := m.home.category
	return func() tea.Msg {
		var groups []api.Group
		var err error
		switch {
		case tab == tabMyGroups:
			groups, err = client.MyGroups(ctx, userID)
		case category != "":
			groups, err = client.GroupsByCategory(ctx, category, userID)
		default:
			groups, err = client.Groups(ctx, userID)
		}
		return groupsResultMsg{tab: tab, category: category, groups: groups, err: err}
	}
}

func (m Model) handleGroupsResult(msg groupsResultMsg) (tea.Model, tea.Cmd) {
	if !m.home.groups.IsLoading() {
		return m, nil
	}
	// The user switched tabs while this fetch was in flight; discard
	// the stale payload and fetch the list now wanted.
	if msg.tab != m.home.tab || msg.category != m.home.category {
		return m, m.fetchGroupsCmd()
	}
	m.home.groups.Resolve(msg.groups, msg.err)
	m.home.selected = clampSelection(m.home.selected, len(msg.groups))
	return m, nil
}

func (m Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.home.creating {
		return m.handleCreateGroupKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.home.selected = clampSelection(m.home.selected+1, len(m.home.groups.Value()))
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.home.selected = clampSelection(m.home.selected-1, len(m.home.groups.Value()))
		return m, nil

	case key.Matches(msg, m.keys.AllGroups):
		m.home.tab = tabAllGroups
		m.home.category = ""
		return m, m.reloadGroups()

	case key.Matches(msg, m.keys.MyGroups):
		m.home.tab = tabMyGroups
		return m, m.reloadGroups()

	case key.Matches(msg, m.keys.Filter):
		m.home.tab = tabAllGroups
		m.home.category = nextCategory(m.home.category)
		return m, m.reloadGroups()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadGroups()

	case key.Matches(msg, m.keys.New):
		m.home.creating = true
		m.home.createFocus = 0
		m.home.createState.Reset()
		for i := range m.home.createInputs {
			m.home.createInputs[i].SetValue("")
		}
		return m, cycleFocus(m.home.createInputs[:], 0)

	case key.Matches(msg, m.keys.Profile):
		return m.enterProfile()

	case key.Matches(msg, m.keys.Submit):
		groups := m.home.groups.Value()
		if len(groups) == 0 {
			return m, nil
		}
		return m.enterGroupDetail(groups[m.home.selected].GroupID)
	}
	return m, nil
}

// nextCategory cycles all -> first category -> ... -> last -> all.
func nextCategory(current api.Category) api.Category {
	categories := api.Categories()
	if current == "" {
		return categories[0]
	}
	for i, c := range categories {
		if c == current {
			if i == len(categories)-1 {
				return ""
			}
			return categories[i+1]
		}
	}
	return ""
}

func (m Model) handleCreateGroupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.home.creating = false
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.home.createFocus = (m.home.createFocus + 1) % createFieldCount
		return m, cycleFocus(m.home.createInputs[:], m.home.createFocus)

	case msg.String() == "ctrl+t":
		m.home.createCategory = (m.home.createCategory + 1) % len(api.Categories())
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitCreateGroup()
	}

	cmd := updateInputs(m.home.createInputs[:], msg)
	return m, cmd
}

func (m Model) submitCreateGroup() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.home.createInputs[createFieldName].Value())
	description := strings.TrimSpace(m.home.createInputs[createFieldDescription].Value())
	maxRaw := strings.TrimSpace(m.home.createInputs[createFieldMaxMembers].Value())

	if name == "" || description == "" {
		m.home.createState.Fail("Name and description are required.")
		return m, nil
	}
	maxMembers, err := strconv.Atoi(maxRaw)
	if err != nil || maxMembers <= 0 {
		m.home.createState.Fail("Max members must be a positive number.")
		return m, nil
	}
	if !m.home.createState.Begin() {
		return m, nil
	}

	req := api.GroupRequest{
		GroupName:   name,
		Description: description,
		Category:    api.Categories()[m.home.createCategory],
		MaxMembers:  maxMembers,
	}
	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	return m, func() tea.Msg {
		group, err := client.CreateGroup(ctx, userID, req)
		return createGroupResultMsg{group: group, err: err}
	}
}

func (m Model) handleCreateGroupResult(msg createGroupResultMsg) (tea.Model, tea.Cmd) {
	if !m.home.createState.IsLoading() {
		return m, nil
	}
	if msg.err != nil {
		m.home.createState.Fail(request.Describe(msg.err))
		return m, nil
	}
	m.home.createState.Succeed("Group created.")
	m.home.creating = false
	return m, m.reloadGroups()
}

func (m Model) viewHome() string {
	if m.home.creating {
		return m.viewCreateGroup()
	}

	var b strings.Builder
	title := "All groups"
	switch {
	case m.home.tab == tabMyGroups:
		title = "My groups"
	case m.home.category != "":
		title = m.home.category.DisplayName() + " groups"
	}
	b.WriteString(m.styles.Title.Render(title) + "\n\n")

	state := m.home.groups
	switch {
	case state.IsIdle(), state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Loading groups...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
		b.WriteString(m.styles.MutedText.Render("Press r to retry.") + "\n")
	case len(state.Value()) == 0:
		b.WriteString(m.styles.MutedText.Render("No groups yet.") + "\n")
	default:
		for i, group := range state.Value() {
			line := fmt.Sprintf("%-24s %-14s %d/%d  %s",
				truncate(group.GroupName, 24),
				group.Category.DisplayName(),
				group.CurrentMembers, group.MaxMembers,
				truncate(firstLine(group.Description), 40))
			if group.IsMember {
				line += "  ✓"
			}
			if i == m.home.selected {
				b.WriteString(m.styles.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(m.styles.Text.Render("  "+line) + "\n")
			}
		}
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter open • a all • m mine • f category • n new group • u profile • r refresh • ctrl+c quit"))
	return b.String()
}

func (m Model) viewCreateGroup() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("New group") + "\n\n")
	for i := range m.home.createInputs {
		b.WriteString(m.home.createInputs[i].View() + "\n")
	}
	category := api.Categories()[m.home.createCategory]
	b.WriteString(m.styles.MutedText.Render("category: ") + m.styles.AccentText.Render(category.DisplayName()))
	b.WriteString("\n\n")

	state := m.home.createState
	switch {
	case state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Creating group...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter create • ctrl+t cycle category • tab next field • esc cancel"))
	return m.styles.Panel.Render(b.String())
}
