package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/request"
)

type photosState struct {
	groupID  int64
	leader   bool
	photos   request.State[[]api.Photo]
	selected int

	uploading        bool
	pathInput        textinput.Model
	descriptionInput textinput.Model
	uploadFocus      int
	mutation         request.State[string]
}

type photosResultMsg struct {
	groupID int64
	photos  []api.Photo
	err     error
}

// photoMutationResultMsg carries the outcome of an upload or delete.
// Success triggers a full list re-fetch.
type photoMutationResultMsg struct {
	action string
	err    error
}

func newPhotosState() photosState {
	return photosState{
		pathInput:        newInput("path to image file"),
		descriptionInput: newInput("description"),
	}
}

// enterPhotos switches to the photo album screen for a group. leader
// widens deletion to other members' photos.
func (m Model) enterPhotos(groupID int64, leader bool) (tea.Model, tea.Cmd) {
	m.screen = ScreenPhotos
	m.photos = newPhotosState()
	m.photos.groupID = groupID
	m.photos.leader = leader
	m.photos.photos.Begin()
	return m, m.fetchPhotosCmd(groupID)
}

func (m Model) fetchPhotosCmd(groupID int64) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		photos, err := client.GroupPhotos(ctx, groupID)
		return photosResultMsg{groupID: groupID, photos: photos, err: err}
	}
}

func (m *Model) reloadPhotos() tea.Cmd {
	if !m.photos.photos.Begin() {
		return nil
	}
	return m.fetchPhotosCmd(m.photos.groupID)
}

func (m Model) handlePhotosResult(msg photosResultMsg) (tea.Model, tea.Cmd) {
	if !m.photos.photos.IsLoading() || msg.groupID != m.photos.groupID {
		return m, nil
	}
	m.photos.photos.Resolve(msg.photos, msg.err)
	m.photos.selected = clampSelection(m.photos.selected, len(msg.photos))
	return m, nil
}

func (m Model) handlePhotosKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.photos.uploading {
		return m.handleUploadKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.enterGroupDetail(m.photos.groupID)

	case key.Matches(msg, m.keys.Down):
		m.photos.selected = clampSelection(m.photos.selected+1, len(m.photos.photos.Value()))
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.photos.selected = clampSelection(m.photos.selected-1, len(m.photos.photos.Value()))
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadPhotos()

	case key.Matches(msg, m.keys.New):
		m.photos.uploading = true
		m.photos.uploadFocus = 0
		m.photos.mutation.Reset()
		m.photos.pathInput.SetValue("")
		m.photos.descriptionInput.SetValue("")
		m.photos.descriptionInput.Blur()
		return m, m.photos.pathInput.Focus()

	case key.Matches(msg, m.keys.Delete):
		photos := m.photos.photos.Value()
		if len(photos) == 0 {
			return m, nil
		}
		photo := photos[m.photos.selected]
		if photo.UserID != m.session.UserID() && !m.photos.leader {
			return m, nil
		}
		return m.submitDeletePhoto(photo)
	}
	return m, nil
}

func (m Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.photos.uploading = false
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.photos.uploadFocus = (m.photos.uploadFocus + 1) % 2
		if m.photos.uploadFocus == 0 {
			m.photos.descriptionInput.Blur()
			return m, m.photos.pathInput.Focus()
		}
		m.photos.pathInput.Blur()
		return m, m.photos.descriptionInput.Focus()

	case key.Matches(msg, m.keys.Submit):
		return m.submitUploadPhoto()
	}

	var cmd tea.Cmd
	if m.photos.uploadFocus == 0 {
		m.photos.pathInput, cmd = m.photos.pathInput.Update(msg)
	} else {
		m.photos.descriptionInput, cmd = m.photos.descriptionInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitUploadPhoto() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.photos.pathInput.Value())
	description := strings.TrimSpace(m.photos.descriptionInput.Value())
	if path == "" {
		m.photos.mutation.Fail("File path is required.")
		return m, nil
	}
	if !m.photos.mutation.Begin() {
		return m, nil
	}

	client, ctx := m.client, m.ctx
	groupID := m.photos.groupID
	userID := m.session.UserID()
	return m, func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return photoMutationResultMsg{action: "upload", err: fmt.Errorf("open photo: %w", err)}
		}
		defer file.Close()
		_, err = client.UploadPhoto(ctx, groupID, userID, file, filepath.Base(path), description)
		return photoMutationResultMsg{action: "upload", err: err}
	}
}

func (m Model) submitDeletePhoto(photo api.Photo) (tea.Model, tea.Cmd) {
	if !m.photos.mutation.Begin() {
		return m, nil
	}
	client, ctx := m.client, m.ctx
	userID := m.session.UserID()
	groupID := int64(0)
	if m.photos.leader && photo.UserID != userID {
		groupID = m.photos.groupID
	}
	photoID := photo.PhotoID
	return m, func() tea.Msg {
		err := client.DeletePhoto(ctx, photoID, userID, groupID)
		return photoMutationResultMsg{action: "delete", err: err}
	}
}

func (m Model) handlePhotoMutationResult(msg photoMutationResultMsg) (tea.Model, tea.Cmd) {
	if !m.photos.mutation.IsLoading() {
		return m, nil
	}
	if msg.err != nil {
		m.photos.mutation.Fail(request.Describe(msg.err))
		return m, nil
	}
	switch msg.action {
	case "upload":
		m.photos.mutation.Succeed("Photo uploaded.")
		m.photos.uploading = false
	case "delete":
		m.photos.mutation.Succeed("Photo deleted.")
	}
	return m, m.reloadPhotos()
}

func (m Model) viewPhotos() string {
	if m.photos.uploading {
		return m.viewUploadPhoto()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Photos") + "\n\n")

	state := m.photos.photos
	switch {
	case state.IsIdle(), state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Loading photos...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
		b.WriteString(m.styles.MutedText.Render("Press r to retry.") + "\n")
	case len(state.Value()) == 0:
		b.WriteString(m.styles.MutedText.Render("No photos yet.") + "\n")
	default:
		for i, photo := range state.Value() {
			line := fmt.Sprintf("%-24s %-12s %s  %s",
				truncate(photo.OriginalFilename, 24),
				truncate(photo.Username, 12),
				formatTimestamp(photo.CreatedAt),
				truncate(firstLine(photo.Description), 32))
			if i == m.photos.selected {
				b.WriteString(m.styles.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(m.styles.Text.Render("  "+line) + "\n")
			}
		}
	}

	mutation := m.photos.mutation
	switch {
	case mutation.IsLoading():
		b.WriteString("\n" + m.styles.WarningText.Render("Working...") + "\n")
	case mutation.IsError():
		b.WriteString("\n" + m.styles.DangerText.Render(mutation.Reason()) + "\n")
	case mutation.IsSuccess():
		b.WriteString("\n" + m.styles.SuccessText.Render(mutation.Value()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("n upload • d delete • r refresh • esc back"))
	return b.String()
}

func (m Model) viewUploadPhoto() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Upload photo") + "\n\n")
	b.WriteString(m.photos.pathInput.View() + "\n")
	b.WriteString(m.photos.descriptionInput.View() + "\n\n")

	state := m.photos.mutation
	switch {
	case state.IsLoading():
		b.WriteString(m.styles.WarningText.Render("Uploading...") + "\n")
	case state.IsError():
		b.WriteString(m.styles.DangerText.Render(state.Reason()) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter upload • tab next field • esc cancel"))
	return m.styles.Panel.Render(b.String())
}
