package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/session"
)

func photosTestModel(t *testing.T, client *api.Client, leader bool) Model {
	t.Helper()
	sess := session.Restore(filepath.Join(t.TempDir(), "prefs.toml"))
	if err := sess.Login(42, "mina", "t"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	m := New(Options{Client: client, Session: sess})
	m.screen = ScreenPhotos
	m.photos = newPhotosState()
	m.photos.groupID = 7
	m.photos.leader = leader
	m.photos.photos.Begin()
	m.photos.photos.Resolve([]api.Photo{{PhotoID: 3, UserID: 9, OriginalFilename: "notes.jpg"}}, nil)
	return m
}

func pressDelete() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}
}

func TestHandlePhotosKeys_MemberCannotDeleteOthersPhoto(t *testing.T) {
	t.Parallel()

	client, err := api.NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	m := photosTestModel(t, client, false)

	updated, cmd := m.handlePhotosKeys(pressDelete())
	if cmd != nil {
		t.Fatal("cmd != nil, want no delete for another member's photo")
	}
	model := updated.(Model)
	if !model.photos.mutation.IsIdle() {
		t.Fatalf("mutation phase = %v, want Idle", model.photos.mutation.Phase())
	}
}

func TestHandlePhotosKeys_LeaderDeletesOthersPhotoWithGroupScope(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/photos/3" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "삭제되었습니다."})
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	m := photosTestModel(t, client, true)

	updated, cmd := m.handlePhotosKeys(pressDelete())
	if cmd == nil {
		t.Fatal("cmd = nil, want a delete request for the leader")
	}
	model := updated.(Model)
	if !model.photos.mutation.IsLoading() {
		t.Fatalf("mutation phase = %v, want Loading", model.photos.mutation.Phase())
	}

	msg := cmd()
	result, ok := msg.(photoMutationResultMsg)
	if !ok {
		t.Fatalf("msg = %T, want photoMutationResultMsg", msg)
	}
	if result.err != nil {
		t.Fatalf("delete returned error: %v", result.err)
	}
	if gotQuery.Get("groupId") != "7" {
		t.Fatalf("groupId = %q, want %q for leader moderation", gotQuery.Get("groupId"), "7")
	}
	if gotQuery.Get("userId") != "42" {
		t.Fatalf("userId = %q, want %q", gotQuery.Get("userId"), "42")
	}
}

func TestSubmitDeletePhoto_OwnPhotoOmitsGroupScope(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "삭제되었습니다."})
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	m := photosTestModel(t, client, true)

	_, cmd := m.submitDeletePhoto(api.Photo{PhotoID: 5, UserID: 42})
	if cmd == nil {
		t.Fatal("cmd = nil, want a delete request")
	}
	if msg := cmd(); msg.(photoMutationResultMsg).err != nil {
		t.Fatalf("delete returned error: %v", msg.(photoMutationResultMsg).err)
	}
	if gotQuery.Has("groupId") {
		t.Fatalf("groupId = %q, want omitted for deleting your own photo", gotQuery.Get("groupId"))
	}
}
