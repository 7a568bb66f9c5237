package ui

import (
	"path/filepath"
	"testing"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/session"
)

func testModel(t *testing.T) Model {
	t.Helper()
	client, err := api.NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return New(Options{
		Client:  client,
		Session: session.Restore(filepath.Join(t.TempDir(), "prefs.toml")),
	})
}

func TestNextCategory_CyclesThroughAllAndBack(t *testing.T) {
	t.Parallel()

	current := api.Category("")
	seen := make(map[api.Category]bool)
	for range api.Categories() {
		current = nextCategory(current)
		if current == "" {
			t.Fatal("cycle returned to all before visiting every category")
		}
		if seen[current] {
			t.Fatalf("category %q visited twice", current)
		}
		seen[current] = true
	}
	if next := nextCategory(current); next != "" {
		t.Fatalf("after the last category got %q, want all", next)
	}
}

func TestHandleGroupsResult_ResolvesMatchingFetch(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.home.groups.Begin()

	updated, cmd := m.handleGroupsResult(groupsResultMsg{
		tab:    tabAllGroups,
		groups: []api.Group{{GroupID: 1, GroupName: "Go study"}},
	})
	if cmd != nil {
		t.Fatal("cmd != nil, want none for a matching result")
	}
	model := updated.(Model)
	if !model.home.groups.IsSuccess() {
		t.Fatalf("groups phase = %v, want Succeeded", model.home.groups.Phase())
	}
	if len(model.home.groups.Value()) != 1 {
		t.Fatalf("groups = %v, want one", model.home.groups.Value())
	}
}

func TestHandleGroupsResult_StaleTabRefetches(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.home.tab = tabMyGroups
	m.home.groups.Begin()

	// Result from a fetch issued before the user switched tabs.
	updated, cmd := m.handleGroupsResult(groupsResultMsg{
		tab:    tabAllGroups,
		groups: []api.Group{{GroupID: 1}},
	})
	if cmd == nil {
		t.Fatal("cmd = nil, want a re-fetch for the current tab")
	}
	model := updated.(Model)
	if !model.home.groups.IsLoading() {
		t.Fatalf("groups phase = %v, want still Loading", model.home.groups.Phase())
	}
}

func TestHandleGroupsResult_IgnoredWhenNotLoading(t *testing.T) {
	t.Parallel()

	m := testModel(t)

	updated, cmd := m.handleGroupsResult(groupsResultMsg{
		tab:    tabAllGroups,
		groups: []api.Group{{GroupID: 1}},
	})
	if cmd != nil {
		t.Fatal("cmd != nil, want none")
	}
	model := updated.(Model)
	if !model.home.groups.IsIdle() {
		t.Fatalf("groups phase = %v, want Idle untouched", model.home.groups.Phase())
	}
}

func TestNew_RestoredLoginStartsOnHome(t *testing.T) {
	t.Parallel()

	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	sess := session.Restore(prefsPath)
	if err := sess.Login(42, "mina", "t"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	client, err := api.NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	m := New(Options{Client: client, Session: sess, PrefsPath: prefsPath})

	if m.screen != ScreenHome {
		t.Fatalf("screen = %v, want home for a restored login", m.screen)
	}
	if !m.home.groups.IsLoading() {
		t.Fatalf("groups phase = %v, want Loading before the initial fetch", m.home.groups.Phase())
	}
}

func TestNew_NoLoginStartsOnLogin(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	if m.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login", m.screen)
	}
}
