package session

import (
	"path/filepath"
	"testing"

	"github.com/dkim82/studyhall/internal/prefs"
)

func prefsFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "prefs.toml")
}

func TestRestore_NoStoredLoginStartsLoggedOut(t *testing.T) {
	s := Restore(prefsFile(t))
	if s.LoggedIn() {
		t.Fatal("LoggedIn = true, want logged out")
	}
	if s.UserID() != 0 || s.Nickname() != "" || s.Token() != "" {
		t.Fatalf("identity = (%d, %q, %q), want empty", s.UserID(), s.Nickname(), s.Token())
	}
}

func TestLogin_PersistsScalarsAcrossRestore(t *testing.T) {
	path := prefsFile(t)

	s := Restore(path)
	if err := s.Login(42, "mina", "token-abc"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !s.LoggedIn() || s.Nickname() != "mina" || s.Token() != "token-abc" {
		t.Fatalf("identity = (%d, %q, %q)", s.UserID(), s.Nickname(), s.Token())
	}

	restored := Restore(path)
	if restored.UserID() != 42 || restored.Nickname() != "mina" {
		t.Fatalf("restored identity = (%d, %q), want (42, mina)", restored.UserID(), restored.Nickname())
	}
	// The token lives only for the process.
	if restored.Token() != "" {
		t.Fatalf("restored token = %q, want empty", restored.Token())
	}
}

func TestLogin_RejectsNonPositiveUserID(t *testing.T) {
	s := Restore(prefsFile(t))
	if err := s.Login(0, "mina", "t"); err == nil {
		t.Fatal("Login(0) returned nil, want an error")
	}
	if s.LoggedIn() {
		t.Fatal("LoggedIn = true after a rejected login")
	}
}

func TestLogout_ClearsPersistedLogin(t *testing.T) {
	path := prefsFile(t)

	s := Restore(path)
	if err := s.Login(42, "mina", "token-abc"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if s.LoggedIn() {
		t.Fatal("LoggedIn = true after Logout")
	}

	if Restore(path).LoggedIn() {
		t.Fatal("restored session is logged in after Logout")
	}
}

func TestSetNickname_PreservesUnrelatedPrefs(t *testing.T) {
	path := prefsFile(t)
	if err := prefs.Save(path, prefs.Prefs{Theme: "Paper"}); err != nil {
		t.Fatalf("seed prefs: %v", err)
	}

	s := Restore(path)
	if err := s.Login(42, "mina", "t"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if err := s.SetNickname("minji"); err != nil {
		t.Fatalf("SetNickname returned error: %v", err)
	}
	if s.Nickname() != "minji" {
		t.Fatalf("Nickname = %q, want minji", s.Nickname())
	}

	stored, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if stored.Nickname != "minji" {
		t.Fatalf("stored nickname = %q, want minji", stored.Nickname)
	}
	if stored.Theme != "Paper" {
		t.Fatalf("stored theme = %q, want preserved", stored.Theme)
	}
}
