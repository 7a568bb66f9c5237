// Package session carries the process-wide user identity.
//
// The session is a single-writer, many-reader piece of state: every
// component reads it, but it mutates only through Login, Logout and
// SetNickname. Instead of ambient globals, a *Session is constructed
// once at startup and injected into everything needing identity. The
// two login scalars (user id, nickname) are persisted through the
// prefs file so login survives restarts; Logout clears them.
package session

import (
	"fmt"
	"sync"

	"github.com/dkim82/studyhall/internal/prefs"
)

// Session holds the current user's identity.
type Session struct {
	prefsPath string

	mu       sync.RWMutex
	userID   int64
	nickname string
	token    string
}

// Restore builds a Session from the persisted login scalars. An empty
// prefsPath uses the default location. A missing or unreadable prefs
// file yields a logged-out session.
func Restore(prefsPath string) *Session {
	stored, _ := prefs.Load(prefsPath)
	return &Session{
		prefsPath: prefsPath,
		userID:    stored.UserID,
		nickname:  stored.Nickname,
	}
}

// UserID returns the current user id, zero when logged out.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Nickname returns the current user's nickname.
func (s *Session) Nickname() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nickname
}

// Token returns the auth token from the last login. It is held for the
// lifetime of the process only and never persisted.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn reports whether a user is signed in.
func (s *Session) LoggedIn() bool {
	return s.UserID() > 0
}

// Login records a successful login and persists the login scalars.
func (s *Session) Login(userID int64, nickname, token string) error {
	if userID <= 0 {
		return fmt.Errorf("login requires a positive user id, got %d", userID)
	}
	s.mu.Lock()
	s.userID = userID
	s.nickname = nickname
	s.token = token
	s.mu.Unlock()
	return s.persist()
}

// Logout clears the identity and the persisted login scalars.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.userID = 0
	s.nickname = ""
	s.token = ""
	s.mu.Unlock()
	return s.persist()
}

// SetNickname records a nickname change after a successful profile
// update and persists it.
func (s *Session) SetNickname(nickname string) error {
	s.mu.Lock()
	s.nickname = nickname
	s.mu.Unlock()
	return s.persist()
}

// persist rewrites the login scalars, preserving unrelated
// preferences already in the file.
func (s *Session) persist() error {
	stored, _ := prefs.Load(s.prefsPath)

	s.mu.RLock()
	stored.UserID = s.userID
	stored.Nickname = s.nickname
	s.mu.RUnlock()

	if err := prefs.Save(s.prefsPath, stored); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
