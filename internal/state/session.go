// Package state implements the client-side state machines that orchestrate
// the backend façade: session lifecycle, feed pagination with optimistic
// likes, and single-track audio playback. Each machine owns its state
// exclusively; consumers read immutable snapshots.
package state

import (
	"context"
	"sync"

	"github.com/dtroode/novoice/internal/logger"
	"github.com/dtroode/novoice/internal/model"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusInitializing    Status = "initializing"
	StatusUnauthenticated Status = "unauthenticated"
	StatusAwaitingLink    Status = "awaiting-link"
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusError           Status = "error"
)

// tokenKey is where the bearer token lives in the secret store.
const tokenKey = "novoice.token"

// SessionSnapshot is a read-only copy of the session state.
type SessionSnapshot struct {
	Status       Status
	User         *model.User
	Token        string
	PendingEmail string
	Err          string
	Following    map[string]bool
	DebugCode    string
}

// Session drives the authentication lifecycle against the backend façade.
// The token is persisted to the secret store strictly after the façade
// confirms success, never speculatively.
type Session struct {
	mu      sync.Mutex
	backend model.Backend
	vault   model.SecretStore
	logger  *logger.Logger

	status       Status
	user         *model.User
	token        string
	pendingEmail string
	errMsg       string
	following    map[string]bool
	debugCode    string
}

// NewSession constructs the session machine in the initializing state.
func NewSession(backend model.Backend, vault model.SecretStore, log *logger.Logger) *Session {
	return &Session{
		backend:   backend,
		vault:     vault,
		logger:    log.WithComponent("session"),
		status:    StatusInitializing,
		following: make(map[string]bool),
	}
}

// Initialize resolves a stored token, if any, into an authenticated session.
// An invalid or expired token is deleted from the secret store.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	s.status = StatusInitializing
	s.mu.Unlock()

	token, err := s.vault.Get(ctx, tokenKey)
	if err != nil || token == "" {
		s.setUnauthenticated()
		return
	}

	user, err := s.backend.RestoreSession(ctx, token)
	if err != nil {
		s.logger.Debug("stored token rejected", "error", err.Error())
		if delErr := s.vault.Delete(ctx, tokenKey); delErr != nil {
			s.logger.Error("failed to delete stale token", "error", delErr.Error())
		}
		s.setUnauthenticated()
		return
	}

	following := s.backend.Following(user.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusAuthenticated
	s.user = &user
	s.token = token
	s.errMsg = ""
	s.pendingEmail = ""
	s.following = following
	s.debugCode = ""
}

// RequestMagicLink asks the backend for a login code. On success the
// machine waits for confirmation; the code is kept for developer display.
func (s *Session) RequestMagicLink(ctx context.Context, email string) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.errMsg = ""
	s.mu.Unlock()

	code, err := s.backend.RequestMagicLink(ctx, email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusError
		s.errMsg = err.Error()
		s.debugCode = ""
		return err
	}
	s.status = StatusAwaitingLink
	s.pendingEmail = email
	s.debugCode = code
	return nil
}

// ConfirmMagicLink exchanges the emailed code for a session token and
// persists it.
func (s *Session) ConfirmMagicLink(ctx context.Context, code string) error {
	s.mu.Lock()
	pendingEmail := s.pendingEmail
	if pendingEmail == "" {
		s.status = StatusError
		s.errMsg = "no pending login request found"
		s.mu.Unlock()
		return nil
	}
	s.status = StatusLoading
	s.errMsg = ""
	s.mu.Unlock()

	result, err := s.backend.ConfirmMagicLink(ctx, pendingEmail, code)
	if err == nil {
		// Persist only after the façade confirms success.
		err = s.vault.Set(ctx, tokenKey, result.Token)
	}

	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.status = StatusError
		s.errMsg = err.Error()
		s.debugCode = ""
		return err
	}

	following := s.backend.Following(result.User.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusAuthenticated
	s.user = &result.User
	s.token = result.Token
	s.pendingEmail = ""
	s.errMsg = ""
	s.following = following
	s.debugCode = ""
	s.logger.Info("session established", "user_id", result.User.ID)
	return nil
}

// Logout clears the persisted token and all session state.
func (s *Session) Logout(ctx context.Context) {
	if err := s.vault.Delete(ctx, tokenKey); err != nil {
		s.logger.Error("failed to delete token", "error", err.Error())
	}
	s.setUnauthenticated()
}

// UpdateProfile merges a partial profile edit. Silently returns when no
// user is present; failures populate the error field without changing
// status.
func (s *Session) UpdateProfile(ctx context.Context, update model.ProfileUpdate) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == nil {
		return nil
	}

	updated, err := s.backend.UpdateProfile(ctx, user.ID, update)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.user = &updated
	return nil
}

// ToggleFollow flips the follow edge toward the target. Silently returns
// when no user is present.
func (s *Session) ToggleFollow(ctx context.Context, targetID string) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == nil {
		return nil
	}

	result, err := s.backend.ToggleFollow(ctx, user.ID, targetID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.following = result.ActorFollowing
	s.user = &result.Actor
	return nil
}

// ViewerID reports the authenticated user's id, if any. Satisfies the feed
// machine's viewer source.
func (s *Session) ViewerID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return "", false
	}
	return s.user.ID, true
}

// Snapshot returns an independent copy of the session state.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		Status:       s.status,
		Token:        s.token,
		PendingEmail: s.pendingEmail,
		Err:          s.errMsg,
		DebugCode:    s.debugCode,
		Following:    make(map[string]bool, len(s.following)),
	}
	for id, v := range s.following {
		snap.Following[id] = v
	}
	if s.user != nil {
		user := s.user.Clone()
		snap.User = &user
	}
	return snap
}

func (s *Session) setUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusUnauthenticated
	s.user = nil
	s.token = ""
	s.pendingEmail = ""
	s.errMsg = ""
	s.following = make(map[string]bool)
	s.debugCode = ""
}
