package backend

import (
	"strings"

	"github.com/dtroode/novoice/internal/model"
)

// magicLink is a pending passwordless login. At most one live record exists
// per email; a new request for the same email supersedes the old record.
type magicLink struct {
	Email string
	Code  string
	Token string
}

// identityStore maps emails to user records and owns the magic-link and
// token tables. It carries no lock of its own; the Backend serializes all
// access.
type identityStore struct {
	users  map[string]*model.User // keyed by email
	links  map[string]magicLink   // keyed by email
	tokens map[string]string      // token → email
}

func newIdentityStore() *identityStore {
	return &identityStore{
		users:  make(map[string]*model.User),
		links:  make(map[string]magicLink),
		tokens: make(map[string]string),
	}
}

// ensure returns the user for the email, lazily creating the record. The id
// is derived from the email so it stays stable for the process lifetime.
func (s *identityStore) ensure(email, name string) *model.User {
	if existing, ok := s.users[email]; ok {
		return existing
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user := &model.User{
		ID:    "user-" + email,
		Email: email,
		Name:  name,
		Bio:   "Voice-first storytelling",
	}
	s.users[email] = user
	return user
}

// byID looks a user up by id. Returns nil when unknown.
func (s *identityStore) byID(id string) *model.User {
	for _, user := range s.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func (s *identityStore) put(user *model.User) {
	s.users[user.Email] = user
}

func (s *identityStore) putLink(link magicLink) {
	s.links[link.Email] = link
}

func (s *identityStore) peekLink(email string) (magicLink, bool) {
	link, ok := s.links[email]
	return link, ok
}

// consumeLink deletes the pending link once confirmation succeeds.
func (s *identityStore) consumeLink(email string) {
	delete(s.links, email)
}

func (s *identityStore) bindToken(token, email string) {
	s.tokens[token] = email
}

func (s *identityStore) resolveToken(token string) (string, bool) {
	email, ok := s.tokens[token]
	return email, ok
}

func (s *identityStore) revokeToken(token string) {
	delete(s.tokens, token)
}
