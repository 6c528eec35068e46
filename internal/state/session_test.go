package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/novoice/internal/mocks"
	"github.com/dtroode/novoice/internal/model"
	"github.com/dtroode/novoice/internal/secret"
	"github.com/dtroode/novoice/internal/testutil"
)

func demoUser() model.User {
	return model.User{ID: "user-sasha@example.com", Email: "sasha@example.com", Name: "sasha"}
}

func TestSession_Initialize_NoStoredToken(t *testing.T) {
	backend := &mocks.Backend{}
	session := NewSession(backend, secret.NewMemory(), testutil.MakeNoopLogger())

	session.Initialize(context.Background())

	snap := session.Snapshot()
	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.User)
	backend.AssertNotCalled(t, "RestoreSession", mock.Anything, mock.Anything)
}

func TestSession_Initialize_StoredTokenResolves(t *testing.T) {
	ctx := context.Background()
	backend := &mocks.Backend{}
	vault := secret.NewMemory()
	require.NoError(t, vault.Set(ctx, tokenKey, "tok"))

	user := demoUser()
	backend.On("RestoreSession", mock.Anything, "tok").Return(user, nil)
	backend.On("Following", user.ID).Return(map[string]bool{"other": true})

	session := NewSession(backend, vault, testutil.MakeNoopLogger())
	session.Initialize(ctx)

	snap := session.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	require.NotNil(t, snap.User)
	assert.Equal(t, user.Email, snap.User.Email)
	assert.Equal(t, "tok", snap.Token)
	assert.Equal(t, map[string]bool{"other": true}, snap.Following)
}

func TestSession_Initialize_InvalidTokenIsDeleted(t *testing.T) {
	ctx := context.Background()
	backend := &mocks.Backend{}
	vault := secret.NewMemory()
	require.NoError(t, vault.Set(ctx, tokenKey, "stale"))

	backend.On("RestoreSession", mock.Anything, "stale").
		Return(model.User{}, errors.New("session expired"))

	session := NewSession(backend, vault, testutil.MakeNoopLogger())
	session.Initialize(ctx)

	snap := session.Snapshot()
	assert.Equal(t, StatusUnauthenticated, snap.Status)

	stored, err := vault.Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.Empty(t, stored, "stale token must be deleted")
}

func TestSession_RequestMagicLink(t *testing.T) {
	backend := &mocks.Backend{}
	backend.On("RequestMagicLink", mock.Anything, "sasha@example.com").Return("123456", nil)

	session := NewSession(backend, secret.NewMemory(), testutil.MakeNoopLogger())
	require.NoError(t, session.RequestMagicLink(context.Background(), "sasha@example.com"))

	snap := session.Snapshot()
	assert.Equal(t, StatusAwaitingLink, snap.Status)
	assert.Equal(t, "sasha@example.com", snap.PendingEmail)
	assert.Equal(t, "123456", snap.DebugCode)
	assert.Empty(t, snap.Err)
}

func TestSession_RequestMagicLink_Failure(t *testing.T) {
	backend := &mocks.Backend{}
	backend.On("RequestMagicLink", mock.Anything, "nope").
		Return("", errors.New("provide a valid email address"))

	session := NewSession(backend, secret.NewMemory(), testutil.MakeNoopLogger())
	require.Error(t, session.RequestMagicLink(context.Background(), "nope"))

	snap := session.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Contains(t, snap.Err, "valid email")
	assert.Empty(t, snap.DebugCode)
}

func TestSession_ConfirmMagicLink_NoPendingRequest(t *testing.T) {
	backend := &mocks.Backend{}
	session := NewSession(backend, secret.NewMemory(), testutil.MakeNoopLogger())

	require.NoError(t, session.ConfirmMagicLink(context.Background(), "123456"))

	snap := session.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Contains(t, snap.Err, "no pending login request")
	backend.AssertNotCalled(t, "ConfirmMagicLink", mock.Anything, mock.Anything, mock.Anything)
}

func TestSession_ConfirmMagicLink_Success(t *testing.T) {
	ctx := context.Background()
	backend := &mocks.Backend{}
	vault := secret.NewMemory()
	user := demoUser()

	backend.On("RequestMagicLink", mock.Anything, user.Email).Return("123456", nil)
	backend.On("ConfirmMagicLink", mock.Anything, user.Email, "123456").
		Return(model.LoginResult{Token: "tok", User: user}, nil)
	backend.On("Following", user.ID).Return(map[string]bool{})

	session := NewSession(backend, vault, testutil.MakeNoopLogger())
	require.NoError(t, session.RequestMagicLink(ctx, user.Email))
	require.NoError(t, session.ConfirmMagicLink(ctx, "123456"))

	snap := session.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Equal(t, "tok", snap.Token)
	assert.Empty(t, snap.PendingEmail)
	assert.Empty(t, snap.DebugCode)

	stored, err := vault.Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok", stored, "token persisted after façade success")
}

func TestSession_ConfirmMagicLink_WrongCode(t *testing.T) {
	ctx := context.Background()
	backend := &mocks.Backend{}
	vault := secret.NewMemory()

	backend.On("RequestMagicLink", mock.Anything, "sasha@example.com").Return("123456", nil)
	backend.On("ConfirmMagicLink", mock.Anything, "sasha@example.com", "000000").
		Return(model.LoginResult{}, errors.New("invalid verification code"))

	session := NewSession(backend, vault, testutil.MakeNoopLogger())
	require.NoError(t, session.RequestMagicLink(ctx, "sasha@example.com"))
	require.Error(t, session.ConfirmMagicLink(ctx, "000000"))

	snap := session.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Contains(t, snap.Err, "invalid verification code")

	stored, err := vault.Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.Empty(t, stored, "no token may be persisted on failure")
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	backend := &mocks.Backend{}
	vault := secret.NewMemory()
	user := demoUser()

	backend.On("RequestMagicLink", mock.Anything, user.Email).Return("123456", nil)
	backend.On("ConfirmMagicLink", mock.Anything, user.Email, "123456").
		Return(model.LoginResult{Token: "tok", User: user}, nil)
	backend.On("Following", user.ID).Return(map[string]bool{"x": true})

	session := NewSession(backend, vault, testutil.MakeNoopLogger())
	require.NoError(t, session.RequestMagicLink(ctx, user.Email))
	require.NoError(t, session.ConfirmMagicLink(ctx, "123456"))

	session.Logout(ctx)

	snap := session.Snapshot()
	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.Empty(t, snap.Following)

	stored, err := vault.Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSession_UpdateProfile_NoUserIsSilentNoop(t *testing.T) {
	backend := &mocks.Backend{}
	session := NewSession(backend, secret.NewMemory(), testutil.MakeNoopLogger())

	name := "Sasha"
	require.NoError(t, session.UpdateProfile(context.Background(), model.ProfileUpdate{Name: &name}))
	backend.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestSession_UpdateProfile_FailureKeepsStatus(t *testing.T) {
	ctx := context.Background()
	backend := &mocks.Backend{}
	user := demoUser()

	backend.On("RequestMagicLink", mock.Anything, user.Email).Return("123456", nil)
	backend.On("ConfirmMagicLink", mock.Anything, user.Email, "123456").
		Return(model.LoginResult{Token: "tok", User: user}, nil)
	backend.On("Following", user.ID).Return(map[string]bool{})
	backend.On("UpdateProfile", mock.Anything, user.ID, mock.Anything).
		Return(model.User{}, errors.New("boom"))

	session := NewSession(backend, secret.NewMemory(), testutil.MakeNoopLogger())
	require.NoError(t, session.RequestMagicLink(ctx, user.Email))
	require.NoError(t, session.ConfirmMagicLink(ctx, "123456"))

	name := "Sasha"
	require.Error(t, session.UpdateProfile(ctx, model.ProfileUpdate{Name: &name}))

	snap := session.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status, "status unchanged on failure")
	assert.Equal(t, "boom", snap.Err)
	assert.Equal(t, "sasha", snap.User.Name)
}

func TestSession_ToggleFollow(t *testing.T) {
	ctx := context.Background()
	backend := &mocks.Backend{}
	user := demoUser()
	followed := user
	followed.Following = 1

	backend.On("RequestMagicLink", mock.Anything, user.Email).Return("123456", nil)
	backend.On("ConfirmMagicLink", mock.Anything, user.Email, "123456").
		Return(model.LoginResult{Token: "tok", User: user}, nil)
	backend.On("Following", user.ID).Return(map[string]bool{})
	backend.On("ToggleFollow", mock.Anything, user.ID, "target").
		Return(model.FollowResult{
			Actor:          followed,
			Target:         model.User{ID: "target"},
			ActorFollowing: map[string]bool{"target": true},
		}, nil)

	session := NewSession(backend, secret.NewMemory(), testutil.MakeNoopLogger())
	require.NoError(t, session.RequestMagicLink(ctx, user.Email))
	require.NoError(t, session.ConfirmMagicLink(ctx, "123456"))
	require.NoError(t, session.ToggleFollow(ctx, "target"))

	snap := session.Snapshot()
	assert.Equal(t, map[string]bool{"target": true}, snap.Following)
	assert.Equal(t, 1, snap.User.Following)
}

func TestSession_ToggleFollow_NoUserIsSilentNoop(t *testing.T) {
	backend := &mocks.Backend{}
	session := NewSession(backend, secret.NewMemory(), testutil.MakeNoopLogger())

	require.NoError(t, session.ToggleFollow(context.Background(), "target"))
	backend.AssertNotCalled(t, "ToggleFollow", mock.Anything, mock.Anything, mock.Anything)
}
